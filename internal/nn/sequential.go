package nn

import (
	"fmt"
	"strings"

	"github.com/ganeval-ml/ganeval/internal/tensor"
)

// Sequential chains modules so the output of each feeds the input of the
// next. It is the container the contracting and perceptron blocks are
// built on.
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a sequential container from the given modules.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{modules: modules}
}

// Append adds a module to the end of the chain.
func (s *Sequential[B]) Append(m Module[B]) {
	s.modules = append(s.modules, m)
}

// Len returns the number of modules in the chain.
func (s *Sequential[B]) Len() int {
	return len(s.modules)
}

// At returns the module at index i.
func (s *Sequential[B]) At(i int) Module[B] {
	return s.modules[i]
}

// Forward applies the modules in order.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := input
	for _, m := range s.modules {
		out = m.Forward(out)
	}
	return out
}

// Parameters returns the parameters of all contained modules.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Train propagates training mode to contained modules that support it.
func (s *Sequential[B]) Train(training bool) {
	for _, m := range s.modules {
		if t, ok := m.(interface{ Train(bool) }); ok {
			t.Train(training)
		}
	}
}

// String returns a string representation of the container.
func (s *Sequential[B]) String() string {
	var sb strings.Builder
	sb.WriteString("Sequential(\n")
	for i, m := range s.modules {
		name := "Module"
		if str, ok := m.(fmt.Stringer); ok {
			name = str.String()
		}
		fmt.Fprintf(&sb, "  (%d): %s\n", i, name)
	}
	sb.WriteString(")")
	return sb.String()
}
