package metrics

import (
	"fmt"
	"math"
)

// Symmetric eigendecomposition and matrix square roots used by the Fréchet
// distance. The product of two covariance matrices is not symmetric, so the
// trace of its square root is computed through the equivalent symmetric
// form tr(sqrt(sqrt(Cx) Cy sqrt(Cx))).

const (
	jacobiMaxSweeps = 64
	jacobiEps       = 1e-12
)

// symEig computes the eigendecomposition of a symmetric matrix a (row major
// n x n) with the cyclic Jacobi method. It returns the eigenvalues and the
// matrix of column eigenvectors. a is not modified.
func symEig(a []float64, n int) (eigvals []float64, eigvecs []float64, err error) {
	if len(a) != n*n {
		return nil, nil, fmt.Errorf("symeig: expected %d values for %dx%d matrix, got %d", n*n, n, n, len(a))
	}

	work := append([]float64(nil), a...)
	vecs := make([]float64, n*n)
	for i := 0; i < n; i++ {
		vecs[i*n+i] = 1
	}

	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		var off float64
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				off += work[i*n+j] * work[i*n+j]
			}
		}
		if off < jacobiEps {
			break
		}

		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				apq := work[p*n+q]
				if math.Abs(apq) < jacobiEps {
					continue
				}
				app := work[p*n+p]
				aqq := work[q*n+q]

				theta := (aqq - app) / (2 * apq)
				t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				for k := 0; k < n; k++ {
					akp := work[k*n+p]
					akq := work[k*n+q]
					work[k*n+p] = c*akp - s*akq
					work[k*n+q] = s*akp + c*akq
				}
				for k := 0; k < n; k++ {
					apk := work[p*n+k]
					aqk := work[q*n+k]
					work[p*n+k] = c*apk - s*aqk
					work[q*n+k] = s*apk + c*aqk
				}
				for k := 0; k < n; k++ {
					vkp := vecs[k*n+p]
					vkq := vecs[k*n+q]
					vecs[k*n+p] = c*vkp - s*vkq
					vecs[k*n+q] = s*vkp + c*vkq
				}
			}
		}
	}

	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = work[i*n+i]
	}
	return vals, vecs, nil
}

// sqrtSym computes the principal square root of a symmetric positive
// semi-definite matrix. Tiny negative eigenvalues from round-off are
// clamped to zero.
func sqrtSym(a []float64, n int) ([]float64, error) {
	vals, vecs, err := symEig(a, n)
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		if v < 0 {
			vals[i] = 0
		} else {
			vals[i] = math.Sqrt(v)
		}
	}
	// V diag(sqrt(vals)) V^T
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += vecs[i*n+k] * vals[k] * vecs[j*n+k]
			}
			out[i*n+j] = sum
			out[j*n+i] = sum
		}
	}
	return out, nil
}

// traceSqrtProduct computes tr(sqrt(cx cy)) for symmetric positive
// semi-definite cx and cy via the symmetric form
// tr(sqrt(sqrt(cx) cy sqrt(cx))), which equals the sum of the square roots
// of that symmetric matrix's eigenvalues.
func traceSqrtProduct(cx, cy []float64, n int) (float64, error) {
	sx, err := sqrtSym(cx, n)
	if err != nil {
		return 0, err
	}

	// m = sx * cy * sx
	tmp := matMulSquare(sx, cy, n)
	m := matMulSquare(tmp, sx, n)
	// Symmetrize round-off before the eigensolve.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			avg := (m[i*n+j] + m[j*n+i]) / 2
			m[i*n+j] = avg
			m[j*n+i] = avg
		}
	}

	vals, _, err := symEig(m, n)
	if err != nil {
		return 0, err
	}
	var trace float64
	for _, v := range vals {
		if v > 0 {
			trace += math.Sqrt(v)
		}
	}
	return trace, nil
}

func matMulSquare(a, b []float64, n int) []float64 {
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			aik := a[i*n+k]
			if aik == 0 {
				continue
			}
			bRow := b[k*n : (k+1)*n]
			oRow := out[i*n : (i+1)*n]
			for j, bv := range bRow {
				oRow[j] += aik * bv
			}
		}
	}
	return out
}
