package tensor

import "testing"

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw error: %v", err)
	}
	if !raw.Shape().Equal(Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", raw.Shape())
	}
	if raw.DType() != Float32 {
		t.Errorf("DType() = %v, want Float32", raw.DType())
	}
	if raw.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", raw.NumElements())
	}
	if raw.ByteSize() != 24 {
		t.Errorf("ByteSize() = %d, want 24", raw.ByteSize())
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, 0}, Float32, CPU); err == nil {
		t.Error("NewRaw with zero dimension should fail")
	}
}

func TestRawTensorAsFloat32(t *testing.T) {
	raw, err := NewRaw(Shape{4}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw error: %v", err)
	}
	data := raw.AsFloat32()
	if len(data) != 4 {
		t.Fatalf("len(AsFloat32()) = %d, want 4", len(data))
	}
	data[2] = 1.5
	if raw.AsFloat32()[2] != 1.5 {
		t.Error("write through AsFloat32 not visible")
	}
}

func TestRawTensorAsFloat32WrongType(t *testing.T) {
	raw, _ := NewRaw(Shape{4}, Float64, CPU)
	defer func() {
		if recover() == nil {
			t.Error("AsFloat32 on Float64 tensor should panic")
		}
	}()
	raw.AsFloat32()
}

func TestRawTensorCloneSharesBuffer(t *testing.T) {
	raw, _ := NewRaw(Shape{3}, Float32, CPU)
	raw.AsFloat32()[0] = 7

	clone := raw.Clone()
	if clone.AsFloat32()[0] != 7 {
		t.Error("clone does not see original data")
	}
	if raw.IsUnique() {
		t.Error("IsUnique() = true after Clone")
	}

	// Writes through a clone are visible in the original (shared buffer).
	clone.AsFloat32()[1] = 9
	if raw.AsFloat32()[1] != 9 {
		t.Error("clone write not visible in original")
	}

	clone.Release()
	if !raw.IsUnique() {
		t.Error("IsUnique() = false after clone released")
	}
}

func TestRawTensorCopyIsIndependent(t *testing.T) {
	raw, _ := NewRaw(Shape{3}, Float32, CPU)
	raw.AsFloat32()[0] = 7

	cp := raw.Copy()
	cp.AsFloat32()[0] = 11
	if raw.AsFloat32()[0] != 7 {
		t.Errorf("Copy write leaked into original: got %g, want 7", raw.AsFloat32()[0])
	}
	if !raw.IsUnique() {
		t.Error("IsUnique() = false after Copy")
	}
}

func TestInferDataType(t *testing.T) {
	if got := inferDataType(float32(0)); got != Float32 {
		t.Errorf("inferDataType(float32) = %v, want Float32", got)
	}
	if got := inferDataType(float64(0)); got != Float64 {
		t.Errorf("inferDataType(float64) = %v, want Float64", got)
	}
	if got := inferDataType(uint8(0)); got != Uint8 {
		t.Errorf("inferDataType(uint8) = %v, want Uint8", got)
	}
}

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dt   DataType
		want int
	}{
		{Float32, 4},
		{Float64, 8},
		{Uint8, 1},
	}
	for _, tt := range tests {
		if got := tt.dt.Size(); got != tt.want {
			t.Errorf("%v.Size() = %d, want %d", tt.dt, got, tt.want)
		}
	}
}
