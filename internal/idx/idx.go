// Package idx reads and writes 2D float32 matrices in the IDX binary
// format. The CLI uses it to interchange feature embeddings and prediction
// rows produced by external extraction pipelines.
//
// IDX layout for a 2D float32 matrix:
//
//	magic number: 0x00000D02 (type 0x0D = float32, 2 dimensions)
//	number of rows: 4 bytes
//	number of cols: 4 bytes
//	data: big-endian float32 values, row major
package idx

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const float32Magic2D = 0x00000D02

// Matrix is a dense row-major 2D float32 matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []float32
}

// ReadMatrix reads a 2D float32 IDX file.
func ReadMatrix(filename string) (*Matrix, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var magic uint32
	if err := binary.Read(file, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if magic != float32Magic2D {
		return nil, fmt.Errorf("invalid magic number: got 0x%08X, want 0x%08X", magic, float32Magic2D)
	}

	var rows, cols uint32
	if err := binary.Read(file, binary.BigEndian, &rows); err != nil {
		return nil, err
	}
	if err := binary.Read(file, binary.BigEndian, &cols); err != nil {
		return nil, err
	}
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", rows, cols)
	}

	data := make([]float32, int(rows)*int(cols))
	if err := binary.Read(file, binary.BigEndian, data); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, fmt.Errorf("truncated data for %dx%d matrix", rows, cols)
		}
		return nil, err
	}

	return &Matrix{Rows: int(rows), Cols: int(cols), Data: data}, nil
}

// WriteMatrix writes a 2D float32 IDX file.
func WriteMatrix(filename string, m *Matrix) error {
	if m.Rows <= 0 || m.Cols <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", m.Rows, m.Cols)
	}
	if len(m.Data) != m.Rows*m.Cols {
		return fmt.Errorf("expected %d values for %dx%d matrix, got %d", m.Rows*m.Cols, m.Rows, m.Cols, len(m.Data))
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, v := range []uint32{float32Magic2D, uint32(m.Rows), uint32(m.Cols)} {
		if err := binary.Write(file, binary.BigEndian, v); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := binary.Write(file, binary.BigEndian, m.Data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}
	return nil
}

// Row returns row i as a slice into the matrix data.
func (m *Matrix) Row(i int) []float32 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}
