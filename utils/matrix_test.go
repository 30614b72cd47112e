package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Transpose
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		mNr, mNc := M.Dims()
		A := M.Transpose()
		aNr, aNc := A.Dims()
		assert.Equal(t, aNc, mNr)
		assert.Equal(t, aNr, mNc)
		assert.Equal(t, A.RawMatrix().Data, []float64{1, 4, 2, 5, 3, 6})
	}
	// Mul
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		A := M.Mul(M.Transpose())
		assert.Equal(t, A.RawMatrix().Data, []float64{14, 32, 32, 77})
	}
	// Row / Col extraction
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		assert.Equal(t, M.Row(1).Data(), []float64{4, 5, 6})
		assert.Equal(t, M.Col(2).Data(), []float64{3, 6})
	}
	// SumRows
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		assert.Equal(t, M.SumRows().Data(), []float64{6, 15})
	}
	// Add, Scale change the receiver
	{
		M := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		M.Add(M.Copy().Scale(2))
		assert.Equal(t, M.Data(), []float64{3, 6, 9, 12})
	}
	// Read only matrices panic on write
	{
		M := NewMatrix(2, 2)
		M.SetReadOnly("M")
		assert.Panics(t, func() { M.Set(0, 0, 1) })
	}
}
