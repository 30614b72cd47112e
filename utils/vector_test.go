package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector(t *testing.T) {
	v := NewVector(3, []float64{1, 2, 3})
	require.Equal(t, 3, v.Len())
	assert.Equal(t, 2., v.AtVec(1))
	assert.Equal(t, 6., v.Sum())
	assert.Equal(t, 1., v.Min())
	assert.Equal(t, 3., v.Max())

	// POW and Scale change the receiver
	w := v.Copy().POW(2)
	assert.Equal(t, []float64{1, 4, 9}, w.Data())
	w.Scale(0.5)
	assert.Equal(t, []float64{0.5, 2, 4.5}, w.Data())
	assert.Equal(t, []float64{1, 2, 3}, v.Data())

	u := NewVectorConstant(4, 2.5)
	assert.Equal(t, 10., u.Sum())
}

func TestDOK(t *testing.T) {
	d := NewDOK(3, 3)
	d.Set(0, 1, 2.)
	d.Set(2, 2, -1.)
	assert.Equal(t, 2, d.NNZ())
	assert.Equal(t, 2., d.At(0, 1))
	csr := d.ToCSR()
	assert.Equal(t, -1., csr.At(2, 2))
	d.SetReadOnly("d")
	assert.Panics(t, func() { d.Set(1, 1, 1.) })
}
