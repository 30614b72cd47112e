// Package bem assembles boundary-element influence matrices: dense or
// selectively-indexed displacement (U) and traction (T) blocks obtained
// by integrating a fundamental solution against the element shape
// functions of a mesh context.
package bem

import (
	"fmt"
)

// BatchMatrix is a stack of NSet equally-shaped real/imaginary matrix
// slabs with layout idx = iSet*Rows*Cols + col*Rows + row (column-major
// per slab, row fastest). Im is always allocated; it is written only
// when the kernel block is complex.
type BatchMatrix struct {
	Rows, Cols, NSet int
	Cmplx            bool
	Re, Im           []float64
}

func NewBatchMatrix(rows, cols, nSet int, cmplx bool) *BatchMatrix {
	n := rows * cols * nSet
	return &BatchMatrix{
		Rows: rows, Cols: cols, NSet: nSet,
		Cmplx: cmplx,
		Re:    make([]float64, n),
		Im:    make([]float64, n),
	}
}

func (b *BatchMatrix) index(row, col, iSet int) int {
	return iSet*b.Rows*b.Cols + col*b.Rows + row
}

// At returns the real and imaginary parts of one entry.
func (b *BatchMatrix) At(row, col, iSet int) (re, im float64) {
	if row < 0 || row >= b.Rows || col < 0 || col >= b.Cols || iSet < 0 || iSet >= b.NSet {
		panic(fmt.Errorf("BatchMatrix.At(%d,%d,%d) out of range %dx%dx%d", row, col, iSet, b.Rows, b.Cols, b.NSet))
	}
	i := b.index(row, col, iSet)
	return b.Re[i], b.Im[i]
}

// kblock is one rotated kernel block: n x n Cartesian components per
// parameter set, re[iSet*n*n + n*i + j], i the receiver component and
// j the load direction. cmplx mirrors the kernel complexity flag of
// the block's source.
type kblock struct {
	n, nSet int
	cmplx   bool
	re, im  []float64
}

func newKblock(n, nSet int, cmplx bool) *kblock {
	return &kblock{
		n: n, nSet: nSet, cmplx: cmplx,
		re: make([]float64, n*n*nSet),
		im: make([]float64, n*n*nSet),
	}
}
