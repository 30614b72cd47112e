package bem

// target receives weighted kernel blocks from the integrators. addU and
// addT accumulate the block at (row, col) of the influence matrices;
// subT0 removes the static traction block at the diagonal of the given
// row, regularizing the strongly singular kernel.
type target interface {
	addU(rowColl, colColl int, w float64, blk *kblock)
	addT(rowColl, colColl int, w float64, blk *kblock)
	subT0(rowColl int, w float64, blk *kblock)
}

// denseTarget writes full influence matrices: collocation point i,
// component k maps to matrix index nDof*i+k.
type denseTarget struct {
	U, T *BatchMatrix
	nDof int
}

func (d *denseTarget) add(m *BatchMatrix, rowColl, colColl int, w float64, blk *kblock, sign float64) {
	if m == nil {
		return
	}
	var (
		n       = blk.n
		rowBeg  = d.nDof * rowColl
		colBeg  = d.nDof * colColl
		slab    = m.Rows * m.Cols
		kOffset int
	)
	for iSet := 0; iSet < blk.nSet; iSet++ {
		kOffset = iSet * n * n
		for j := 0; j < n; j++ {
			ind := iSet*slab + (colBeg+j)*m.Rows + rowBeg
			for i := 0; i < n; i++ {
				m.Re[ind+i] += sign * w * blk.re[kOffset+n*i+j]
			}
			if blk.cmplx {
				for i := 0; i < n; i++ {
					m.Im[ind+i] += sign * w * blk.im[kOffset+n*i+j]
				}
			}
		}
	}
}

func (d *denseTarget) addU(rowColl, colColl int, w float64, blk *kblock) {
	d.add(d.U, rowColl, colColl, w, blk, 1)
}

func (d *denseTarget) addT(rowColl, colColl int, w float64, blk *kblock) {
	d.add(d.T, rowColl, colColl, w, blk, 1)
}

func (d *denseTarget) subT0(rowColl int, w float64, blk *kblock) {
	d.add(d.T, rowColl, rowColl, w, blk, -1)
}

// selTarget writes only the requested entries; the output slot of
// quadruple s is the flat position s within each batch slab.
type selTarget struct {
	sel  *Selection
	U, T *BatchMatrix
}

func (t *selTarget) add(m *BatchMatrix, rowColl, colColl int, w float64, blk *kblock) {
	if m == nil {
		return
	}
	row := t.sel.rows[rowColl]
	if row == nil {
		return
	}
	var (
		n    = blk.n
		slab = m.Rows * m.Cols
	)
	for _, s := range row.slots {
		q := t.sel.quads[s]
		if q.ColColl != colColl {
			continue
		}
		k := n*q.RowComp + q.ColComp
		for iSet := 0; iSet < blk.nSet; iSet++ {
			m.Re[iSet*slab+s] += w * blk.re[iSet*n*n+k]
			if blk.cmplx {
				m.Im[iSet*slab+s] += w * blk.im[iSet*n*n+k]
			}
		}
	}
}

func (t *selTarget) addU(rowColl, colColl int, w float64, blk *kblock) {
	t.add(t.U, rowColl, colColl, w, blk)
}

func (t *selTarget) addT(rowColl, colColl int, w float64, blk *kblock) {
	t.add(t.T, rowColl, colColl, w, blk)
}

func (t *selTarget) subT0(rowColl int, w float64, blk *kblock) {
	if t.T == nil {
		return
	}
	row := t.sel.rows[rowColl]
	if row == nil {
		return
	}
	var (
		n    = blk.n
		slab = t.T.Rows * t.T.Cols
	)
	sub := func(s, k int) {
		for iSet := 0; iSet < blk.nSet; iSet++ {
			t.T.Re[iSet*slab+s] -= w * blk.re[iSet*n*n+k]
			if blk.cmplx {
				t.T.Im[iSet*slab+s] -= w * blk.im[iSet*n*n+k]
			}
		}
	}
	if row.blockDiag {
		for k, s := range row.diag {
			sub(s, k)
		}
		return
	}
	for k, s := range row.diag {
		if s < 0 {
			continue
		}
		// the slot must still address the diagonal block of this row
		if q := t.sel.quads[s]; q.ColColl != row.coll {
			continue
		}
		sub(s, k)
	}
}
