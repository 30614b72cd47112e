package bem

import (
	"fmt"
	"math"

	"github.com/soildyn/gobem/greens"
	"github.com/soildyn/gobem/mesh"
	"github.com/soildyn/gobem/utils"
)

// Options selects what Assemble produces. A nil Selection assembles
// the dense influence matrices; otherwise only the selected entries.
type Options struct {
	WantU, WantT bool
	Selection    *Selection
}

// Assemble integrates the fundamental solution over every element of
// the mesh context and accumulates the displacement (U) and traction
// (T) influence matrices. Dense matrices have nDof*nColl rows and
// columns per batch slab; selections produce MS x NS slabs. The same
// integration routes feed both, so selected entries agree exactly with
// their dense counterparts.
func Assemble(ctx *mesh.Context, g greens.Provider, opts Options) (U, T *BatchMatrix, err error) {
	if !opts.WantU && !opts.WantT {
		return nil, nil, fmt.Errorf("nothing to assemble: neither U nor T requested")
	}
	if err = greens.Validate(g); err != nil {
		return nil, nil, err
	}
	nDof, _ := greens.ColDOF(g.UComponents())
	rot, err := chooseRotator(ctx.Dim(), g.UComponents())
	if err != nil {
		return nil, nil, err
	}
	var (
		cx   = g.Complexity()
		nSet = g.NSet()
		tgt  target
	)
	if sel := opts.Selection; sel != nil {
		if sel.nDof != nDof {
			return nil, nil, fmt.Errorf("selection built for %d degrees of freedom, kernel has %d", sel.nDof, nDof)
		}
		if max := sel.MaxColl(); max >= ctx.NColl() {
			return nil, nil, fmt.Errorf("selection references collocation point %d, mesh has %d", max, ctx.NColl())
		}
		st := &selTarget{sel: sel}
		if opts.WantU {
			U = NewBatchMatrix(sel.MS, sel.NS, nSet, cx.UG)
			st.U = U
		}
		if opts.WantT {
			T = NewBatchMatrix(sel.MS, sel.NS, nSet, cx.TG || cx.TG0)
			st.T = T
		}
		tgt = st
	} else {
		var (
			n  = nDof * ctx.NColl()
			dt = &denseTarget{nDof: nDof}
		)
		if opts.WantU {
			U = NewBatchMatrix(n, n, nSet, cx.UG)
			dt.U = U
		}
		if opts.WantT {
			T = NewBatchMatrix(n, n, nSet, cx.TG || cx.TG0)
			dt.T = T
		}
		tgt = dt
	}

	var (
		w        = newScratch(ctx.Dim(), nDof, g, rot, opts.WantT)
		rows     = collRows(ctx, opts.Selection)
		regRows  = make([]int, 0, len(rows))
		singRows = make([]int, 0, 8)
	)
	for iElt := 0; iElt < ctx.NElt(); iElt++ {
		regRows, singRows = regRows[:0], singRows[:0]
		for _, ic := range rows {
			if ctx.IsRegular(iElt, ic) {
				regRows = append(regRows, ic)
			} else {
				singRows = append(singRows, ic)
			}
		}
		if err = integrateRegular(ctx, iElt, regRows, w, tgt, opts.Selection == nil); err != nil {
			return nil, nil, err
		}
		if opts.Selection != nil && opts.WantT {
			if err = integrateDiagonal(ctx, iElt, opts.Selection, w, tgt); err != nil {
				return nil, nil, err
			}
		}
		if err = integrateSingular(ctx, iElt, singRows, w, tgt); err != nil {
			return nil, nil, err
		}
	}
	return
}

// collRows lists the row collocation points a pass visits: all of them
// for dense assembly, the selection's unique rows otherwise.
func collRows(ctx *mesh.Context, sel *Selection) utils.Index {
	if sel == nil {
		return utils.NewRange(0, ctx.NColl()-1)
	}
	return sel.order
}

// scratch holds the per-call kernel and rotation buffers; nothing is
// shared between Assemble calls.
type scratch struct {
	dim, nDof int
	g         greens.Provider
	rot       rotator
	wantT     bool

	u, t, t0 *greens.Batch
	U, T, T0 *kblock
}

func newScratch(dim, nDof int, g greens.Provider, rot rotator, wantT bool) *scratch {
	var (
		cx   = g.Complexity()
		nSet = g.NSet()
	)
	return &scratch{
		dim: dim, nDof: nDof, g: g, rot: rot, wantT: wantT,
		u:  greens.NewBatch(g.UComponents(), nSet),
		t:  greens.NewBatch(g.TComponents(), nSet),
		t0: greens.NewBatch(g.TComponents(), nSet),
		U:  newKblock(nDof, nSet, cx.UG),
		T:  newKblock(nDof, nSet, cx.TG),
		T0: newKblock(nDof, nSet, cx.TG0),
	}
}

// kernelAt evaluates the kernel between a collocation point and one
// quadrature point (position pos, unit normal nrm) and rotates it into
// the Cartesian blocks.
func (w *scratch) kernelAt(cp mesh.CollPoint, pos, nrm []float64) error {
	var (
		dx = pos[0] - cp.X[0]
		dy = pos[1] - cp.X[1]
		dz = pos[2] - cp.X[2]
		f  frame
		r  float64
	)
	if w.dim == 3 {
		r = math.Hypot(dx, dy)
		if r == 0 {
			f.cos, f.sin = 1, 0
		} else {
			f.cos, f.sin = dx/r, dy/r
		}
	} else {
		r = math.Abs(dx)
		f.sgn = 1
		if dx < 0 {
			f.sgn = -1
		}
	}
	if err := w.g.Evaluate(cp.X[2], r, dz, w.wantT, w.u, w.t, w.t0); err != nil {
		return err
	}
	w.rot(f, nrm, w.u, w.t, w.t0, w.U, w.T, w.T0, w.wantT)
	return nil
}
