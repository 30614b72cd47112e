package bem

import (
	"github.com/soildyn/gobem/mesh"
)

// integrateDiagonal runs the selective counterpart of the inline dense
// regularization: for every selected row that is regular with respect
// to element iElt and requests diagonal entries, the static traction
// block is subtracted at those slots with the element's full
// interpolation weight.
func integrateDiagonal(ctx *mesh.Context, iElt int, sel *Selection, w *scratch, tgt target) error {
	var (
		pos, nrm, jac = ctx.Geometry(iElt, false)
		M             = ctx.Interp(iElt, false)
		H             = ctx.Weights(iElt, false)
		eltColl       = ctx.EltColl(iElt)
		nq            = jac.Len()
		nc            = len(eltColl)
		pd, nd        = pos.Data(), nrm.Data()
		md, hd, jd    = M.Data(), H.Data(), jac.Data()
	)
	for _, iColl := range sel.order {
		row := sel.rows[iColl]
		if !row.hasDiag || !ctx.IsRegular(iElt, iColl) {
			continue
		}
		cp := ctx.Coll(iColl)
		for q := 0; q < nq; q++ {
			if err := w.kernelAt(cp, pd[3*q:3*q+3], nd[3*q:3*q+3]); err != nil {
				return err
			}
			base := hd[q] * jd[q]
			for j := 0; j < nc; j++ {
				if scale := base * md[q*nc+j]; scale != 0 {
					tgt.subT0(iColl, scale, w.T0)
				}
			}
		}
	}
	return nil
}
