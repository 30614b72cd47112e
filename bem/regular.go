package bem

import (
	"github.com/soildyn/gobem/mesh"
)

// integrateRegular accumulates the contributions of element iElt to the
// given regular rows with the element's regular quadrature rule. In
// dense mode (inlineT0) the static traction block is subtracted at the
// row's diagonal for every element collocation weight, regularizing the
// traction matrix in the same pass.
func integrateRegular(ctx *mesh.Context, iElt int, rows []int, w *scratch, tgt target, inlineT0 bool) error {
	if len(rows) == 0 {
		return nil
	}
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
	for _, iColl := range rows {
		cp := ctx.Coll(iColl)
		for q := 0; q < nq; q++ {
			if err := w.kernelAt(cp, pd[3*q:3*q+3], nd[3*q:3*q+3]); err != nil {
				return err
			}
			base := hd[q] * jd[q]
			for j := 0; j < nc; j++ {
				scale := base * md[q*nc+j]
				if scale == 0 {
					continue
				}
				tgt.addU(iColl, eltColl[j], scale, w.U)
				if w.wantT {
					tgt.addT(iColl, eltColl[j], scale, w.T)
					if inlineT0 {
						tgt.subT0(iColl, scale, w.T0)
					}
				}
			}
		}
	}
	return nil
}
