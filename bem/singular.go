package bem

import (
	"fmt"

	"github.com/soildyn/gobem/mesh"
)

// integrateSingular handles the rows whose collocation point lies on
// element iElt, using the refined subdivided rule so that no quadrature
// point can coincide with the point. The static traction block is
// subtracted at the diagonal inline, in dense and selection mode alike.
func integrateSingular(ctx *mesh.Context, iElt int, rows []int, w *scratch, tgt target) error {
	if len(rows) == 0 {
		return nil
	}
	var (
		pos, nrm, jac = ctx.Geometry(iElt, true)
		M             = ctx.Interp(iElt, true)
		H             = ctx.Weights(iElt, true)
		eltColl       = ctx.EltColl(iElt)
		nq            = jac.Len()
		nc            = len(eltColl)
		pd, nd        = pos.Data(), nrm.Data()
		md, hd, jd    = M.Data(), H.Data(), jac.Data()
	)
	for _, iColl := range rows {
		cp := ctx.Coll(iColl)
		for q := 0; q < nq; q++ {
			if pd[3*q] == cp.X[0] && pd[3*q+1] == cp.X[1] && pd[3*q+2] == cp.X[2] {
				return fmt.Errorf("An integration point coincides with the collocation point for singular integration.")
			}
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
					tgt.subT0(iColl, scale, w.T0)
				}
			}
		}
	}
	return nil
}
