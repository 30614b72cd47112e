package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/soildyn/gobem/utils"
)

// Rule is a quadrature rule on a parent domain: natural coordinates
// (2 x n, row 0 = xi, row 1 = eta) and weights. Line rules leave the
// eta row zero. Triangle rule weights sum to the parent area 1/2,
// line rules to 2, quad rules to 4.
type Rule struct {
	Xi utils.Matrix
	W  utils.Vector
}

func (r Rule) Len() int { return r.W.Len() }

// GaussLegendre computes the n-point Gauss-Legendre rule on [-1,1] via
// the eigenvalues of the symmetric tridiagonal Jacobi matrix; the
// weights come from the squared first components of the eigenvectors.
func GaussLegendre(n int) (x, w []float64) {
	if n < 1 {
		panic(fmt.Errorf("GaussLegendre: need at least one point, have %d", n))
	}
	if n == 1 {
		return []float64{0}, []float64{2}
	}
	var (
		d0 = make([]float64, n)
		d1 = make([]float64, n-1)
	)
	for i := 0; i < n-1; i++ {
		ip1 := float64(i + 1)
		d1[i] = ip1 / math.Sqrt((2*ip1-1)*(2*ip1+1))
	}
	JJ := utils.NewSymTriDiagonal(d0, d1)

	var eig mat.EigenSym
	ok := eig.Factorize(JJ, true)
	if !ok {
		panic("eigenvalue decomposition failed")
	}
	x = eig.Values(x)

	VVr := mat.NewDense(n, n, nil)
	eig.VectorsTo(VVr)
	w = make([]float64, n)
	for i, v := range VVr.RawRowView(0) {
		w[i] = 2 * v * v
	}
	// enforce the exact symmetry of the rule; the midpoint of odd
	// rules becomes an exact zero
	for i := 0; i < n/2; i++ {
		k := n - 1 - i
		s := 0.5 * (x[k] - x[i])
		x[i], x[k] = -s, s
		ww := 0.5 * (w[i] + w[k])
		w[i], w[k] = ww, ww
	}
	if n%2 == 1 {
		x[n/2] = 0
	}
	return
}

// NewLineRule subdivides [-1,1] into nDiv equal segments and places an
// nGauss-point Gauss-Legendre rule in each.
func NewLineRule(nGauss, nDiv int) (r Rule, err error) {
	if nGauss < 1 || nDiv < 1 {
		err = fmt.Errorf("invalid line rule: nGauss = %d, nDiv = %d", nGauss, nDiv)
		return
	}
	var (
		x, w = GaussLegendre(nGauss)
		n    = nGauss * nDiv
		h    = 2. / float64(nDiv)
	)
	r.Xi = utils.NewMatrix(2, n)
	r.W = utils.NewVector(n)
	xd, wd := r.Xi.Data(), r.W.Data()
	for k := 0; k < nDiv; k++ {
		a := -1 + float64(k)*h
		for i := 0; i < nGauss; i++ {
			xd[k*nGauss+i] = a + 0.5*(x[i]+1)*h
			wd[k*nGauss+i] = w[i] / float64(nDiv)
		}
	}
	return
}

// NewQuadRule is the tensor product of two subdivided line rules.
func NewQuadRule(nGauss, nDiv int) (r Rule, err error) {
	var line Rule
	if line, err = NewLineRule(nGauss, nDiv); err != nil {
		return
	}
	var (
		n1 = line.Len()
		n  = n1 * n1
		lx = line.Xi.Data()
		lw = line.W.Data()
	)
	r.Xi = utils.NewMatrix(2, n)
	r.W = utils.NewVector(n)
	xd, wd := r.Xi.Data(), r.W.Data()
	for j := 0; j < n1; j++ {
		for i := 0; i < n1; i++ {
			ind := j*n1 + i
			xd[ind] = lx[i]
			xd[n+ind] = lx[j]
			wd[ind] = lw[i] * lw[j]
		}
	}
	return
}

// Symmetric triangle rules on the unit triangle (0,0)-(1,0)-(0,1),
// identified by total point count. Weights sum to the area 1/2.
type triGroup struct {
	a, b, w float64 // barycentric parameters and weight per point
	n       int     // 1 (centroid), 3 or 6 permutations
}

var triRules = map[int][]triGroup{
	1: {{n: 1, w: 0.5}},
	3: {{n: 3, a: 1. / 6., w: 1. / 6.}},
	4: {
		{n: 1, w: -27. / 96.},
		{n: 3, a: 0.2, w: 25. / 96.},
	},
	6: {
		{n: 3, a: 0.445948490915965, w: 0.111690794839005},
		{n: 3, a: 0.091576213509771, w: 0.054975871827661},
	},
	7: {
		{n: 1, w: 0.1125},
		{n: 3, a: 0.470142064105115, w: 0.066197076394253},
		{n: 3, a: 0.101286507323456, w: 0.062969590272414},
	},
	12: {
		{n: 3, a: 0.249286745170910, w: 0.058393137863190},
		{n: 3, a: 0.063089014491502, w: 0.025422453185104},
		{n: 6, a: 0.310352451033785, b: 0.053145049844816, w: 0.041425537809187},
	},
	13: {
		{n: 1, w: -0.074785022233835},
		{n: 3, a: 0.260345966079038, w: 0.087807628716602},
		{n: 3, a: 0.065130102902216, w: 0.026673617804420},
		{n: 6, a: 0.312865496004875, b: 0.048690315425316, w: 0.038556880445128},
	},
}

// NewTriRule returns the symmetric rule with the given point count.
// Supported counts: 1, 3, 4, 6, 7, 12, 13.
func NewTriRule(nGauss int) (r Rule, err error) {
	groups, ok := triRules[nGauss]
	if !ok {
		err = fmt.Errorf("unsupported triangle rule: %d points", nGauss)
		return
	}
	r.Xi = utils.NewMatrix(2, nGauss)
	r.W = utils.NewVector(nGauss)
	var (
		xd, wd = r.Xi.Data(), r.W.Data()
		ip     int
	)
	put := func(xi, eta, w float64) {
		xd[ip] = xi
		xd[nGauss+ip] = eta
		wd[ip] = w
		ip++
	}
	for _, g := range groups {
		switch g.n {
		case 1:
			put(1./3., 1./3., g.w)
		case 3:
			// permutations of barycentric (1-2a, a, a)
			put(g.a, g.a, g.w)
			put(1-2*g.a, g.a, g.w)
			put(g.a, 1-2*g.a, g.w)
		case 6:
			c := 1 - g.a - g.b
			put(g.a, g.b, g.w)
			put(g.b, g.a, g.w)
			put(g.a, c, g.w)
			put(c, g.a, g.w)
			put(g.b, c, g.w)
			put(c, g.b, g.w)
		}
	}
	return
}

// NewTriRuleSubdivided splits the unit triangle into nDiv^2 congruent
// subtriangles and maps the base rule into each; all points are strictly
// interior to their cell, so none can land on a vertex or edge of the
// parent triangle.
func NewTriRuleSubdivided(nGauss, nDiv int) (r Rule, err error) {
	if nDiv < 1 {
		err = fmt.Errorf("invalid triangle subdivision: nDiv = %d", nDiv)
		return
	}
	var base Rule
	if base, err = NewTriRule(nGauss); err != nil {
		return
	}
	var (
		nb     = base.Len()
		n      = nb * nDiv * nDiv
		inv    = 1. / float64(nDiv)
		wScale = inv * inv
		bx     = base.Xi.Data()
		bw     = base.W.Data()
		ip     int
	)
	r.Xi = utils.NewMatrix(2, n)
	r.W = utils.NewVector(n)
	xd, wd := r.Xi.Data(), r.W.Data()
	put := func(xi, eta, w float64) {
		xd[ip] = xi
		xd[n+ip] = eta
		wd[ip] = w
		ip++
	}
	for i := 0; i < nDiv; i++ {
		for j := 0; j < nDiv-i; j++ {
			// upright cell
			for q := 0; q < nb; q++ {
				put((float64(i)+bx[q])*inv, (float64(j)+bx[nb+q])*inv, bw[q]*wScale)
			}
			// inverted cell
			if j < nDiv-i-1 {
				for q := 0; q < nb; q++ {
					put((float64(i+1)-bx[q])*inv, (float64(j+1)-bx[nb+q])*inv, bw[q]*wScale)
				}
			}
		}
	}
	return
}

// ruleFor selects the quadrature rule for an element type; the singular
// variant uses the refined subdivided settings.
func ruleFor(et ElementType, singular bool) (Rule, error) {
	nGauss, nDiv := et.NGauss, et.NDiv
	if singular {
		nGauss, nDiv = et.NGaussSing, et.NDivSing
	}
	switch et.Parent {
	case ParentLine:
		return NewLineRule(nGauss, nDiv)
	case ParentTri:
		if singular {
			return NewTriRuleSubdivided(nGauss, nDiv)
		}
		return NewTriRule(nGauss)
	case ParentQuad:
		return NewQuadRule(nGauss, nDiv)
	}
	return Rule{}, fmt.Errorf("unknown parent shape %v", et.Parent)
}
