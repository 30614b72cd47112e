package mesh

// Shape function values and derivatives on the parent domain. Node
// ordering is corners first, then midside nodes following the corner
// circulation: line2 (-1,+1); line3 (-1,0,+1); tri corners (0,0),
// (1,0),(0,1) then midsides 1-2, 2-3, 3-1; quad corners (-1,-1),
// (1,-1),(1,1),(-1,1) then midsides 1-2, 2-3, 3-4, 4-1.

func shapeCount(s Shape) int {
	switch s {
	case ShapeConst:
		return 1
	case ShapeLine2:
		return 2
	case ShapeLine3, ShapeTri3:
		return 3
	case ShapeTri6:
		return 6
	case ShapeQuad4:
		return 4
	case ShapeQuad8:
		return 8
	}
	panic("unknown shape")
}

// shapeEval writes the shape function values at (xi, eta) into dst.
func shapeEval(s Shape, xi, eta float64, dst []float64) {
	switch s {
	case ShapeConst:
		dst[0] = 1
	case ShapeLine2:
		dst[0] = 0.5 * (1 - xi)
		dst[1] = 0.5 * (1 + xi)
	case ShapeLine3:
		dst[0] = 0.5 * xi * (xi - 1)
		dst[1] = 1 - xi*xi
		dst[2] = 0.5 * xi * (xi + 1)
	case ShapeTri3:
		dst[0] = 1 - xi - eta
		dst[1] = xi
		dst[2] = eta
	case ShapeTri6:
		lam := 1 - xi - eta
		dst[0] = lam * (2*lam - 1)
		dst[1] = xi * (2*xi - 1)
		dst[2] = eta * (2*eta - 1)
		dst[3] = 4 * xi * lam
		dst[4] = 4 * xi * eta
		dst[5] = 4 * eta * lam
	case ShapeQuad4:
		for i, c := range quadCorners {
			dst[i] = 0.25 * (1 + xi*c[0]) * (1 + eta*c[1])
		}
	case ShapeQuad8:
		for i, c := range quadCorners {
			dst[i] = 0.25 * (1 + xi*c[0]) * (1 + eta*c[1]) * (xi*c[0] + eta*c[1] - 1)
		}
		dst[4] = 0.5 * (1 - xi*xi) * (1 - eta)
		dst[5] = 0.5 * (1 + xi) * (1 - eta*eta)
		dst[6] = 0.5 * (1 - xi*xi) * (1 + eta)
		dst[7] = 0.5 * (1 - xi) * (1 - eta*eta)
	default:
		panic("unknown shape")
	}
}

// shapeDeriv writes d/dxi into dxi and d/deta into deta. For line
// shapes deta is left untouched and may be nil.
func shapeDeriv(s Shape, xi, eta float64, dxi, deta []float64) {
	switch s {
	case ShapeConst:
		dxi[0] = 0
		if deta != nil {
			deta[0] = 0
		}
	case ShapeLine2:
		dxi[0], dxi[1] = -0.5, 0.5
	case ShapeLine3:
		dxi[0] = xi - 0.5
		dxi[1] = -2 * xi
		dxi[2] = xi + 0.5
	case ShapeTri3:
		dxi[0], dxi[1], dxi[2] = -1, 1, 0
		deta[0], deta[1], deta[2] = -1, 0, 1
	case ShapeTri6:
		lam := 1 - xi - eta
		dxi[0] = 1 - 4*lam
		dxi[1] = 4*xi - 1
		dxi[2] = 0
		dxi[3] = 4 * (lam - xi)
		dxi[4] = 4 * eta
		dxi[5] = -4 * eta
		deta[0] = 1 - 4*lam
		deta[1] = 0
		deta[2] = 4*eta - 1
		deta[3] = -4 * xi
		deta[4] = 4 * xi
		deta[5] = 4 * (lam - eta)
	case ShapeQuad4:
		for i, c := range quadCorners {
			dxi[i] = 0.25 * c[0] * (1 + eta*c[1])
			deta[i] = 0.25 * c[1] * (1 + xi*c[0])
		}
	case ShapeQuad8:
		for i, c := range quadCorners {
			dxi[i] = 0.25 * c[0] * (1 + eta*c[1]) * (2*xi*c[0] + eta*c[1])
			deta[i] = 0.25 * c[1] * (1 + xi*c[0]) * (xi*c[0] + 2*eta*c[1])
		}
		dxi[4] = -xi * (1 - eta)
		deta[4] = -0.5 * (1 - xi*xi)
		dxi[5] = 0.5 * (1 - eta*eta)
		deta[5] = -eta * (1 + xi)
		dxi[6] = -xi * (1 + eta)
		deta[6] = 0.5 * (1 - xi*xi)
		dxi[7] = -0.5 * (1 - eta*eta)
		deta[7] = -eta * (1 - xi)
	default:
		panic("unknown shape")
	}
}

var quadCorners = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// centroid returns the parent-domain coordinates of the centroid.
func centroid(p Parent) (xi, eta float64) {
	if p == ParentTri {
		return 1. / 3., 1. / 3.
	}
	return 0, 0
}
