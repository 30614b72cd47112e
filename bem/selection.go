package bem

import (
	"fmt"

	"github.com/soildyn/gobem/utils"
)

// Quad addresses one requested output entry: a (collocation point,
// component) pair for the row and another for the column.
type Quad struct {
	RowColl, RowComp, ColColl, ColComp int
}

// selRow groups the output slots sharing one row collocation point.
// blockDiag is set when the row requests its complete diagonal block,
// enabling the fast diagonal path; diag maps each (rowComp, colComp)
// pair of the diagonal block to its output slot, -1 when absent.
type selRow struct {
	coll      int
	slots     utils.Index
	blockDiag bool
	hasDiag   bool
	diag      []int
}

// Selection is a partial-assembly request: ms*ns output entries in
// output order (column-major within each batch slab).
type Selection struct {
	MS, NS int
	nDof   int
	quads  []Quad
	rows   map[int]*selRow
	order  utils.Index // unique row collocation indices, first-seen order
}

// NewSelection validates the quadruples against the component count
// and precomputes the unique-row index.
func NewSelection(quads []Quad, ms, ns, nDof int) (*Selection, error) {
	if ms < 1 || ns < 1 || len(quads) != ms*ns {
		return nil, fmt.Errorf("selection needs ms*ns = %d quadruples, has %d", ms*ns, len(quads))
	}
	if nDof < 1 || nDof > 3 {
		return nil, fmt.Errorf("selection degrees of freedom must be 1, 2 or 3, is %d", nDof)
	}
	s := &Selection{
		MS: ms, NS: ns, nDof: nDof,
		quads: quads,
		rows:  make(map[int]*selRow),
	}
	for i, q := range quads {
		if q.RowComp < 0 || q.RowComp >= nDof || q.ColComp < 0 || q.ColComp >= nDof {
			return nil, fmt.Errorf("selection entry %d: component out of range for %d degrees of freedom", i, nDof)
		}
		if q.RowColl < 0 || q.ColColl < 0 {
			return nil, fmt.Errorf("selection entry %d: negative collocation index", i)
		}
		row := s.rows[q.RowColl]
		if row == nil {
			row = &selRow{coll: q.RowColl, diag: make([]int, nDof*nDof)}
			for k := range row.diag {
				row.diag[k] = -1
			}
			s.rows[q.RowColl] = row
			s.order = append(s.order, q.RowColl)
		}
		row.slots = append(row.slots, i)
		if q.ColColl == q.RowColl {
			row.diag[nDof*q.RowComp+q.ColComp] = i
		}
	}
	for _, ic := range s.order {
		row := s.rows[ic]
		row.blockDiag = true
		for _, slot := range row.diag {
			if slot < 0 {
				row.blockDiag = false
			} else {
				row.hasDiag = true
			}
		}
	}
	return s, nil
}

// MaxColl is the largest collocation index any quadruple references.
func (s *Selection) MaxColl() (max int) {
	for _, q := range s.quads {
		if q.RowColl > max {
			max = q.RowColl
		}
		if q.ColColl > max {
			max = q.ColColl
		}
	}
	return
}
