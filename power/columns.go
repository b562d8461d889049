package power

import "strings"

// Columns locates the scoring columns of a record table. Indexes are -1 when
// the header is missing.
type Columns struct {
	Division int
	Prelim   int
	Elims    map[string]int
}

// DetectColumns finds the first header starting with "Division", the first
// starting with "Pre", and the first starting with each elimination prefix.
// It reports false when Division or Pre is missing.
func DetectColumns(headers []string) (Columns, bool) {
	cols := Columns{Division: -1, Prelim: -1, Elims: make(map[string]int)}
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if cols.Division == -1 && strings.HasPrefix(h, "Division") {
			cols.Division = i
		}
		if cols.Prelim == -1 && strings.HasPrefix(h, "Pre") {
			cols.Prelim = i
		}
		for _, round := range ElimRounds {
			if _, seen := cols.Elims[round]; !seen && strings.HasPrefix(h, round) {
				cols.Elims[round] = i
			}
		}
	}
	return cols, cols.Division != -1 && cols.Prelim != -1
}

// Row extracts a Row from a table row's cell texts. Short rows yield empty
// cells for the missing columns.
func (c Columns) Row(cells []string) Row {
	r := Row{
		Division: cellAt(cells, c.Division),
		Prelim:   cellAt(cells, c.Prelim),
		Elims:    make(map[string]string, len(c.Elims)),
	}
	for round, idx := range c.Elims {
		r.Elims[round] = cellAt(cells, idx)
	}
	return r
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
