package rankings

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CSV column layout of the ranking sheet.
const (
	colSchool  = 0
	colLast1   = 1
	colLast2   = 2
	colPoints  = 6
	minColumns = 7
)

// Table maps a TeamCode to its accumulated points. A built Table is never
// modified; callers that need a different table build a new one.
type Table map[string]float64

// Points looks up a code after normalizing it.
func (t Table) Points(code string) (float64, bool) {
	p, ok := t[NormalizeCode(code)]
	return p, ok
}

// Len reports the number of codes, counting both initial orders.
func (t Table) Len() int {
	return len(t)
}

// BuildTable parses ranking CSV text. The header row is skipped and fields are
// split on a bare comma with no quote handling, so a school name containing a
// comma misparses and its row is dropped like any other malformed row.
// Points from rows that share a code are summed under both initial orders.
func BuildTable(csv string, n *Normalizer) Table {
	table := make(Table)
	if n == nil {
		n = &Normalizer{}
	}

	lines := strings.Split(csv, "\n")
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(strings.TrimSuffix(lines[i], "\r"))
		if line == "" {
			continue
		}

		cols := strings.Split(line, ",")
		if len(cols) < minColumns {
			continue
		}

		schoolRaw := cols[colSchool]
		last1 := strings.TrimSpace(cols[colLast1])
		last2 := strings.TrimSpace(cols[colLast2])
		pointsStr := strings.TrimSpace(cols[colPoints])
		if schoolRaw == "" || last1 == "" || last2 == "" || pointsStr == "" {
			continue
		}

		points, err := strconv.ParseFloat(pointsStr, 64)
		if err != nil || math.IsNaN(points) || math.IsInf(points, 0) {
			continue
		}

		school := n.School(schoolRaw)
		a := initial(last1)
		b := initial(last2)

		ab, ba := Code(school, a, b), Code(school, b, a)
		table[ab] += points
		if ba != ab {
			table[ba] += points
		}
	}

	return table
}

func initial(name string) rune {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.ToUpper(r)
}
