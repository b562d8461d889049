// Package power scores a team's season from its tournament-by-tournament
// record and maps the score to a qualitative strength label.
package power

import (
	"regexp"
	"strconv"
	"strings"
)

// ElimRounds are the elimination columns in ladder order, matched by
// header prefix: triples, doubles, octas, quarters, semis, finals.
var ElimRounds = []string{"Tri", "Dbs", "Oct", "Qrt", "Sem", "Fin"}

// Row is one tournament result. Elims is keyed by an ElimRounds entry; rounds
// the record table has no column for are simply absent.
type Row struct {
	Division string
	Prelim   string
	Elims    map[string]string
}

// Result is a computed power score and its label.
type Result struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

var prelimRecord = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)`)

// Compute sums every row's contribution and labels the total.
func Compute(rows []Row) Result {
	var total float64
	for _, r := range rows {
		total += r.Score()
	}
	return Result{Score: total, Label: Label(total)}
}

// Score is the row's division, prelim and elimination contribution.
func (r Row) Score() float64 {
	s := ScoreDivision(r.Division) + ScorePrelim(r.Prelim)
	for _, round := range ElimRounds {
		if cell, ok := r.Elims[round]; ok {
			s += ScoreElims(cell)
		}
	}
	return s
}

// ScoreDivision is 1 for an Open division, else 0. The match is case-sensitive.
func ScoreDivision(division string) float64 {
	if strings.Contains(division, "Open") {
		return 1
	}
	return 0
}

// ScorePrelim is wins minus losses from a leading "W-L" record such as "4-2"
// or "3.5 - 1.5". Anything else scores 0.
func ScorePrelim(cell string) float64 {
	m := prelimRecord.FindStringSubmatch(strings.TrimSpace(cell))
	if m == nil {
		return 0
	}
	wins, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	losses, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0
	}
	return wins - losses
}

// ScoreElims counts W and L ballots in a cell, ignoring every other
// character, and scores 2 per win minus 1 per loss.
func ScoreElims(cell string) float64 {
	var wins, losses int
	for _, ch := range strings.ToUpper(cell) {
		switch ch {
		case 'W':
			wins++
		case 'L':
			losses++
		}
	}
	return float64(2*wins - losses)
}

// Label buckets a score. Zero is "low".
func Label(score float64) string {
	switch {
	case score < 0:
		return "very low"
	case score < 10:
		return "low"
	case score < 20:
		return "mid"
	case score < 30:
		return "high"
	default:
		return "very high"
	}
}
