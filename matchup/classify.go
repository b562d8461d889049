// Package matchup turns two resolved rankings into per-side verdicts.
package matchup

import (
	"math"

	"tabroom-plus/rankings"
)

// DefaultMargin is the point gap below which two ranked teams are even.
const DefaultMargin = 2.0

type Verdict string

const (
	Strong   Verdict = "strong"
	Weak     Verdict = "weak"
	Even     Verdict = "even"
	Unranked Verdict = "unranked"
	NoData   Verdict = "no-data"
)

// Side is one team's outcome. Unranked drives the "Unranked" label and is
// independent of the verdict: it is set whenever the side has no positive
// points, whether or not it resolved to a table entry.
type Side struct {
	Verdict  Verdict `json:"verdict"`
	Unranked bool    `json:"unranked"`
}

// Result holds both sides of a pairing.
type Result struct {
	A Side `json:"a"`
	B Side `json:"b"`
}

// Highlighted reports whether the pairing produced a prediction to render.
func (r Result) Highlighted() bool {
	switch r.A.Verdict {
	case Strong, Weak, Even:
		return true
	}
	return false
}

// Classify compares two sides; nil means the side had no data.
func Classify(a, b *rankings.ResolvedTeam, margin float64) Result {
	aPoints, bPoints := hasPoints(a), hasPoints(b)
	res := Result{
		A: Side{Unranked: !aPoints},
		B: Side{Unranked: !bPoints},
	}

	switch {
	case a == nil && b == nil:
		res.A.Verdict, res.B.Verdict = NoData, NoData
	case aPoints && !bPoints:
		res.A.Verdict, res.B.Verdict = Strong, Weak
	case !aPoints && bPoints:
		res.A.Verdict, res.B.Verdict = Weak, Strong
	case !aPoints && !bPoints:
		res.A.Verdict, res.B.Verdict = Unranked, Unranked
	default:
		diff := math.Abs(a.Points - b.Points)
		switch {
		case diff < margin || a.Points == b.Points:
			res.A.Verdict, res.B.Verdict = Even, Even
		case a.Points > b.Points:
			res.A.Verdict, res.B.Verdict = Strong, Weak
		default:
			res.A.Verdict, res.B.Verdict = Weak, Strong
		}
	}
	return res
}

func hasPoints(t *rankings.ResolvedTeam) bool {
	return t != nil && t.Points > 0
}
