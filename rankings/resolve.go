package rankings

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Candidates are the two TeamCodes a display string could stand for.
type Candidates struct {
	School string
	AB     string
	BA     string
}

// ResolvedTeam is the best table match for a display string.
type ResolvedTeam struct {
	TeamCode string  `json:"team_code"`
	Points   float64 `json:"points"`
}

// ParseTeamDisplay splits a pairing cell such as "Lincoln High School AB" into
// a canonical school and both code orders. It reports false for bye rows and
// cells without a school and a two-letter initials token.
func (n *Normalizer) ParseTeamDisplay(text string) (Candidates, bool) {
	t := strings.TrimSpace(norm.NFKC.String(text))
	t = trailingParen.ReplaceAllString(t, "")

	parts := strings.Fields(t)
	if len(parts) < 2 {
		return Candidates{}, false
	}

	letters := []rune(parts[len(parts)-1])
	if len(letters) < 2 {
		return Candidates{}, false
	}
	a := unicode.ToUpper(letters[0])
	b := unicode.ToUpper(letters[1])

	school := n.Resolve(strings.Join(parts[:len(parts)-1], " "))
	return Candidates{
		School: school,
		AB:     Code(school, a, b),
		BA:     Code(school, b, a),
	}, true
}

// Lookup picks the candidate present in the table. When both orders exist the
// higher-scoring one wins, with AB kept on a tie. It returns nil when neither
// code is in the table.
func (t Table) Lookup(c Candidates) *ResolvedTeam {
	ptsAB, okAB := t[c.AB]
	ptsBA, okBA := t[c.BA]

	switch {
	case okAB && okBA:
		if ptsBA > ptsAB {
			return &ResolvedTeam{TeamCode: c.BA, Points: ptsBA}
		}
		return &ResolvedTeam{TeamCode: c.AB, Points: ptsAB}
	case okAB:
		return &ResolvedTeam{TeamCode: c.AB, Points: ptsAB}
	case okBA:
		return &ResolvedTeam{TeamCode: c.BA, Points: ptsBA}
	}
	return nil
}

// ResolveTeam parses displayText and looks it up in table. A nil result means no
// data, which is distinct from a ranked team with zero points.
func (n *Normalizer) ResolveTeam(table Table, displayText string) *ResolvedTeam {
	c, ok := n.ParseTeamDisplay(displayText)
	if !ok {
		return nil
	}
	return table.Lookup(c)
}
