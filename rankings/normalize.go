package rankings

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	trailingParen      = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	trailingHighSchool = regexp.MustCompile(`(?i)\s+high\s+school$`)
	trailingSuffix     = regexp.MustCompile(`(?i)\s+(high|hs|school)$`)
)

// maxFoldPasses bounds NormalizeCode's fold loop. Lower-casing can leave text
// outside NFKC and NFKC can produce capitals, so a single fold is not always a
// fixed point.
const maxFoldPasses = 4

// NormalizeCode is the key-equality function for every TeamCode: NFKC,
// lower-cased, whitespace collapsed to single spaces and trimmed. The result
// is a fixed point: NormalizeCode(NormalizeCode(x)) == NormalizeCode(x).
func NormalizeCode(text string) string {
	if text == "" {
		return ""
	}
	s := text
	for i := 0; i < maxFoldPasses; i++ {
		next := foldCode(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func foldCode(s string) string {
	s = norm.NFKC.String(strings.ToLower(norm.NFKC.String(s)))
	return strings.Join(strings.Fields(s), " ")
}

// Alias rewrites a school whose normalized name contains Variant to Canonical.
type Alias struct {
	Variant   string
	Canonical string
}

// DefaultAliases maps tournament-site spellings to ranking sheet names.
var DefaultAliases = []Alias{
	{Variant: "lucent", Canonical: "campolindo"},
}

// Normalizer canonicalizes school names into the form used inside TeamCodes.
// The zero value has no aliases.
type Normalizer struct {
	aliases []Alias
}

// NewNormalizer returns a Normalizer that applies aliases in the given order.
func NewNormalizer(aliases []Alias) *Normalizer {
	n := &Normalizer{}
	for _, a := range aliases {
		v := NormalizeCode(a.Variant)
		if v == "" {
			continue
		}
		n.aliases = append(n.aliases, Alias{Variant: v, Canonical: a.Canonical})
	}
	return n
}

// School strips a trailing parenthetical and a trailing "High School", "High",
// "HS" or "School", then case-folds. No aliases are applied.
func (n *Normalizer) School(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(norm.NFKC.String(raw))
	s = trailingParen.ReplaceAllString(s, "")
	s = trailingHighSchool.ReplaceAllString(s, "")
	s = trailingSuffix.ReplaceAllString(s, "")
	return NormalizeCode(s)
}

// Resolve canonicalizes a school as written on a tournament page: School,
// then a single alias pass where the first matching variant wins, then
// School again on the substituted name.
func (n *Normalizer) Resolve(raw string) string {
	s := n.School(raw)
	for _, a := range n.aliases {
		if strings.Contains(s, a.Variant) {
			return n.School(a.Canonical)
		}
	}
	return s
}

// Code builds the TeamCode for a school and an ordered pair of initials.
func Code(school string, a, b rune) string {
	return NormalizeCode(school + " " + string(a) + string(b))
}
