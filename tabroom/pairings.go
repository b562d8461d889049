// Package tabroom reads Tabroom pages into the plain values the ranking,
// matchup and power-score packages consume.
package tabroom

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"tabroom-plus/rankings"
)

var (
	ErrNoPairingsTable = errors.New("tabroom: no pairings table on page")
	ErrNoEntryRecord   = errors.New("tabroom: no entry record on page")
	ErrNoUpcomingTable = errors.New("tabroom: no upcoming tournaments table on page")
)

// Pairing is one row of a round's pairings.
type Pairing struct {
	Gov   string `json:"gov"`
	Opp   string `json:"opp"`
	Judge *Judge `json:"judge,omitempty"`
}

// Judge identifies the judge of a pairing. Key is stable across pages: an
// "id:" key when the cell links to a judge page, else a "name:" key.
type Judge struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

var (
	judgeIDParam = regexp.MustCompile(`judge_id=(\d+)`)
	judgeIDPath  = regexp.MustCompile(`/judge/(\d+)`)
)

// ParsePairings finds the pairings table, the one whose headers include
// gov and opp or aff and neg, and returns its rows.
func ParsePairings(r io.Reader) ([]Pairing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "tabroom: parse pairings html")
	}

	var (
		table   *goquery.Selection
		headers []string
	)
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		h := lowerHeaders(t)
		has := func(name string) bool { return indexOf(h, name) != -1 }
		if (has("gov") && has("opp")) || (has("aff") && has("neg")) {
			table, headers = t, h
			return false
		}
		return true
	})
	if table == nil {
		return nil, ErrNoPairingsTable
	}

	govIdx := indexOf(headers, "gov", "aff")
	oppIdx := indexOf(headers, "opp", "neg")
	judgeIdx := indexOf(headers, "judge")

	var pairings []Pairing
	bodyRows(table).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if govIdx >= cells.Length() || oppIdx >= cells.Length() {
			return
		}
		p := Pairing{
			Gov: strings.TrimSpace(cells.Eq(govIdx).Text()),
			Opp: strings.TrimSpace(cells.Eq(oppIdx).Text()),
		}
		if judgeIdx != -1 && judgeIdx < cells.Length() {
			p.Judge = judgeFromCell(cells.Eq(judgeIdx))
		}
		pairings = append(pairings, p)
	})
	return pairings, nil
}

// JudgeKey derives a judge key from a link href and the cell's text. It
// returns "" when neither yields one.
func JudgeKey(href, name string) string {
	if m := judgeIDParam.FindStringSubmatch(href); m != nil {
		return "id:" + m[1]
	}
	if m := judgeIDPath.FindStringSubmatch(href); m != nil {
		return "id:" + m[1]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return "name:" + rankings.NormalizeCode(name)
}

func judgeFromCell(cell *goquery.Selection) *Judge {
	name := strings.TrimSpace(cell.Text())
	href, _ := cell.Find(`a[href*="judge"], a[href*="paradigm"]`).First().Attr("href")
	key := JudgeKey(href, name)
	if key == "" {
		return nil
	}
	return &Judge{Key: key, Name: name}
}

// headerRow is the thead row, or the table's first row when it has no thead.
func headerRow(table *goquery.Selection) *goquery.Selection {
	if row := table.Find("thead tr").First(); row.Length() > 0 {
		return row
	}
	return table.Find("tr").First()
}

func headerTexts(table *goquery.Selection) []string {
	var out []string
	headerRow(table).Find("th").Each(func(_ int, th *goquery.Selection) {
		out = append(out, strings.TrimSpace(th.Text()))
	})
	return out
}

func lowerHeaders(table *goquery.Selection) []string {
	h := headerTexts(table)
	for i := range h {
		h[i] = strings.ToLower(h[i])
	}
	return h
}

// bodyRows are the tbody rows carrying at least one td.
func bodyRows(table *goquery.Selection) *goquery.Selection {
	return table.Find("tbody tr").FilterFunction(func(_ int, row *goquery.Selection) bool {
		return row.Find("td").Length() > 0
	})
}

func cellTexts(row *goquery.Selection) []string {
	var out []string
	row.Find("td").Each(func(_ int, td *goquery.Selection) {
		out = append(out, td.Text())
	})
	return out
}

// indexOf returns the first position whose header equals any of names.
func indexOf(headers []string, names ...string) int {
	for i, h := range headers {
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}
