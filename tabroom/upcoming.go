package tabroom

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// Listing is a tournament row on the upcoming tournaments page.
type Listing struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

var tournIDParam = regexp.MustCompile(`tourn_id=(\d+)`)

// ParseUpcoming lists the tournaments under the "Upcoming Tournaments"
// heading. The table is searched for up to three levels above the heading.
func ParseUpcoming(r io.Reader) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "tabroom: parse upcoming html")
	}

	heading := doc.Find("h1").FilterFunction(func(_ int, h *goquery.Selection) bool {
		return strings.ToLower(strings.TrimSpace(h.Text())) == "upcoming tournaments"
	}).First()
	if heading.Length() == 0 {
		return nil, ErrNoUpcomingTable
	}

	container := heading.Parent()
	for i := 0; i < 3 && container.Length() > 0 && container.Find("table").Length() == 0; i++ {
		container = container.Parent()
	}
	table := container.Find("table").First()
	if table.Length() == 0 {
		return nil, ErrNoUpcomingTable
	}

	var out []Listing
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find(`a[href*="tourn_id"]`).First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		id := href
		if m := tournIDParam.FindStringSubmatch(href); m != nil {
			id = m[1]
		}
		out = append(out, Listing{
			ID:   id,
			Name: strings.TrimSpace(link.Text()),
			URL:  href,
		})
	})
	return out, nil
}
