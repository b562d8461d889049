package tabroom

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"tabroom-plus/power"
)

// EntryRecord is an entry's season record as listed on its record page.
type EntryRecord struct {
	Entry string      `json:"entry"`
	Rows  []power.Row `json:"rows"`
}

// ParseEntryRecord reads the entry record page: the entry name from the
// #team_season_header heading and the rows of the second table on the page.
func ParseEntryRecord(r io.Reader) (*EntryRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "tabroom: parse entry record html")
	}

	heading := doc.Find("#team_season_header h4").First()
	if heading.Length() == 0 {
		return nil, ErrNoEntryRecord
	}

	tables := doc.Find("table")
	if tables.Length() < 2 {
		return nil, ErrNoEntryRecord
	}
	grid := tables.Eq(1)

	cols, ok := power.DetectColumns(headerTexts(grid))
	if !ok {
		return nil, ErrNoEntryRecord
	}

	rec := &EntryRecord{Entry: strings.TrimSpace(heading.Text())}
	bodyRows(grid).Each(func(_ int, row *goquery.Selection) {
		rec.Rows = append(rec.Rows, cols.Row(cellTexts(row)))
	})
	return rec, nil
}
