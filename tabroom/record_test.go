package tabroom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabroom-plus/power"
)

const recordPage = `<html><body>
<div id="team_season_header"><h4> Lincoln AB </h4></div>
<table><tr><td>season summary</td></tr></table>
<table>
  <thead><tr><th>Tournament</th><th>Division</th><th>Pre</th><th>Octs</th><th>Qrt</th><th>Sem</th><th>Fin</th></tr></thead>
  <tbody>
    <tr><td>Fall Classic</td><td>Open Parli</td><td>4-2</td><td></td><td>WWL</td><td></td><td></td></tr>
    <tr><td>Winter Invite</td><td>Novice</td><td>5-1</td><td>W</td><td>W</td><td>2-1 L</td><td></td></tr>
  </tbody>
</table>
</body></html>`

func TestParseEntryRecord(t *testing.T) {
	rec, err := ParseEntryRecord(strings.NewReader(recordPage))
	require.NoError(t, err)

	assert.Equal(t, "Lincoln AB", rec.Entry)
	require.Len(t, rec.Rows, 2)
	assert.Equal(t, "Open Parli", rec.Rows[0].Division)
	assert.Equal(t, "WWL", rec.Rows[0].Elims["Qrt"])

	// (1 + 2 + 3) + (0 + 4 + 2 + 2 - 1)
	res := power.Compute(rec.Rows)
	assert.Equal(t, power.Result{Score: 13, Label: "mid"}, res)
}

func TestParseEntryRecordNotARecordPage(t *testing.T) {
	tests := map[string]string{
		"no header": `<table></table><table><tr><th>Division</th><th>Pre</th></tr></table>`,
		"one table": `<div id="team_season_header"><h4>Lincoln AB</h4></div><table><tr><th>Division</th><th>Pre</th></tr></table>`,
		"no pre column": `<div id="team_season_header"><h4>Lincoln AB</h4></div>
<table></table><table><tr><th>Division</th><th>Finals</th></tr></table>`,
	}

	for name, page := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseEntryRecord(strings.NewReader(page))
			assert.ErrorIs(t, err, ErrNoEntryRecord)
		})
	}
}
