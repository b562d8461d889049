package tabroom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUpcoming(t *testing.T) {
	page := `<html><body>
<div class="main">
  <div class="title"><h1> Upcoming Tournaments </h1></div>
  <table>
    <tbody>
      <tr><td><a href="/index/tourn/index.mhtml?tourn_id=31337">Fall Classic</a></td><td>CA</td></tr>
      <tr><td><a href="/index/tourn/special.mhtml?tourn_id">Odd Link</a></td></tr>
      <tr><td>no link</td></tr>
    </tbody>
  </table>
</div>
</body></html>`

	listings, err := ParseUpcoming(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, Listing{ID: "31337", Name: "Fall Classic", URL: "/index/tourn/index.mhtml?tourn_id=31337"}, listings[0])
	assert.Equal(t, "/index/tourn/special.mhtml?tourn_id", listings[1].ID)
}

func TestParseUpcomingNoHeading(t *testing.T) {
	_, err := ParseUpcoming(strings.NewReader(`<h1>Results</h1><table><tr><td>x</td></tr></table>`))
	assert.ErrorIs(t, err, ErrNoUpcomingTable)
}
