package rankings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "School,Last 1,Last 2,First 1,First 2,Tournaments,Points\n"

func TestBuildTableBothOrders(t *testing.T) {
	csv := header + "Lincoln High School,Adams,Baker,Ann,Bo,3,12.5\n"

	table := BuildTable(csv, NewNormalizer(nil))

	require.Equal(t, 2, table.Len())
	assert.Equal(t, 12.5, table["lincoln ab"])
	assert.Equal(t, 12.5, table["lincoln ba"])
}

func TestBuildTableAccumulates(t *testing.T) {
	row := "Lincoln,Adams,Baker,,,,4\n"
	table := BuildTable(header+row+row, nil)

	assert.Equal(t, 8.0, table["lincoln ab"])
	assert.Equal(t, 8.0, table["lincoln ba"])
}

func TestBuildTableSumsAcrossOrders(t *testing.T) {
	csv := header +
		"Lincoln,Adams,Baker,,,,4\n" +
		"Lincoln,Burns,Avery,,,,3\n"

	table := BuildTable(csv, nil)

	assert.Equal(t, 7.0, table["lincoln ab"])
	assert.Equal(t, 7.0, table["lincoln ba"])
}

func TestBuildTableSameInitials(t *testing.T) {
	table := BuildTable(header+"Lincoln,Smith,Stone,,,,5\n", nil)

	require.Equal(t, 1, table.Len())
	assert.Equal(t, 5.0, table["lincoln ss"])
}

func TestBuildTableSkipsMalformedRows(t *testing.T) {
	csv := header +
		"\n" +
		"   \n" +
		"Lincoln,Adams,Baker,,,\n" + // six columns
		",Adams,Baker,,,,4\n" + // no school
		"Lincoln,,Baker,,,,4\n" + // no first partner
		"Lincoln,Adams, ,,,,4\n" + // blank second partner
		"Lincoln,Adams,Baker,,,,\n" + // no points
		"Lincoln,Adams,Baker,,,,abc\n" + // not a number
		"Lincoln,Adams,Baker,,,,NaN\n" +
		"\"Smith, Jones Academy\",Cole,Diaz,,,,9\n" + // quoted comma shifts columns
		"Westview,Cole,Diaz,,,,1.5\r\n"

	table := BuildTable(csv, nil)

	assert.Equal(t, Table{"westview cd": 1.5, "westview dc": 1.5}, table)
}

func TestBuildTableHeaderOnly(t *testing.T) {
	assert.Empty(t, BuildTable(header, nil))
	assert.Empty(t, BuildTable("", nil))
}

func TestBuildTableIgnoresHeaderContent(t *testing.T) {
	csv := "Lincoln,Adams,Baker,,,,99\nLincoln,Adams,Baker,,,,1\n"
	assert.Equal(t, 1.0, BuildTable(csv, nil)["lincoln ab"])
}

func TestBuildTableIdempotent(t *testing.T) {
	csv := header +
		"Lincoln High,Adams,Baker,,,,4\n" +
		"Campolindo,Chen,Diaz,,,,10\n" +
		"Campolindo (CA),Chen,Diaz,,,,2\n"

	first := BuildTable(csv, NewNormalizer(DefaultAliases))
	second := BuildTable(csv, NewNormalizer(DefaultAliases))

	assert.Equal(t, first, second)
	assert.Equal(t, 12.0, first["campolindo cd"])
}

func TestBuildTableLowercaseInitials(t *testing.T) {
	table := BuildTable(header+"Lincoln,adams,étienne,,,,2\n", nil)

	points, ok := table.Points("LINCOLN AÉ")
	require.True(t, ok)
	assert.Equal(t, 2.0, points)
}

func TestBuildTableNegativeAndZeroPoints(t *testing.T) {
	csv := header +
		"Lincoln,Adams,Baker,,,,0\n" +
		"Westview,Cole,Diaz,,,,-1\n"

	table := BuildTable(csv, nil)

	points, ok := table.Points("lincoln ab")
	require.True(t, ok)
	assert.Zero(t, points)
	assert.Equal(t, -1.0, table["westview dc"])
}
