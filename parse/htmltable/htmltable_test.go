package htmltable

import (
	"testing"

	"github.com/dszqbsm/rankedfilms/table"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<table class="wikitable">
  <thead><tr><th>Average Rank</th><th>Movie Title</th><th>Year</th></tr></thead>
  <tbody>
    <tr><td>1</td><td> The   Godfather </td><td>1972</td></tr>
    <tr><td>2</td><td>Citizen Kane</td><td>1941</td></tr>
  </tbody>
</table>
<table>
  <tr><th>Rank</th><th>Genre</th></tr>
  <tr><td>1</td><td>Crime <table><tr><td>nested</td></tr></table></td></tr>
</table>
<table>
  <tr><th rowspan="2">Rank</th><th colspan="2">Details</th></tr>
  <tr><th>Genre</th><th>Votes</th></tr>
  <tr><td>1</td><td colspan="2">Drama</td></tr>
  <tr><td rowspan="2">2</td><td>War</td><td>3.5</td></tr>
  <tr><td>Comedy</td></tr>
</table>
<table><tr><td>a</td><td>b</td></tr><tr><td>c</td></tr></table>
<table></table>
</body></html>`

func extractors(t *testing.T) map[string]Extractor {
	t.Helper()
	out := map[string]Extractor{}
	for _, typ := range []ParserType{CSSParser, XPathParser} {
		e, err := New(typ)
		require.NoError(t, err)
		out[string(typ)] = e
	}
	return out
}

func TestExtract(t *testing.T) {
	want := []*table.Table{
		{
			Columns: []table.Column{
				{Name: "Average Rank", Kind: table.Int},
				{Name: "Movie Title", Kind: table.Text},
				{Name: "Year", Kind: table.Int},
			},
			Rows: [][]string{
				{"1", "The Godfather", "1972"},
				{"2", "Citizen Kane", "1941"},
			},
		},
		{
			Columns: []table.Column{
				{Name: "Rank", Kind: table.Int},
				{Name: "Genre", Kind: table.Text},
			},
			Rows: [][]string{{"1", "Crime nested"}},
		},
		{
			Columns: []table.Column{{Name: "0", Kind: table.Text}},
			Rows:    [][]string{{"nested"}},
		},
		{
			Columns: []table.Column{
				{Name: "Rank", Kind: table.Int},
				{Name: "Details Genre", Kind: table.Text},
				{Name: "Details Votes", Kind: table.Text},
			},
			Rows: [][]string{
				{"1", "Drama", "Drama"},
				{"2", "War", "3.5"},
				{"2", "Comedy", ""},
			},
		},
		{
			Columns: []table.Column{
				{Name: "0", Kind: table.Text},
				{Name: "1", Kind: table.Text},
			},
			Rows: [][]string{{"a", "b"}, {"c", ""}},
		},
	}

	for name, e := range extractors(t) {
		t.Run(name, func(t *testing.T) {
			got, err := e.Extract([]byte(page))
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtract_NoTables(t *testing.T) {
	for name, e := range extractors(t) {
		t.Run(name, func(t *testing.T) {
			got, err := e.Extract([]byte(`<html><body><p>nothing here</p></body></html>`))
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestNew_Unknown(t *testing.T) {
	_, err := New("regex")
	assert.Error(t, err)

	e, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &queryExtractor{}, e)
}

func TestExtract_SpanLimit(t *testing.T) {
	const huge = `<table>
  <tr><th>Rank</th><th colspan="1000000000">Title</th></tr>
  <tr><td rowspan="999999999">1</td><td>Casablanca</td></tr>
</table>`

	for name, e := range extractors(t) {
		t.Run(name, func(t *testing.T) {
			got, err := e.Extract([]byte(huge))
			require.NoError(t, err)
			require.Len(t, got, 1)
			rows, cols := got[0].Shape()
			assert.Equal(t, 1, rows)
			assert.Equal(t, 1+maxColspan, cols)
			assert.Equal(t, "Title", got[0].Columns[maxColspan].Name)
		})
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  int
	}{
		{in: "", limit: maxColspan, want: 1},
		{in: "abc", limit: maxColspan, want: 1},
		{in: "0", limit: maxColspan, want: 1},
		{in: " 3 ", limit: maxColspan, want: 3},
		{in: "1000000000", limit: maxColspan, want: maxColspan},
		{in: "70000", limit: maxRowspan, want: maxRowspan},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, span(tt.in, tt.limit), tt.in)
	}
}
