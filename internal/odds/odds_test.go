package odds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchIDs(matches []Match) []int {
	ids := make([]int, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	return ids
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Equal(t, 10, catalog.Len())
	assert.Equal(t, []string{"Baseball", "Basketball", "Cricket", "Football", "Hockey", "MMA", "Tennis"}, catalog.Sports())
	assert.Equal(t, []string{"Bet365", "Betfair", "DraftKings", "FanDuel", "Unibet"}, catalog.Bookmakers())
}

func TestCatalogOptionsIsACopy(t *testing.T) {
	catalog := DefaultCatalog()
	options := catalog.Options()
	options[0].Odds = 99

	assert.Equal(t, 3.8, catalog.Options()[0].Odds)
}

func TestSearchSortsByDistance(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []int
	}{
		{"wide window", Query{TargetOdds: 4.0, Tolerance: 0.5}, []int{6, 5, 2, 3, 10, 7, 1, 4, 8, 9}},
		{"narrow window", Query{TargetOdds: 4.0, Tolerance: 0.1}, []int{6, 5, 2}},
		{"lower target", Query{TargetOdds: 3.8, Tolerance: 0.1}, []int{1, 8, 10}},
		{"nothing near", Query{TargetOdds: 1.5, Tolerance: 0.2}, []int{}},
		{"sport filter", Query{TargetOdds: 4.0, Tolerance: 0.5, Sports: []string{"Football"}}, []int{6, 2, 1}},
		{"bookmaker filter", Query{TargetOdds: 4.0, Tolerance: 0.5, Bookmakers: []string{"Betfair"}}, []int{6, 1}},
		{
			"both filters",
			Query{TargetOdds: 4.0, Tolerance: 0.5, Sports: []string{"Football"}, Bookmakers: []string{"Bet365"}},
			[]int{2},
		},
	}

	catalog := DefaultCatalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := catalog.Search(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matchIDs(matches))
		})
	}
}

func TestSearchPopulatesMatchFields(t *testing.T) {
	matches, err := DefaultCatalog().Search(Query{TargetOdds: 4.0, Tolerance: 0.1})
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	assert.Equal(t, 0.0, matches[0].Distance)
	assert.InDelta(t, 0.25, matches[0].ImpliedProbability, 1e-12)
	assert.Equal(t, "Barcelona vs Real Madrid", matches[0].Event)
}

func TestSearchRejectsInvalidQuery(t *testing.T) {
	catalog := DefaultCatalog()

	_, err := catalog.Search(Query{TargetOdds: 1.05, Tolerance: 0.5})
	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Contains(t, err.Error(), "target odds must be at least 1.1")

	_, err = catalog.Search(Query{TargetOdds: 2, Tolerance: 0.05})
	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Contains(t, err.Error(), "tolerance must be at least 0.1")

	_, err = catalog.Search(Query{TargetOdds: math.NaN(), Tolerance: 0.5})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestParseOddsInput(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "4.0", want: 4.0},
		{input: " 3.75x", want: 3.75},
		{input: "$2,50", want: 250},
		{input: "1.2.3", want: 1.2},
		{input: ".5", want: 0.5},
		{input: "abc", wantErr: true},
		{input: ".", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOddsInput(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
