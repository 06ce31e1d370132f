package digest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/billtrack/internal/model"
)

func day(n int) *model.Date {
	return model.NewDate(time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC))
}

func ids(bills []model.BillRecord) []string {
	out := make([]string, 0, len(bills))
	for _, b := range bills {
		out = append(out, b.ID)
	}
	return out
}

func TestSelect_NoInterestsTakesMostRecent(t *testing.T) {
	var candidates []model.BillRecord
	for i := 1; i <= 8; i++ {
		candidates = append(candidates, model.BillRecord{ID: fmt.Sprintf("b%d", i), LastUpdated: day(i)})
	}

	got := Select(candidates, nil, 5)
	assert.Equal(t, []string{"b8", "b7", "b6", "b5", "b4"}, ids(got))
}

func TestSelect_MissingDatesSortLast(t *testing.T) {
	candidates := []model.BillRecord{
		{ID: "undated"},
		{ID: "old", LastUpdated: day(1)},
		{ID: "new", LastUpdated: day(9)},
	}
	assert.Equal(t, []string{"new", "old", "undated"}, ids(Select(candidates, nil, 5)))
}

func TestSelect_DuplicateIDsKeepFirstRanked(t *testing.T) {
	candidates := []model.BillRecord{
		{ID: "x", Title: "stale", LastUpdated: day(1)},
		{ID: "y", LastUpdated: day(5)},
		{ID: "x", Title: "fresh", LastUpdated: day(9)},
	}

	got := Select(candidates, []string{"x"}, 5)
	require.Equal(t, []string{"x", "y"}, ids(got))
	assert.Equal(t, "fresh", got[0].Title)
}

func TestSelect_MatchesFillThenOthers(t *testing.T) {
	candidates := []model.BillRecord{
		{ID: "energy", Title: "Energy Grid Act", LastUpdated: day(2)},
		{ID: "farm", Title: "Farm Bill", LastUpdated: day(3)},
		{ID: "tax", Title: "Tax Bill", LastUpdated: day(1)},
	}

	got := Select(candidates, []string{"ENERGY"}, 2)
	assert.Equal(t, []string{"farm", "energy"}, ids(got))
}

func TestSelect_Bounds(t *testing.T) {
	assert.Empty(t, Select(nil, []string{"x"}, 5))

	candidates := make([]model.BillRecord, 12)
	for i := range candidates {
		candidates[i] = model.BillRecord{ID: fmt.Sprintf("b%d", i%7), LastUpdated: day(i + 1)}
	}
	for _, limit := range []int{1, 3, 5, 7, 10} {
		got := Select(candidates, []string{"b"}, limit)
		assert.LessOrEqual(t, len(got), limit)

		seen := map[string]bool{}
		for _, b := range got {
			assert.False(t, seen[b.ID], "duplicate %s", b.ID)
			seen[b.ID] = true
		}
	}

	assert.Len(t, Select(candidates, nil, 0), DefaultMaxCount)
}

func TestSelect_Deterministic(t *testing.T) {
	candidates := []model.BillRecord{
		{ID: "a", LastUpdated: day(3)},
		{ID: "b", LastUpdated: day(3)},
		{ID: "c"},
		{ID: "d"},
	}
	first := Select(candidates, nil, 4)
	for range 10 {
		assert.Equal(t, ids(first), ids(Select(candidates, nil, 4)))
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(first))
}

func TestBuild(t *testing.T) {
	candidates := []model.BillRecord{
		{ID: "a", Title: "Clean Energy Act", Summary: "<p>Funds the <b>grid</b>. More later.</p>", LastUpdated: day(2)},
		{ID: "b", Title: "Farm Bill", Summary: "Crops.", LastUpdated: day(1)},
	}

	n := Build(Daily, candidates, []string{"energy"}, 5)
	assert.Equal(t, "daily-digest", n.ID)
	assert.Equal(t, "Today in Congress", n.Title)
	assert.Equal(t, "• Clean Energy Act\n• Farm Bill", n.Body)
	require.Len(t, n.Entries, 2)
	assert.Equal(t, "Funds the grid.", n.Entries[0].Excerpt)
	assert.False(t, n.Empty())

	w := Build(Weekly, nil, nil, 5)
	assert.Equal(t, "weekly-digest", w.ID)
	assert.Equal(t, "Weekly Congress Roundup", w.Title)
	assert.True(t, w.Empty())
	assert.Empty(t, w.Body)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Weekly ")
	require.NoError(t, err)
	assert.Equal(t, Weekly, k)

	_, err = ParseKind("hourly")
	require.ErrorIs(t, err, model.ErrConfiguration)
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain   text\n here", "plain text here"},
		{"<p>Amends the <em>Clean Air Act</em>.</p>", "Amends the Clean Air Act."},
		{"<p>a</p><script>alert(1)</script><p>b</p>", "a b"},
		{"<ul><li>one</li><li>two</li></ul>", "one two"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PlainText(tt.in), tt.in)
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "First one.", Excerpt("First one. Second one.", 0))
	assert.Equal(t, "No terminator", Excerpt("No terminator", 0))
	assert.Equal(t, "abcd…", Excerpt("abcdefghij", 5))
}
