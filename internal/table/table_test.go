package table

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type suspect struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Status     string   `json:"status"`
	Age        int      `json:"age"`
	CrimeTypes []string `json:"crime_types"`
	Secret     string   `json:"-"`
}

var suspectSpec = Spec[suspect]{
	Columns: []Column[suspect]{
		{Key: "name", Label: "Name", Value: func(s suspect) string { return s.Name }},
		{Key: "age", Label: "Age", Value: func(s suspect) string { return strconv.Itoa(s.Age) },
			Compare: func(a, b suspect) int { return a.Age - b.Age }},
	},
	Filters: []Filter{
		{Field: "status", Label: "Status", Options: []string{"active", "wanted", "released"}},
	},
}

func suspects(n int) []suspect {
	out := make([]suspect, n)
	for i := range out {
		status := "active"
		if i%3 == 0 {
			status = "wanted"
		}
		out[i] = suspect{ID: fmt.Sprintf("C-%03d", i+1), Name: fmt.Sprintf("Person %d", i+1), Status: status, Age: 20 + i}
	}
	return out
}

func TestSearchMatchesCrimeTypes(t *testing.T) {
	rows := []suspect{
		{ID: "1", Name: "John Smith", Status: "wanted", CrimeTypes: []string{"Theft", "Assault"}},
		{ID: "2", Name: "Maria Garcia", Status: "active", CrimeTypes: []string{"Fraud"}},
	}

	got := Search(rows, "theft")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	assert.Empty(t, Search(rows, "zzz"))
}

// searchable lists the text a search over suspect may look at.
func searchable(s suspect) []string {
	return append([]string{s.ID, s.Name, s.Status}, s.CrimeTypes...)
}

func mentions(s suspect, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	for _, text := range searchable(s) {
		if strings.Contains(strings.ToLower(text), term) {
			return true
		}
	}
	return false
}

func TestSearchKeepsExactlyTheMatchingRecords(t *testing.T) {
	words := []string{"Theft", "Fraud", "Assault", "Burglary", "Maria", "John", "wanted", "Active", "Garcia", "needle"}
	rng := rand.New(rand.NewPCG(7, 11))
	pick := func() string { return words[rng.IntN(len(words))] }

	rows := make([]suspect, 200)
	for i := range rows {
		rows[i] = suspect{
			ID:     fmt.Sprintf("C-%03d", i),
			Name:   pick() + " " + pick(),
			Status: pick(),
			Age:    rng.IntN(60) + 18,
			Secret: pick(),
		}
		for range rng.IntN(3) {
			rows[i].CrimeTypes = append(rows[i].CrimeTypes, pick())
		}
	}

	terms := append(slices.Clone(words), "c-01", "ARC", "  theft ", "e", "18", "zzz")
	for _, term := range terms {
		got := Search(rows, term)
		kept := map[string]bool{}
		for _, r := range got {
			kept[r.ID] = true
			assert.True(t, mentions(r, term), "%q kept %s without a match", term, r.ID)
		}
		var want []string
		for _, r := range rows {
			if mentions(r, term) {
				want = append(want, r.ID)
			} else {
				assert.False(t, kept[r.ID], "%q kept %s", term, r.ID)
			}
		}
		var order []string
		for _, r := range got {
			order = append(order, r.ID)
		}
		assert.Equal(t, want, order, "term %q", term)
	}
}

func TestSearchIsCaseInsensitiveAndSkipsHiddenFields(t *testing.T) {
	rows := []suspect{
		{ID: "1", Name: "John Smith", Secret: "needle"},
		{ID: "2", Name: "Jane NEEDLE"},
	}
	got := Search(rows, "Needle")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestSearchEmptyTermKeepsOrder(t *testing.T) {
	rows := suspects(4)
	assert.Equal(t, rows, Search(rows, "  "))
}

func TestSearchSkipsNonStringFields(t *testing.T) {
	rows := []suspect{{ID: "x", Name: "A", Age: 42}}
	assert.Empty(t, Search(rows, "42"))
}

func TestFilterByJSONOrGoName(t *testing.T) {
	rows := suspects(6)
	byJSON := FilterBy(rows, "status", "WANTED")
	byGo := FilterBy(rows, "Status", "wanted")
	assert.Equal(t, byJSON, byGo)
	assert.Len(t, byJSON, 2)
}

func TestFilterOnNonStringFieldNeverMatches(t *testing.T) {
	rows := suspects(3)
	assert.Empty(t, FilterBy(rows, "age", "20"))
	assert.Empty(t, FilterBy(rows, "missing", "x"))
}

func TestFilterOrderDoesNotMatter(t *testing.T) {
	rows := suspects(30)
	rows[4].Name = "Special"
	a := FilterBy(FilterBy(rows, "status", "active"), "name", "special")
	b := FilterBy(FilterBy(rows, "name", "special"), "status", "active")
	assert.Equal(t, a, b)
	require.Len(t, a, 1)
}

func TestApplyAllDisablesFilter(t *testing.T) {
	rows := suspects(12)
	res, err := suspectSpec.Apply(rows, Query{Filters: map[string]string{"status": All}})
	require.NoError(t, err)
	assert.Equal(t, 12, res.Total)
}

func TestApplyRejectsUnknownOption(t *testing.T) {
	_, err := suspectSpec.Apply(suspects(3), Query{Filters: map[string]string{"status": "sleeping"}})
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "status", qe.Field)
}

func TestApplyRejectsUnknownFilterAndSort(t *testing.T) {
	_, err := suspectSpec.Apply(suspects(3), Query{Filters: map[string]string{"gender": "male"}})
	assert.Error(t, err)

	_, err = suspectSpec.Apply(suspects(3), Query{Sort: "height"})
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "sort", qe.Field)
}

func TestApplyPagesConcatenateToFilteredList(t *testing.T) {
	rows := suspects(37)
	q := Query{Filters: map[string]string{"status": "active"}}
	first, err := suspectSpec.Apply(rows, q)
	require.NoError(t, err)

	var all []suspect
	for p := 1; p <= first.TotalPages; p++ {
		q.Page = p
		res, err := suspectSpec.Apply(rows, q)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(res.Items), PageSize)
		all = append(all, res.Items...)
	}
	assert.Equal(t, FilterBy(rows, "status", "active"), all)
	assert.Equal(t, first.Total, len(all))
}

func TestApplyClampsPage(t *testing.T) {
	rows := suspects(15)

	res, err := suspectSpec.Apply(rows, Query{Page: 9})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page)
	assert.Len(t, res.Items, 5)

	res, err = suspectSpec.Apply(rows, Query{Page: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)

	res, err = suspectSpec.Apply(rows, Query{Search: "zzz", Page: 4})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.TotalPages)
	assert.Equal(t, 1, res.Page)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Empty(t, res.Window)
}

func TestApplyFiltersShrinkCurrentPage(t *testing.T) {
	rows := suspects(40)
	res, err := suspectSpec.Apply(rows, Query{Page: 4, Filters: map[string]string{"status": "wanted"}})
	require.NoError(t, err)
	assert.Equal(t, 14, res.Total)
	assert.Equal(t, 2, res.Page)
}

func TestApplySort(t *testing.T) {
	rows := suspects(5)
	res, err := suspectSpec.Apply(rows, Query{Sort: "age", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, 24, res.Items[0].Age)
	assert.Equal(t, 20, res.Items[4].Age)

	res, err = suspectSpec.Apply(rows, Query{Sort: "NAME"})
	require.NoError(t, err)
	assert.Equal(t, "Person 1", res.Items[0].Name)
	assert.Equal(t, "Person 5", res.Items[4].Name)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	rows := suspects(5)
	before := append([]suspect(nil), rows...)
	_, err := suspectSpec.Apply(rows, Query{Sort: "age", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, before, rows)
}

func TestApplyReportsColumns(t *testing.T) {
	res, err := suspectSpec.Apply(nil, Query{})
	require.NoError(t, err)
	assert.Equal(t, []ColumnInfo{{Key: "name", Label: "Name"}, {Key: "age", Label: "Age"}}, res.Columns)
	assert.Equal(t, PageSize, res.PageSize)
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		current, total int
		want           []int
	}{
		{1, 0, []int{}},
		{1, 1, []int{1}},
		{2, 3, []int{1, 2, 3}},
		{5, 5, []int{1, 2, 3, 4, 5}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{3, 10, []int{1, 2, 3, 4, 5}},
		{4, 10, []int{2, 3, 4, 5, 6}},
		{7, 10, []int{5, 6, 7, 8, 9}},
		{8, 10, []int{6, 7, 8, 9, 10}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{3, 6, []int{1, 2, 3, 4, 5}},
		{4, 6, []int{2, 3, 4, 5, 6}},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_of_%d", tc.current, tc.total), func(t *testing.T) {
			got := PageWindow(tc.current, tc.total)
			assert.Equal(t, tc.want, got)
			assert.LessOrEqual(t, len(got), WindowSize)
			if tc.total > 0 {
				assert.Contains(t, got, tc.current)
			}
		})
	}
}

func TestPointerRecords(t *testing.T) {
	rows := []*suspect{{ID: "1", Name: "Ann", Status: "wanted"}, nil, {ID: "2", Name: "Bob", Status: "active"}}
	got := FilterBy(Search(rows, "a"), "status", "wanted")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}
