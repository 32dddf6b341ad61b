// Package table turns a slice of records into a searched, filtered, sorted
// and paginated view. It performs no I/O and never mutates its input.
package table

import (
	"fmt"
	"slices"
	"strings"
)

const (
	PageSize   = 10
	WindowSize = 5
	// All disables a filter.
	All = "all"
)

// Column describes one display column. Compare is optional; without it the
// column sorts on Value, case-insensitively.
type Column[T any] struct {
	Key     string
	Label   string
	Value   func(T) string
	Compare func(a, b T) int
}

// Filter describes one select-style filter. A nil Options slice accepts any
// value, which is how filters over foreign keys are declared.
type Filter struct {
	Field   string   `json:"field"`
	Label   string   `json:"label"`
	Options []string `json:"options,omitempty"`
}

type Spec[T any] struct {
	Columns []Column[T]
	Filters []Filter
}

type Query struct {
	Search  string
	Filters map[string]string
	Page    int
	Sort    string
	Desc    bool
}

type ColumnInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type Result[T any] struct {
	Items      []T          `json:"items"`
	Total      int          `json:"total"`
	TotalPages int          `json:"total_pages"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	Window     []int        `json:"pages"`
	Columns    []ColumnInfo `json:"columns"`
	Filters    []Filter     `json:"filters"`
}

// QueryError reports a query parameter a table cannot honour.
type QueryError struct {
	Field   string
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Apply runs search, filters, sort and pagination in that order.
func (s Spec[T]) Apply(records []T, q Query) (*Result[T], error) {
	active, err := s.activeFilters(q.Filters)
	if err != nil {
		return nil, err
	}

	var column *Column[T]
	if q.Sort != "" {
		for i := range s.Columns {
			if strings.EqualFold(s.Columns[i].Key, q.Sort) {
				column = &s.Columns[i]
				break
			}
		}
		if column == nil {
			return nil, &QueryError{Field: "sort", Message: fmt.Sprintf("unknown column %q", q.Sort)}
		}
	}

	rows := Search(records, q.Search)
	for field, value := range active {
		rows = FilterBy(rows, field, value)
	}
	if column != nil {
		sortRows(rows, *column, q.Desc)
	}

	page, totalPages := ClampPage(q.Page, len(rows))
	res := &Result[T]{
		Items:      Paginate(rows, page),
		Total:      len(rows),
		TotalPages: totalPages,
		Page:       page,
		PageSize:   PageSize,
		Window:     PageWindow(page, totalPages),
		Columns:    make([]ColumnInfo, 0, len(s.Columns)),
		Filters:    s.Filters,
	}
	for _, c := range s.Columns {
		res.Columns = append(res.Columns, ColumnInfo{Key: c.Key, Label: c.Label})
	}
	if res.Filters == nil {
		res.Filters = []Filter{}
	}
	return res, nil
}

// activeFilters drops disabled filters and rejects unknown fields and values
// that are not among a filter's options.
func (s Spec[T]) activeFilters(selected map[string]string) (map[string]string, error) {
	active := make(map[string]string, len(selected))
	for field, value := range selected {
		value = strings.TrimSpace(value)
		if value == "" || strings.EqualFold(value, All) {
			continue
		}
		idx := slices.IndexFunc(s.Filters, func(f Filter) bool { return strings.EqualFold(f.Field, field) })
		if idx < 0 {
			return nil, &QueryError{Field: field, Message: "unknown filter"}
		}
		f := s.Filters[idx]
		if f.Options != nil && !slices.ContainsFunc(f.Options, func(o string) bool { return strings.EqualFold(o, value) }) {
			return nil, &QueryError{Field: f.Field, Message: fmt.Sprintf("must be one of %s", strings.Join(f.Options, ", "))}
		}
		active[f.Field] = value
	}
	return active, nil
}

func sortRows[T any](rows []T, c Column[T], desc bool) {
	cmp := c.Compare
	if cmp == nil {
		cmp = func(a, b T) int {
			return strings.Compare(strings.ToLower(c.Value(a)), strings.ToLower(c.Value(b)))
		}
	}
	slices.SortStableFunc(rows, func(a, b T) int {
		if desc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
}

// ClampPage returns the requested page forced into [1, totalPages] along with
// totalPages. An empty result has zero pages and is shown as page 1.
func ClampPage(page, total int) (int, int) {
	totalPages := (total + PageSize - 1) / PageSize
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page, totalPages
}

// Paginate returns the rows of a 1-based page. It always returns a non-nil slice.
func Paginate[T any](rows []T, page int) []T {
	start := (page - 1) * PageSize
	if start < 0 || start >= len(rows) {
		return []T{}
	}
	end := min(start+PageSize, len(rows))
	out := make([]T, end-start)
	copy(out, rows[start:end])
	return out
}

// PageWindow returns at most WindowSize consecutive page numbers around current.
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return []int{}
	}
	var first int
	switch {
	case totalPages <= WindowSize:
		return pageRange(1, totalPages)
	case current <= 3:
		first = 1
	case current >= totalPages-2:
		first = totalPages - WindowSize + 1
	default:
		first = current - 2
	}
	return pageRange(first, first+WindowSize-1)
}

func pageRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for p := from; p <= to; p++ {
		out = append(out, p)
	}
	return out
}
