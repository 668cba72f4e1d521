package tablequery

import (
	"strconv"
	"strings"
)

const DefaultPageSize = 10

// MaxPageSize caps client-requested page sizes.
const MaxPageSize = 100

// Columns maps a column key to the function reading that column from a row.
type Columns[T any] map[string]func(T) string

// Query is a search, a set of equality filters and a page request.
type Query struct {
	Search     string
	SearchKeys []string
	Filters    map[string]string
	Page       int
	PageSize   int
}

// Result is one page of the filtered rows.
type Result[T any] struct {
	Rows       []T `json:"rows"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Filter returns, in order, the rows matching the search and every filter.
// A row matches the search when any search key's value contains the search
// text case-insensitively. A filter matches on case-insensitive equality.
// Keys without a column are ignored. rows is not modified.
func Filter[T any](rows []T, cols Columns[T], q Query) []T {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	searchCols := make([]func(T) string, 0, len(q.SearchKeys))
	for _, key := range q.SearchKeys {
		if col, ok := cols[key]; ok {
			searchCols = append(searchCols, col)
		}
	}

	type filter struct {
		col  func(T) string
		want string
	}
	filters := make([]filter, 0, len(q.Filters))
	for key, want := range q.Filters {
		col, ok := cols[key]
		if !ok || want == "" {
			continue
		}
		filters = append(filters, filter{col: col, want: strings.ToLower(want)})
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if search != "" && len(searchCols) > 0 {
			found := false
			for _, col := range searchCols {
				if strings.Contains(strings.ToLower(col(row)), search) {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}

		keep := true
		for _, f := range filters {
			if strings.ToLower(f.col(row)) != f.want {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

// Paginate slices rows into 1-based pages. The page is clamped to the
// valid range; an empty input yields one empty page.
func Paginate[T any](rows []T, page, pageSize int) Result[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := len(rows)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	pageRows := make([]T, end-start)
	copy(pageRows, rows[start:end])

	return Result[T]{
		Rows:       pageRows,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Apply filters rows and returns the requested page.
func Apply[T any](rows []T, cols Columns[T], q Query) Result[T] {
	return Paginate(Filter(rows, cols, q), q.Page, q.PageSize)
}

// Table binds a column set to the keys a listing searches and filters on.
type Table[T any] struct {
	Columns    Columns[T]
	SearchKeys []string
	FilterKeys []string
}

// Query builds a Query from raw request parameters. Only the table's
// filter keys are read from params.
func (t Table[T]) Query(params map[string]string) Query {
	q := Query{
		Search:     params["search"],
		SearchKeys: t.SearchKeys,
		Filters:    map[string]string{},
		Page:       atoi(params["page"]),
		PageSize:   atoi(params["pageSize"]),
	}
	for _, key := range t.FilterKeys {
		if v, ok := params[key]; ok {
			q.Filters[key] = v
		}
	}
	return q
}

// Apply runs the query built from params.
func (t Table[T]) Apply(rows []T, params map[string]string) Result[T] {
	return Apply(rows, t.Columns, t.Query(params))
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
