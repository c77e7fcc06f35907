package pagination

import "strings"

// Order is a sort direction
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 200
)

// SearchInput describes one page of a filtered, ordered listing.
// Page is 1-based.
type SearchInput struct {
	Page    int
	PerPage int
	Search  string
	OrderBy string
	Order   Order
}

// Normalize clamps the input to sane values and falls back to defaultOrderBy
// when OrderBy is not one of the allowed fields.
func (in SearchInput) Normalize(defaultOrderBy string, allowed ...string) SearchInput {
	orderBy := strings.ToLower(strings.TrimSpace(in.OrderBy))
	in = in.Bounded()
	in.OrderBy = defaultOrderBy
	for _, field := range allowed {
		if field == orderBy {
			in.OrderBy = field
			break
		}
	}
	return in
}

// Bounded clamps paging and direction. An OrderBy that is not a plain column
// name is cleared, which leaves the id as the only sort key.
func (in SearchInput) Bounded() SearchInput {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PerPage < 1 {
		in.PerPage = DefaultPerPage
	}
	if in.PerPage > MaxPerPage {
		in.PerPage = MaxPerPage
	}
	in.Search = strings.TrimSpace(in.Search)

	in.OrderBy = strings.ToLower(strings.TrimSpace(in.OrderBy))
	if !isColumn(in.OrderBy) {
		in.OrderBy = ""
	}

	if strings.EqualFold(string(in.Order), string(OrderDesc)) {
		in.Order = OrderDesc
	} else {
		in.Order = OrderAsc
	}
	return in
}

func isColumn(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return s != ""
}

// Offset returns the number of rows to skip
func (in SearchInput) Offset() int {
	if in.Page < 1 {
		return 0
	}
	return (in.Page - 1) * in.PerPage
}

// OrderClause returns an SQL order clause with the id as tie-breaker so that
// paging is stable.
func (in SearchInput) OrderClause() string {
	if in.OrderBy == "" {
		return "id ASC"
	}
	order := OrderAsc
	if in.Order == OrderDesc {
		order = OrderDesc
	}
	return in.OrderBy + " " + strings.ToUpper(string(order)) + ", id ASC"
}

// SearchOutput is one page of results
type SearchOutput[T any] struct {
	Items       []T
	Total       int64
	CurrentPage int
	PerPage     int
}

// LastPage returns the number of the last page, at least 1.
func (o SearchOutput[T]) LastPage() int {
	if o.PerPage < 1 || o.Total == 0 {
		return 1
	}
	return int((o.Total + int64(o.PerPage) - 1) / int64(o.PerPage))
}

// Map converts the items of an output while keeping its paging metadata.
func Map[T, U any](in SearchOutput[T], fn func(T) U) SearchOutput[U] {
	items := make([]U, len(in.Items))
	for i, item := range in.Items {
		items[i] = fn(item)
	}
	return SearchOutput[U]{
		Items:       items,
		Total:       in.Total,
		CurrentPage: in.CurrentPage,
		PerPage:     in.PerPage,
	}
}
