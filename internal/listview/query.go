package listview

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fec-cms/console/internal/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	SortAscend  = "ascend"
	SortDescend = "descend"
)

// Query is the server-side list state a table view binds to.
type Query struct {
	Current   int               `json:"current" form:"current"`
	PageSize  int               `json:"pageSize" form:"pageSize"`
	Search    string            `json:"search,omitempty" form:"search"`
	Filters   map[string]string `json:"filters,omitempty" form:"-"`
	SortField string            `json:"sortField,omitempty" form:"sortField"`
	SortOrder string            `json:"sortOrder,omitempty" form:"sortOrder"`
}

// TableChange is one pagination, filter or sort interaction.
type TableChange struct {
	Current   int               `json:"current"`
	PageSize  int               `json:"pageSize"`
	Filters   map[string]string `json:"filters"`
	SortField string            `json:"sortField"`
	SortOrder string            `json:"sortOrder"`
}

// Bind reads a query from request parameters. Only the named filter keys
// are picked up.
func Bind(c *gin.Context, filterKeys ...string) (Query, error) {
	var q Query
	if err := c.ShouldBindQuery(&q); err != nil {
		return Query{}, fmt.Errorf("bind list query: %w", err)
	}
	for _, k := range filterKeys {
		if v := strings.TrimSpace(c.Query(k)); v != "" {
			if q.Filters == nil {
				q.Filters = make(map[string]string)
			}
			q.Filters[k] = v
		}
	}
	return q.Normalize(), nil
}

// Normalize applies defaults and bounds.
func (q Query) Normalize() Query {
	if q.Current < 1 {
		q.Current = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	if q.SortOrder != SortAscend && q.SortOrder != SortDescend {
		q.SortOrder = ""
	}
	if q.SortField == "" {
		q.SortOrder = ""
	}
	for k, v := range q.Filters {
		if strings.TrimSpace(v) == "" {
			delete(q.Filters, k)
		}
	}
	if len(q.Filters) == 0 {
		q.Filters = nil
	}
	return q
}

// Change returns the query that follows a table interaction. A filter or
// sort change goes back to the first page.
func (q Query) Change(tc TableChange) Query {
	next := Query{
		Current:   tc.Current,
		PageSize:  tc.PageSize,
		Search:    q.Search,
		Filters:   copyFilters(tc.Filters),
		SortField: tc.SortField,
		SortOrder: tc.SortOrder,
	}.Normalize()

	if !sameFilters(q.Filters, next.Filters) || q.SortField != next.SortField || q.SortOrder != next.SortOrder {
		next.Current = 1
	}
	return next
}

// WithSearch returns the query for a new search text, back on page one.
func (q Query) WithSearch(search string) Query {
	q.Search = search
	q.Current = 1
	return q.Normalize()
}

// Filter returns a filter value or "".
func (q Query) Filter(key string) string {
	return q.Filters[key]
}

// Params converts the query to gateway list parameters.
func (q Query) Params() models.ListParams {
	return models.ListParams{
		Current:   q.Current,
		PageSize:  q.PageSize,
		Search:    q.Search,
		SortField: q.SortField,
		SortOrder: q.SortOrder,
	}
}

func copyFilters(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sameFilters(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
