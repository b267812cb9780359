package listview

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fec-cms/console/internal/models"
	"github.com/fec-cms/console/pkg/response"
)

// Pagination describes where the current page sits.
type Pagination struct {
	Total    int `json:"total"`
	Current  int `json:"current"`
	PageSize int `json:"pageSize"`
	Pages    int `json:"pages"`
}

// Page is one server page of rows plus the query that produced it.
type Page[T any] struct {
	Records    []T        `json:"records"`
	Pagination Pagination `json:"pagination"`
	Query      Query      `json:"query"`
}

// FromList builds a page from a backend list answer.
func FromList[T any](l *models.List[T], q Query) Page[T] {
	p := Page[T]{Records: l.Records, Query: q}
	if p.Records == nil {
		p.Records = []T{}
	}
	p.Pagination = Pagination{Total: l.Total, Current: l.Current, PageSize: l.PageSize}
	if p.Pagination.Current < 1 {
		p.Pagination.Current = q.Current
	}
	if p.Pagination.PageSize < 1 {
		p.Pagination.PageSize = q.PageSize
	}
	p.Pagination.Pages = (l.Total + p.Pagination.PageSize - 1) / p.Pagination.PageSize
	return p
}

type changeRequest struct {
	Query  Query        `json:"query"`
	Change *TableChange `json:"change"`
	Search *string      `json:"search"`
}

// ChangeHandler handles POST /listview/change: it maps a table interaction
// or a new search text onto the query the shell should list with next.
func ChangeHandler(c *gin.Context) {
	var req changeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	next := req.Query.Normalize()
	switch {
	case req.Search != nil:
		next = next.WithSearch(*req.Search)
	case req.Change != nil:
		next = next.Change(*req.Change)
	}
	c.JSON(http.StatusOK, response.Body{Success: true, Data: next})
}
