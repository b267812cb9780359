package form

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fec-cms/console/internal/apperr"
	"github.com/fec-cms/console/pkg/response"
)

// Respond writes a submit outcome: 201 on create, 200 on update, the
// mapped error status otherwise.
func Respond[R any](c *gin.Context, out Outcome[R]) {
	if len(out.Errors) > 0 {
		response.Invalid(c, out.Errors, out.Notice)
		return
	}
	if out.Err != nil {
		apperr.Respond(c, out.Err, out.Notice)
		return
	}
	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	c.JSON(status, response.Body{
		Success:  true,
		Data:     gin.H{"record": out.Result, "state": out.State},
		Notice:   out.Notice,
		Redirect: out.Redirect,
	})
}
