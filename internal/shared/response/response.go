package response

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// JSON writes an entity or report body with the given status.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Message writes a plain-text body, used for failure descriptions.
func Message(c *gin.Context, statusCode int, message string) {
	c.String(statusCode, message)
}

// Empty writes a status with no body, used for void operations.
func Empty(c *gin.Context, statusCode int) {
	c.Status(statusCode)
}

// ValidationErrors writes a 400 with one "field: message" line per offending field.
func ValidationErrors(c *gin.Context, errs validation.Errors) {
	lines := make([]string, 0, len(errs))
	for field, err := range errs {
		lines = append(lines, field+": "+err.Error())
	}
	sort.Strings(lines)
	c.JSON(http.StatusBadRequest, lines)
}

func BadRequest(c *gin.Context, message string) {
	Message(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Message(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Message(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context, message string) {
	Message(c, http.StatusInternalServerError, message)
}
