package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform error body: every failed request answers with
// {"status":"error","code":<http status>,"message":...,"data":...}.
type Envelope struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func Write(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Status:  "error",
		Code:    status,
		Message: message,
		Data:    data,
	})
}

func BadRequest(c *gin.Context, message string) {
	Write(c, http.StatusBadRequest, message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	Write(c, http.StatusUnauthorized, message, nil)
}

func Forbidden(c *gin.Context, message string) {
	Write(c, http.StatusForbidden, message, nil)
}

func NotFound(c *gin.Context, message string) {
	Write(c, http.StatusNotFound, message, nil)
}

func Internal(c *gin.Context, message string) {
	Write(c, http.StatusInternalServerError, message, nil)
}

// FromError maps a business error to 400 with its message, anything else to 500.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		BadRequest(c, be.Message)
		return
	}
	Internal(c, "An unexpected error occurred")
}
