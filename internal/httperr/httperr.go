package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

// Respond writes err using the status of its business kind. Anything else
// becomes a 500 carrying fallbackCode.
func Respond(c *gin.Context, err error, fallbackCode string) {
	be, ok := AsBusiness(err)
	if !ok {
		if IsUniqueViolation(err) {
			Conflict(c, "already_exists", "Record already exists")
			return
		}
		Internal(c, fallbackCode, "Internal error")
		return
	}

	switch be.Kind {
	case KindNotFound:
		NotFound(c, be.Code, be.Message())
	case KindUnauthorized:
		Unauthorized(c, be.Code, be.Message())
	case KindConflict:
		Conflict(c, be.Code, be.Message())
	default:
		BadRequest(c, be.Code, be.Message())
	}
}
