package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	core "homeroom/core/errs"
)

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"error": msg})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, gin.H{"error": msg})
}

func InternalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// Error translates core's typed failures to protocol responses. The core
// never formats user-facing text beyond the error message itself; the
// friendship detail payload rides along for AlreadyExists so clients can
// decide without a second request.
func Error(c *gin.Context, err error) {
	var ce *core.Error
	if !errors.As(err, &ce) {
		InternalError(c, "internal error")
		return
	}

	body := gin.H{"error": ce.Message, "kind": ce.Kind.String()}
	if ce.Status != "" {
		body["status"] = ce.Status
	}
	if ce.InitiatedBy != "" {
		body["initiated_by"] = ce.InitiatedBy
	}

	switch ce.Kind {
	case core.KindInvalid:
		c.JSON(http.StatusBadRequest, body)
	case core.KindNotFound:
		c.JSON(http.StatusNotFound, body)
	case core.KindConflict, core.KindAlreadyExists:
		c.JSON(http.StatusConflict, body)
	case core.KindForbidden:
		c.JSON(http.StatusForbidden, body)
	default:
		c.JSON(http.StatusInternalServerError, body)
	}
}
