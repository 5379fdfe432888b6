package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIError carries the HTTP status a business-rule failure should surface
// as. Returning one from inside a transaction rolls the transaction back
// and WriteError translates it; any other error becomes an opaque 500.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func Fail(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func NotFound(resource string) *APIError {
	return Fail(http.StatusNotFound, resource+" not found")
}

func BadRequest(message string) *APIError {
	return Fail(http.StatusBadRequest, message)
}

func Forbidden(message string) *APIError {
	return Fail(http.StatusForbidden, message)
}

// WriteError sends the JSON error envelope for err. Unexpected errors are
// logged server-side and returned as a generic 500 with no internal detail.
func WriteError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"success": false, "error": apiErr.Message})
		return
	}
	logrus.Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
}
