package apperror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Response struct {
	Error string `json:"error"`
	Code  Kind   `json:"code"`
}

func Status(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInsufficientStock:
		return http.StatusConflict
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON error body and aborts the gin chain.
func Respond(c *gin.Context, log *logrus.Entry, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}

	status := Status(appErr.Kind)
	if status >= http.StatusInternalServerError {
		log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Errorf("request failed: %v", err)
		appErr = Internal(err)
	} else {
		log.Debugf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}

	c.AbortWithStatusJSON(status, Response{
		Error: appErr.Message(),
		Code:  appErr.Kind,
	})
}

// BadRequest reports a binding or parsing failure.
func BadRequest(c *gin.Context, log *logrus.Entry, err error) {
	Respond(c, log, InvalidArgument("error.invalid_request", err.Error()).Wrap(err))
}
