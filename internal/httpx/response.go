// Package httpx maps application errors onto gin responses.
package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const genericError = "internal server error"

func StatusOf(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error writes {"error": msg}. Server-side failures are logged with detail and
// reported to the client with a generic message.
func Error(c *gin.Context, log logger.ZapLogger, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(status, gin.H{"error": genericError})
		return
	}

	var ae *apperror.Error
	msg := err.Error()
	if errors.As(err, &ae) {
		msg = ae.Message
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// ParamID parses a positive integer path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validationf("invalid %s", name)
	}
	return id, nil
}

// QueryBool parses an optional boolean query parameter; absent yields nil.
func QueryBool(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.Validationf("invalid %s", name)
	}
	return &b, nil
}

// QueryID parses an optional positive integer query parameter; absent yields nil.
func QueryID(c *gin.Context, name string) (*int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperror.Validationf("invalid %s", name)
	}
	return &id, nil
}
