// =============================
// File: internal/api/errors.go
// =============================
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rovshanmuradov/curve-engine/internal/curve"
	"github.com/rovshanmuradov/curve-engine/internal/metrics"
)

// statusFor maps domain errors to HTTP status codes by error class, with
// the two lookup-ish state errors pulled out for more specific codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, curve.ErrNotInitialized):
		return http.StatusNotFound
	case errors.Is(err, curve.ErrAlreadyInitialized):
		return http.StatusConflict
	}

	switch curve.ClassOf(err) {
	case curve.ClassValidation:
		return http.StatusBadRequest
	case curve.ClassAuthorization:
		return http.StatusForbidden
	case curve.ClassState:
		return http.StatusConflict
	case curve.ClassArithmetic:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := statusFor(err)
	if status != http.StatusInternalServerError {
		metrics.RequestRejects.WithLabelValues(string(curve.ClassOf(err))).Inc()
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
