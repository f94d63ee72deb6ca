package api

import "github.com/gin-gonic/gin"

// Machine-readable error codes exposed to clients alongside the HTTP
// status. Each expected rejection kind keeps its own code so callers can
// branch without parsing messages.
const (
	CodeClassUnavailable   = "class_unavailable"
	CodeDuplicateBooking   = "duplicate_booking"
	CodeCapacityExceeded   = "capacity_exceeded"
	CodeInvalidState       = "invalid_state"
	CodeNotToday           = "not_today"
	CodeConfigurationError = "configuration_error"
)

func Fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}
