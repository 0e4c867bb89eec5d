package utils

import (
	"strconv"

	"github.com/badoux/checkmail"
	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// LogEvent logs a structured event
func LogEvent(eventType string, data map[string]interface{}) {
	logrus.WithFields(logrus.Fields(data)).Info(eventType)
}

// ErrorResponse creates a standardized error response. Every error
// body in the API is {"message": string}.
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

// ServerError reports the underlying cause to Sentry (when configured)
// and returns the generic 500 body. The cause is never echoed to the
// client.
func ServerError(c *fiber.Ctx, err error) error {
	if err != nil {
		sentry.CaptureException(err)
	}
	return ErrorResponse(c, fiber.StatusInternalServerError, "Server error")
}

// IsEmailIdentifier reports whether a login identifier looks like an
// email address. Anything else is treated as a phone number.
func IsEmailIdentifier(identifier string) bool {
	return checkmail.ValidateFormat(identifier) == nil
}

// ParseUint safely parses a string to uint
func ParseUint(s string) uint {
	i, _ := strconv.ParseUint(s, 10, 32)
	return uint(i)
}

// Pointer returns a pointer to the given value
func Pointer[T any](v T) *T {
	return &v
}
