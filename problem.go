package userservice

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// Problem is the JSON body returned for every failed request.
type Problem struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
	IP        string `json:"ip"`
	Data      any    `json:"data,omitempty"`
}

// ErrorHandler translates errors escaping the handler chain into Problem
// responses. Wire it as fiber.Config.ErrorHandler so handlers and middleware
// can return rich errors and never write failure bodies themselves.
func ErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		richErr := asRichError(err)
		status := statusFor(richErr)

		message := richErr.Message
		errLabel := richErr.TextCode
		var data any
		switch {
		case status >= http.StatusInternalServerError:
			// never leak internals to the client
			logger.Error("Unhandled server error on %s %s: %v", c.Method(), c.Path(), err)
			message = "An unexpected error occurred"
			errLabel = ""
		case richErr.Category == errors.CategoryValidation:
			if fields := richErr.ValidationMap(); len(fields) > 0 {
				data = fields
			}
		}

		if errLabel == "" {
			errLabel = http.StatusText(status)
		}

		problem := Problem{
			Status:    status,
			Error:     errLabel,
			Message:   message,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Path:      c.Path(),
			IP:        clientIP(c),
			Data:      data,
		}

		return c.Status(status).JSON(problem)
	}
}

func asRichError(err error) *errors.Error {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch {
		case fiberErr.Code == http.StatusNotFound:
			return errors.Wrap(err, errors.CategoryNotFound, fiberErr.Message)
		case fiberErr.Code >= http.StatusBadRequest && fiberErr.Code < http.StatusInternalServerError:
			return errors.Wrap(err, errors.CategoryBadInput, fiberErr.Message)
		}
	}

	return errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
		WithCode(errors.CodeInternal)
}

func statusFor(richErr *errors.Error) int {
	switch richErr.Category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	case errors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// clientIP prefers proxy supplied headers so logs and problem bodies carry
// the originating address when the service sits behind a load balancer.
func clientIP(c *fiber.Ctx) string {
	if ip := c.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ips := c.IPs(); len(ips) > 0 {
		return ips[0]
	}
	return c.IP()
}
