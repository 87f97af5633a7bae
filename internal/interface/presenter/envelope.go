package presenter

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/freshora-backend/internal/apperr"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Message string              `json:"message,omitempty"`
	Details string              `json:"details,omitempty"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

// OK writes a 200 success envelope.
func OK(c *fiber.Ctx, data any, message string) error {
	return c.JSON(Envelope{Success: true, Data: data, Message: message})
}

// Created writes a 201 success envelope.
func Created(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data, Message: message})
}

// Fail writes an error envelope with the given status.
func Fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(Envelope{Success: false, Error: msg})
}

// FromError converts err to an envelope and status code. Internal error causes
// are only included when showDetails is set.
func FromError(err error, showDetails bool) (int, Envelope) {
	status := apperr.StatusCode(err)
	env := Envelope{Success: false}

	var e *apperr.Error
	if errors.As(err, &e) {
		env.Error = e.Message
		env.Errors = e.Fields
		if e.Kind == apperr.KindInternal {
			if env.Error == "" {
				env.Error = "Internal server error"
			}
			if showDetails && e.Err != nil {
				env.Details = e.Err.Error()
			}
		}
		return status, env
	}

	env.Error = "Internal server error"
	if showDetails {
		env.Details = err.Error()
	}
	return status, env
}

// ErrorHandler renders handler errors as envelopes. Fiber's own errors keep
// their status; an unmatched route answers "Route not found".
func ErrorHandler(showDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			msg := fe.Message
			if fe.Code == fiber.StatusNotFound {
				msg = "Route not found"
			}
			return Fail(c, fe.Code, msg)
		}

		status, env := FromError(err, showDetails)
		if status >= fiber.StatusInternalServerError {
			log.Printf("%s %s: %v", c.Method(), c.OriginalURL(), err)
		}
		return c.Status(status).JSON(env)
	}
}
