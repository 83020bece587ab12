package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the JSON document returned for every failed request.
type ErrorBody struct {
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

// ErrorHandler renders errors returned by handlers as ErrorBody. Errors that are
// not *fiber.Error become a 500 without leaking their message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		message = fe.Message
	}

	return c.Status(status).JSON(ErrorBody{Error: message, StatusCode: status})
}
