// Package response formats the uniform {success, message, data} envelope
// every endpoint returns.
package response

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"warehouse-backend/pkg/apperr"
)

type Body struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Body{Success: true, Message: "Operation successful", Data: data})
}

func OKMessage(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Body{Success: true, Message: message, Data: data})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Body{Success: true, Message: message, Data: data})
}

// Error maps the error taxonomy to HTTP statuses. Internal faults are logged
// with full detail server-side; the client only sees the message.
func Error(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.InvalidInput, apperr.IOFailure:
		status = fiber.StatusBadRequest
	case apperr.NotFound:
		status = fiber.StatusNotFound
	default:
		log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(Body{Success: false, Message: apperr.MessageOf(err)})
}
