package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/matjib/matjib-backend/internal/pkg/errors"
)

// ErrorResponse - плоская схема ошибки наружу: {error, message, details}.
// Поле error содержит машинный код, message - человекочитаемое сообщение.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error:   appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		})
	}

	// Unknown error - return 500
	return c.Status(500).JSON(ErrorResponse{
		Error:   errors.ErrInternalServer.Code,
		Message: errors.ErrInternalServer.Message,
	})
}
