package serverutils

import (
	"errors"

	"ai-code-debugger/internal/dto"
	"ai-code-debugger/pkg/usage"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform JSON wrapper for every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) Envelope {
	return Envelope{
		Success: true,
		Code:    fiber.StatusOK,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Envelope {
	return Envelope{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// envelope. Typed errors keep their semantics: quota exhaustion becomes a
// 429 with the usage details, fiber errors keep their status code,
// everything else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var limitErr *usage.LimitExceededError
		if errors.As(err, &limitErr) {
			env := ErrorResponse(fiber.StatusTooManyRequests, limitErr.Error())
			env.Data = dto.LimitExceededData{
				Limit:      limitErr.Limit,
				Used:       limitErr.Used,
				ResetAfter: limitErr.ResetAfter,
			}
			return ctx.Status(fiber.StatusTooManyRequests).JSON(env)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
