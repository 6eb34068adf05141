package utils

import "github.com/gofiber/fiber/v2"

// APIResponse is the JSON envelope returned by every /api endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// SendSuccess writes a 200 envelope.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return send(c, fiber.StatusOK, true, message, data)
}

// SendError writes a failed envelope with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	return send(c, status, false, message, nil)
}

// SendErrorWithData writes a failed envelope carrying a payload, such as field
// errors or the contact state that caused the conflict.
func SendErrorWithData(c *fiber.Ctx, status int, message string, data interface{}) error {
	return send(c, status, false, message, data)
}

func send(c *fiber.Ctx, status int, success bool, message string, data interface{}) error {
	if message == "" {
		message = "error"
		if success {
			message = "success"
		}
	}
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(APIResponse{
		Success: success,
		Data:    data,
		Message: message,
	})
}
