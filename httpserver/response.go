package httpserver

import (
	"github.com/labstack/echo/v4"
)

const successMessage = "OK"

// APIResponse is the uniform envelope on every response. Data is always
// present: the contact or contact list on success, an empty object on errors.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

func writeSuccess(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, APIResponse{
		StatusCode: status,
		Message:    successMessage,
		Data:       data,
	})
}

func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, APIResponse{
		StatusCode: status,
		Message:    message,
		Data:       map[string]interface{}{},
	})
}
