// Package response writes the JSON envelope shared by every handler:
// {"success": true, "data": ...} on success,
// {"success": false, "error": {"code", "message"}} on failure.
package response

import "github.com/gin-gonic/gin"

type envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Error   *errBody `json:"error,omitempty"`
}

type errBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, envelope{Success: true, Data: data})
}

// Error codes are stable machine-readable strings (VALIDATION_ERROR,
// NOT_FOUND, ...); the message is for humans and may change.
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, envelope{Success: false, Error: &errBody{Code: code, Message: message}})
}
