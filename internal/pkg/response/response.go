// Package response writes the API's JSON envelope. Every endpoint
// returns either {"success":true,"data":...} or {"success":false,
// "error":{...}} so clients can branch on one shape.
package response

import "github.com/gin-gonic/gin"

// ErrorBody is the error half of the envelope. Code is a stable
// machine-readable identifier; Message is for display.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   ErrorBody{Code: code, Message: message},
	})
}

// ErrorWithDetails carries extra context, e.g. which request field
// failed binding.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   ErrorBody{Code: code, Message: message, Details: details},
	})
}
