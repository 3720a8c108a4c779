package response

import (
	"github.com/gin-gonic/gin"
)

type ApiEnvelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Query   *string           `json:"query,omitempty"`
	Count   *int              `json:"count,omitempty"`
	Message string            `json:"message,omitempty"`
	Code    string            `json:"code,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Data:    data,
	})
}

// List renders a collection with its size; count is always present, even
// for an empty result.
func List(c *gin.Context, status int, data interface{}, count int) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

func Search(c *gin.Context, status int, data interface{}, query string, count int) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Data:    data,
		Query:   &query,
		Count:   &count,
	})
}

func Message(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error renders a failure. Validation failures carry per-field details in
// errors; everything else only carries message.
func Error(c *gin.Context, status int, errorCode string, message string, details map[string]string) {
	env := ApiEnvelope{
		Success: false,
		Code:    errorCode,
	}
	if len(details) > 0 {
		env.Errors = details
	} else {
		env.Message = message
	}
	c.JSON(status, env)
}
