// Package response implements the uniform API response shape:
// {message, ...data} on success, {message, error?} on failure.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, message string, payload gin.H) {
	body := gin.H{"message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

func Error(c *gin.Context, statusCode int, message string, detail string) {
	body := gin.H{"message": message}
	if detail != "" {
		body["error"] = detail
	}
	c.JSON(statusCode, body)
}
