package utils

import (
	"log"

	"github.com/gin-gonic/gin"
)

// Fail renders the shared error envelope and aborts the request. Every error
// in the API, middleware included, goes out in this shape.
func Fail(c *gin.Context, status int, message string, errs ...string) {
	if errs == nil {
		errs = []string{}
	}
	log.Printf("[API] [ERROR] %s %s -> %d: %s", c.Request.Method, c.FullPath(), status, message)
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
		"errors":  errs,
		"data":    nil,
	})
}

// Send renders the success envelope.
func Send(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}
