package handler

import (
	"github.com/gin-gonic/gin"
)

// Response envelope shared by every endpoint: successes wrap their payload
// under data, list responses add a results count, failures carry a message.

func respondSuccess(c *gin.Context, status int, data gin.H) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

func respondList(c *gin.Context, results int, data gin.H) {
	c.JSON(200, gin.H{
		"status":  "success",
		"results": results,
		"data":    data,
	})
}

func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":  "fail",
		"message": message,
	})
}
