package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError logs a warning and writes a JSON error response.
// The status argument should be an http.Status* constant from the caller.
func (pc *PaymentController) respondError(c *gin.Context, status int, msg string, err error) {
	if err != nil {
		pc.Logger.Warn(msg, zap.Error(err))
	}
	c.JSON(status, gin.H{"error": msg})
}
