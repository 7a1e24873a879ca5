package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/middleware"
	"frontdesk-backend/services"
)

// respondError maps service errors to wire responses. Internal errors are
// logged with the request id; their details never reach the client.
func respondError(c *gin.Context, err error) {
	var tooLarge *services.PaymentTooLargeError
	var notCleared *services.BalanceNotClearedError

	switch {
	case errors.As(err, &tooLarge):
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   tooLarge.Error(),
			"maxAmount": tooLarge.MaxAmount.Round(2),
		})
	case errors.As(err, &notCleared):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": notCleared.Error(),
			"balance": notCleared.Balance.Round(2),
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	default:
		log.Printf("❌ internal error [%s %s] rid=%s: %v",
			c.Request.Method, c.Request.URL.Path, middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

// parseID reads a numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
