package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StripeWebhook receives and dispatches Stripe webhook events. The raw body
// is verified against the signature header before anything in it is trusted.
func (pc *PaymentController) StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		pc.respondError(c, http.StatusBadRequest, "unable to read request body", err)
		return
	}

	event, err := pc.Stripe.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		pc.Logger.Warn("Stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook"})
		return
	}

	pc.Logger.Info("Processing Stripe webhook",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
	)

	if err := pc.Insurance.HandleWebhookEvent(c.Request.Context(), event); err != nil {
		// Only a real processing failure lands here; Stripe will redeliver.
		pc.Logger.Error("Webhook processing failed",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
