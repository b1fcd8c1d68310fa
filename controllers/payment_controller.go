package controllers

import (
	"net/http"

	"federation-backend/models"
	"federation-backend/pkg/apperrors"
	"federation-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentController struct {
	Stripe    *services.StripeService
	Insurance *services.InsuranceService
	Logger    *zap.Logger
}

// CreateSession opens a Stripe checkout for an athlete's annual insurance
// and returns the redirect URL.
func (pc *PaymentController) CreateSession(c *gin.Context) {
	var req models.PaymentSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		pc.respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	session, err := pc.Stripe.CreateInsuranceCheckoutSession(req)
	if err != nil {
		status := apperrors.StatusCode(err)
		if status == http.StatusBadRequest {
			pc.respondError(c, status, err.Error(), nil)
			return
		}
		// Provider failures get a generic message; details stay in the logs.
		pc.Logger.Error("Checkout session creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment provider error"})
		return
	}

	pc.Logger.Info("Checkout session created",
		zap.String("session_id", session.SessionID),
		zap.String("athlete_id", req.AthleteID),
		zap.String("season_id", req.SeasonID),
	)

	c.JSON(http.StatusOK, gin.H{
		"sessionId":  session.SessionID,
		"paymentUrl": session.PaymentURL,
		"expiresAt":  session.ExpiresAt,
	})
}

// VerifySession reports the current status of a checkout session. The
// success-page redirect calls this; the webhook remains authoritative for
// the paid effect itself.
func (pc *PaymentController) VerifySession(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		pc.respondError(c, http.StatusBadRequest, "session_id is required", nil)
		return
	}

	status, sess, err := pc.Stripe.VerifySession(sessionID)
	if err != nil {
		pc.Logger.Error("Session verification failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment provider error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"paymentStatus": status,
		"session": gin.H{
			"id":             sess.ID,
			"payment_status": sess.PaymentStatus,
			"status":         sess.Status,
			"amount_total":   sess.AmountTotal,
			"currency":       sess.Currency,
			"metadata":       sess.Metadata,
		},
	})
}

// InsuranceStatus reports coverage for an athlete and season. Always 200:
// lookup failures are reported as not insured (fail-closed), never as errors.
func (pc *PaymentController) InsuranceStatus(c *gin.Context) {
	athleteID := c.Query("athlete_id")
	seasonID := c.Query("season_id")
	if athleteID == "" || seasonID == "" {
		pc.respondError(c, http.StatusBadRequest, "athlete_id and season_id are required", nil)
		return
	}

	status := pc.Insurance.CheckInsuranceStatus(c.Request.Context(), athleteID, seasonID)
	c.JSON(http.StatusOK, status)
}
