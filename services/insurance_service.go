package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"federation-backend/models"
	"federation-backend/repository"

	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// statusCacheTTL bounds how stale a cached "insured" answer can be. Only
// positive answers are cached; "not insured" is always recomputed.
const statusCacheTTL = 10 * time.Minute

// EventPublisher publishes payment events for the notification pipeline.
type EventPublisher interface {
	Publish(ctx context.Context, topicARN string, payload []byte) error
}

// StatusCache caches insurance-status lookups between UI polls.
type StatusCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type redisStatusCache struct {
	client *redis.Client
}

func NewRedisStatusCache(client *redis.Client) StatusCache {
	return &redisStatusCache{client: client}
}

func (c *redisStatusCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *redisStatusCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// InsuranceService reconciles Stripe events into insurance coverage and
// answers coverage queries.
type InsuranceService struct {
	Stripe    *StripeService
	Repo      repository.InsurancePaymentRepository
	Cache     StatusCache
	Publisher EventPublisher
	TopicARN  string
	Logger    *zap.Logger
}

func NewInsuranceService(
	stripeSvc *StripeService,
	repo repository.InsurancePaymentRepository,
	cache StatusCache,
	publisher EventPublisher,
	topicARN string,
	logger *zap.Logger,
) *InsuranceService {
	return &InsuranceService{
		Stripe:    stripeSvc,
		Repo:      repo,
		Cache:     cache,
		Publisher: publisher,
		TopicARN:  topicARN,
		Logger:    logger,
	}
}

// HandleWebhookEvent dispatches a verified Stripe event. It returns nil for
// every event type it does not act on: once the signature checked out, the
// HTTP boundary must answer 2xx or Stripe will retry the delivery forever.
func (s *InsuranceService) HandleWebhookEvent(ctx context.Context, event stripe.Event) error {
	rawPayload, _ := json.Marshal(event)

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event, rawPayload)
	case "payment_intent.succeeded":
		// Audit only. The paid effect belongs to checkout.session.completed;
		// applying it here too would double-handle the same payment when the
		// two events race.
		s.handlePaymentIntentSucceeded(ctx, event, rawPayload)
		return nil
	case "checkout.session.expired":
		s.Logger.Info("Checkout session expired without payment",
			zap.String("event_id", event.ID),
		)
		return nil
	default:
		s.Logger.Info("Unhandled webhook event type",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
		)
		return nil
	}
}

// handleCheckoutCompleted marks the athlete's season as paid. Idempotent:
// the row is keyed by Stripe's session id, and a row already in succeeded
// state is left untouched, so duplicate deliveries and the webhook/redirect
// race both collapse to a single paid effect.
func (s *InsuranceService) handleCheckoutCompleted(ctx context.Context, event stripe.Event, rawPayload []byte) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		s.Logger.Error("Failed to unmarshal checkout session", zap.Error(err))
		return nil
	}

	athleteID := sess.Metadata["athlete_id"]
	clubID := sess.Metadata["club_id"]
	seasonID := sess.Metadata["season_id"]
	if athleteID == "" || seasonID == "" {
		s.Logger.Warn("Missing metadata in checkout session",
			zap.String("session_id", sess.ID),
			zap.Any("metadata", sess.Metadata),
		)
		return nil
	}

	existing, err := s.Repo.FindByStripeSessionID(ctx, sess.ID)
	if err == nil && existing.Status == "succeeded" {
		s.Logger.Info("Skipping duplicate checkout webhook",
			zap.String("session_id", sess.ID),
			zap.String("payment_id", existing.ID.String()),
		)
		return nil
	}

	now := time.Now()
	payload := string(rawPayload)
	sessionID := sess.ID
	var intentID *string
	if sess.PaymentIntent != nil {
		intentID = stripe.String(sess.PaymentIntent.ID)
	}

	payment := existing
	if payment == nil {
		payment = &models.InsurancePayment{
			AthleteID:       athleteID,
			ClubID:          clubID,
			SeasonID:        seasonID,
			Amount:          sess.AmountTotal,
			Currency:        string(sess.Currency),
			StripeSessionID: &sessionID,
		}
	}
	payment.Status = "succeeded"
	payment.StripePaymentIntentID = intentID
	payment.StripeEventPayload = &payload
	payment.SucceededAt = &now

	if existing == nil {
		err = s.Repo.Create(ctx, payment)
	} else {
		err = s.Repo.Update(ctx, payment)
	}
	if err != nil {
		s.Logger.Error("Failed to record insurance payment",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
		return err
	}

	s.Logger.Info("Insurance payment recorded",
		zap.String("athlete_id", athleteID),
		zap.String("season_id", seasonID),
		zap.String("session_id", sess.ID),
	)

	s.publishPaymentEvent(ctx, models.PaymentEvent{
		Type:      "insurance_payment_succeeded",
		AthleteID: athleteID,
		ClubID:    clubID,
		SeasonID:  seasonID,
		PaymentID: payment.ID.String(),
		SessionID: sess.ID,
		Amount:    sess.AmountTotal,
		Currency:  string(sess.Currency),
		Timestamp: now.UTC(),
	})
	return nil
}

// handlePaymentIntentSucceeded attaches the event body to an existing audit
// row for reconciliation. It never creates a row or changes a status.
func (s *InsuranceService) handlePaymentIntentSucceeded(ctx context.Context, event stripe.Event, rawPayload []byte) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		s.Logger.Error("Failed to unmarshal payment intent", zap.Error(err))
		return
	}

	if err := s.Repo.AttachEventPayload(ctx, pi.ID, string(rawPayload)); err != nil {
		s.Logger.Warn("Failed to attach payment_intent event payload",
			zap.String("payment_intent_id", pi.ID),
			zap.Error(err),
		)
	}

	s.Logger.Info("Payment intent succeeded",
		zap.String("payment_intent_id", pi.ID),
		zap.String("athlete_id", pi.Metadata["athlete_id"]),
	)
}

// CheckInsuranceStatus answers whether the athlete holds valid insurance for
// the season. Stripe's payment records are the source of truth.
//
// Fail-closed by policy: any failure, including the processor being
// unreachable, is reported as hasPaid=false rather than surfaced as an
// error. An outage must never be read as "insured".
func (s *InsuranceService) CheckInsuranceStatus(ctx context.Context, athleteID, seasonID string) models.InsuranceStatus {
	notInsured := models.InsuranceStatus{HasPaid: false}
	if athleteID == "" || seasonID == "" {
		return notInsured
	}

	cacheKey := fmt.Sprintf("insurance:%s:%s", athleteID, seasonID)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey); err == nil {
			var status models.InsuranceStatus
			if err := json.Unmarshal([]byte(cached), &status); err == nil {
				return status
			}
		}
	}

	pi, err := s.Stripe.SearchSucceededInsurancePayment(athleteID, seasonID)
	if err != nil {
		s.Logger.Warn("Insurance payment search failed, treating as not insured",
			zap.String("athlete_id", athleteID),
			zap.String("season_id", seasonID),
			zap.Error(err),
		)
		return notInsured
	}
	if pi == nil {
		return notInsured
	}

	paidAt := time.Unix(pi.Created, 0)
	expiry := paidAt.AddDate(1, 0, 0) // coverage lasts exactly one year
	status := models.InsuranceStatus{
		HasPaid:     true,
		PaymentDate: &paidAt,
		ExpiryDate:  &expiry,
		PaymentID:   pi.ID,
	}

	if s.Cache != nil {
		if encoded, err := json.Marshal(status); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, string(encoded), statusCacheTTL); err != nil {
				s.Logger.Warn("Failed to cache insurance status", zap.Error(err))
			}
		}
	}
	return status
}

// publishPaymentEvent sends the event to SNS. Failures are logged and
// swallowed so the webhook response is never blocked on the notification
// pipeline.
func (s *InsuranceService) publishPaymentEvent(ctx context.Context, event models.PaymentEvent) {
	if s.Publisher == nil {
		return
	}
	payload, _ := json.Marshal(event)
	if err := s.Publisher.Publish(ctx, s.TopicARN, payload); err != nil {
		s.Logger.Error("Failed to publish payment event to SNS",
			zap.String("event_type", event.Type),
			zap.String("athlete_id", event.AthleteID),
			zap.Error(err),
		)
		return
	}
	s.Logger.Info("Payment event published to SNS",
		zap.String("event_type", event.Type),
		zap.String("athlete_id", event.AthleteID),
	)
}
