package services

import (
	"fmt"
	"strings"
	"time"

	"federation-backend/models"
	"federation-backend/pkg/apperrors"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/webhook"
)

// Annual insurance fee, fixed by the federation.
const (
	AnnualInsuranceFeeMAD = 150
	InsuranceCurrency     = "mad"

	// Stripe caps checkout sessions at 24h; the federation uses 30 minutes.
	sessionLifetime = 30 * time.Minute

	paymentTypeAnnualInsurance = "annual_insurance"
)

// StripeBackend is the slice of the Stripe API this service touches.
// The live implementation delegates to stripe-go; tests substitute a mock.
type StripeBackend interface {
	NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetCheckoutSession(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	SearchPaymentIntents(params *stripe.PaymentIntentSearchParams) ([]*stripe.PaymentIntent, error)
}

type liveStripeBackend struct{}

func (liveStripeBackend) NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

func (liveStripeBackend) GetCheckoutSession(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.Get(id, params)
}

func (liveStripeBackend) SearchPaymentIntents(params *stripe.PaymentIntentSearchParams) ([]*stripe.PaymentIntent, error) {
	iter := paymentintent.Search(params)
	var intents []*stripe.PaymentIntent
	for iter.Next() {
		intents = append(intents, iter.PaymentIntent())
	}
	return intents, iter.Err()
}

type StripeService struct {
	backend    StripeBackend
	WebhookKey string
	BaseURL    string
}

func NewStripeService(secretKey, webhookKey, baseURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		backend:    liveStripeBackend{},
		WebhookKey: webhookKey,
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// NewStripeServiceWithBackend wires a custom backend, for tests.
func NewStripeServiceWithBackend(backend StripeBackend, webhookKey, baseURL string) *StripeService {
	return &StripeService{
		backend:    backend,
		WebhookKey: webhookKey,
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// missingSessionFields returns every required field absent from the request,
// not just the first, so the caller can fix them all in one pass.
func missingSessionFields(req models.PaymentSessionRequest) []string {
	var missing []string
	if req.AthleteID == "" {
		missing = append(missing, "athlete_id")
	}
	if req.AthleteName == "" {
		missing = append(missing, "athlete_name")
	}
	if req.ClubID == "" {
		missing = append(missing, "club_id")
	}
	if req.ClubName == "" {
		missing = append(missing, "club_name")
	}
	if req.SeasonID == "" {
		missing = append(missing, "season_id")
	}
	if req.SeasonLabel == "" {
		missing = append(missing, "season_label")
	}
	return missing
}

// CreateInsuranceCheckoutSession opens a Stripe-hosted checkout for one
// athlete's annual insurance. Nothing is written locally: the Stripe session
// is the only state until a webhook arrives. Creation is never retried here,
// a retry could mint a duplicate session behind the user's back.
func (s *StripeService) CreateInsuranceCheckoutSession(req models.PaymentSessionRequest) (*models.PaymentSession, error) {
	if missing := missingSessionFields(req); len(missing) > 0 {
		return nil, apperrors.NewValidation("missing required fields: " + strings.Join(missing, ", "))
	}

	expiresAt := time.Now().Add(sessionLifetime)

	// The same metadata goes on both the session and its payment intent:
	// insurance status lookups search payment intents, webhook reconciliation
	// reads the session. Neither side needs a local database to recover context.
	metadata := map[string]string{
		"athlete_id":   req.AthleteID,
		"athlete_name": req.AthleteName,
		"club_id":      req.ClubID,
		"club_name":    req.ClubName,
		"season_id":    req.SeasonID,
		"season_label": req.SeasonLabel,
		"payment_type": paymentTypeAnnualInsurance,
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(InsuranceCurrency),
					UnitAmount: stripe.Int64(AnnualInsuranceFeeMAD * 100),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Assurance annuelle - " + req.AthleteName),
						Description: stripe.String(fmt.Sprintf("Assurance %s, %s", req.SeasonLabel, req.ClubName)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: metadata,
		},
		SuccessURL: stripe.String(s.BaseURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.BaseURL + "/payment/cancel"),
		ExpiresAt:  stripe.Int64(expiresAt.Unix()),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}

	sess, err := s.backend.NewCheckoutSession(params)
	if err != nil {
		return nil, apperrors.NewProvider("failed to create checkout session", err)
	}

	return &models.PaymentSession{
		SessionID:  sess.ID,
		PaymentURL: sess.URL,
		ExpiresAt:  time.Unix(sess.ExpiresAt, 0),
	}, nil
}

// VerifySession retrieves a checkout session and maps Stripe's status
// vocabulary onto the local four-state result. Read-only and safe to poll.
func (s *StripeService) VerifySession(sessionID string) (models.PaymentStatus, *stripe.CheckoutSession, error) {
	if sessionID == "" {
		return "", nil, apperrors.NewValidation("session_id is required")
	}

	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("payment_intent")
	params.AddExpand("customer")

	sess, err := s.backend.GetCheckoutSession(sessionID, params)
	if err != nil {
		return "", nil, apperrors.NewProvider("failed to retrieve checkout session", err)
	}

	return MapSessionStatus(sess.PaymentStatus, sess.Status), sess, nil
}

// MapSessionStatus collapses Stripe's (payment_status, status) pair into the
// local PaymentStatus. The mapping is total: any pair not listed resolves to
// pending, which keeps an unknown combination from failing the UI.
func MapSessionStatus(paymentStatus stripe.CheckoutSessionPaymentStatus, status stripe.CheckoutSessionStatus) models.PaymentStatus {
	switch {
	case paymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		return models.PaymentStatusCompleted
	case paymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid && status == stripe.CheckoutSessionStatusExpired:
		return models.PaymentStatusExpired
	case paymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid && status == stripe.CheckoutSessionStatusComplete:
		return models.PaymentStatusFailed
	default:
		return models.PaymentStatusPending
	}
}

// SearchSucceededInsurancePayment finds the succeeded payment intent tagged
// for this athlete and season, if any. Stripe search returns results newest
// first, so with more than one match the most recent payment governs.
func (s *StripeService) SearchSucceededInsurancePayment(athleteID, seasonID string) (*stripe.PaymentIntent, error) {
	query := fmt.Sprintf(
		"metadata['athlete_id']:'%s' AND metadata['season_id']:'%s' AND metadata['payment_type']:'%s' AND status:'succeeded'",
		athleteID, seasonID, paymentTypeAnnualInsurance,
	)
	params := &stripe.PaymentIntentSearchParams{
		SearchParams: stripe.SearchParams{Query: query},
	}
	params.Limit = stripe.Int64(1)

	intents, err := s.backend.SearchPaymentIntents(params)
	if err != nil {
		return nil, err
	}
	if len(intents) == 0 {
		return nil, nil
	}
	return intents[0], nil
}

// ParseWebhook verifies the signature header against the raw request body
// before anything in it is trusted. The body must be the exact bytes Stripe
// sent; reserializing it would break the signature.
func (s *StripeService) ParseWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	if sigHeader == "" {
		return stripe.Event{}, apperrors.NewAuthentication(fmt.Errorf("missing Stripe-Signature header"))
	}
	event, err := webhook.ConstructEvent(payload, sigHeader, s.WebhookKey)
	if err != nil {
		return stripe.Event{}, apperrors.NewAuthentication(err)
	}
	return event, nil
}
