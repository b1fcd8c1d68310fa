package controllers_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"federation-backend/controllers"
	"federation-backend/models"
	"federation-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// ---- mocks ----

type mockStripeBackend struct {
	createErr  error
	getResp    *stripe.CheckoutSession
	getErr     error
	searchResp []*stripe.PaymentIntent
	searchErr  error
}

func (m *mockStripeBackend) NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &stripe.CheckoutSession{
		ID:        "cs_test_123",
		URL:       "https://checkout.stripe.com/c/pay/cs_test_123",
		ExpiresAt: *params.ExpiresAt,
	}, nil
}

func (m *mockStripeBackend) GetCheckoutSession(_ string, _ *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return m.getResp, m.getErr
}

func (m *mockStripeBackend) SearchPaymentIntents(_ *stripe.PaymentIntentSearchParams) ([]*stripe.PaymentIntent, error) {
	return m.searchResp, m.searchErr
}

type mockPaymentRepo struct {
	bySession map[string]*models.InsurancePayment
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{bySession: make(map[string]*models.InsurancePayment)}
}

func (m *mockPaymentRepo) Create(_ context.Context, payment *models.InsurancePayment) error {
	m.bySession[*payment.StripeSessionID] = payment
	return nil
}

func (m *mockPaymentRepo) FindByStripeSessionID(_ context.Context, sessionID string) (*models.InsurancePayment, error) {
	if payment, ok := m.bySession[sessionID]; ok {
		return payment, nil
	}
	return nil, errors.New("record not found")
}

func (m *mockPaymentRepo) Update(_ context.Context, payment *models.InsurancePayment) error {
	m.bySession[*payment.StripeSessionID] = payment
	return nil
}

func (m *mockPaymentRepo) AttachEventPayload(_ context.Context, _ string, _ string) error {
	return nil
}

type mockPublisher struct{}

func (m *mockPublisher) Publish(_ context.Context, _ string, _ []byte) error { return nil }

// ---- helpers ----

const webhookSecret = "whsec_test"

func newTestRouter(backend *mockStripeBackend, repo *mockPaymentRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()

	stripeSvc := services.NewStripeServiceWithBackend(backend, webhookSecret, "https://federation.example.org")
	insuranceSvc := services.NewInsuranceService(stripeSvc, repo, nil, &mockPublisher{}, "arn:test", logger)

	pc := &controllers.PaymentController{
		Stripe:    stripeSvc,
		Insurance: insuranceSvc,
		Logger:    logger,
	}

	r := gin.New()
	r.POST("/payments/create-session", pc.CreateSession)
	r.GET("/payments/verify-session", pc.VerifySession)
	r.GET("/payments/insurance-status", pc.InsuranceStatus)
	r.POST("/payments/webhook", pc.StripeWebhook)
	return r
}

func signPayload(ts time.Time, payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d", ts.Unix())
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

// ---- create-session ----

func TestCreateSessionEndpoint_Success(t *testing.T) {
	r := newTestRouter(&mockStripeBackend{}, newMockPaymentRepo())

	body := `{"athlete_id":"a1","athlete_name":"Yassine Alami","club_id":"c1","club_name":"Club Casablanca","season_id":"2025","season_label":"Saison 2025/2026"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/create-session", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cs_test_123", resp["sessionId"])
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", resp["paymentUrl"])
}

func TestCreateSessionEndpoint_MissingFields(t *testing.T) {
	r := newTestRouter(&mockStripeBackend{}, newMockPaymentRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/create-session", bytes.NewBufferString(`{"athlete_id":"a1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "season_id")
	assert.Contains(t, w.Body.String(), "club_name")
}

func TestCreateSessionEndpoint_ProviderFailure(t *testing.T) {
	r := newTestRouter(&mockStripeBackend{createErr: errors.New("stripe down")}, newMockPaymentRepo())

	body := `{"athlete_id":"a1","athlete_name":"Yassine Alami","club_id":"c1","club_name":"Club Casablanca","season_id":"2025","season_label":"Saison 2025/2026"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/create-session", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Provider detail stays in the logs, not the response.
	assert.NotContains(t, w.Body.String(), "stripe down")
}

// ---- verify-session ----

func TestVerifySessionEndpoint_MissingID(t *testing.T) {
	r := newTestRouter(&mockStripeBackend{}, newMockPaymentRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/verify-session", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifySessionEndpoint_Completed(t *testing.T) {
	backend := &mockStripeBackend{getResp: &stripe.CheckoutSession{
		ID:            "cs_test_123",
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		Status:        stripe.CheckoutSessionStatusComplete,
	}}
	r := newTestRouter(backend, newMockPaymentRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/verify-session?session_id=cs_test_123", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp["paymentStatus"])
}

// ---- insurance-status ----

func TestInsuranceStatusEndpoint_MissingParams(t *testing.T) {
	r := newTestRouter(&mockStripeBackend{}, newMockPaymentRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/insurance-status?athlete_id=a1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Provider failure still answers 200 with hasPaid=false. An unreachable
// processor must never read as "insured", and never as an HTTP error either.
func TestInsuranceStatusEndpoint_ProviderFailureIs200(t *testing.T) {
	backend := &mockStripeBackend{searchErr: errors.New("stripe unreachable")}
	r := newTestRouter(backend, newMockPaymentRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/insurance-status?athlete_id=a1&season_id=2025", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.InsuranceStatus
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.HasPaid)
}

// ---- webhook ----

func TestWebhookEndpoint_InvalidSignature(t *testing.T) {
	r := newTestRouter(&mockStripeBackend{}, newMockPaymentRepo())

	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewBuffer(payload))
	req.Header.Set("Stripe-Signature", "t=123,v1=deadbeef")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookEndpoint_MissingSignature(t *testing.T) {
	r := newTestRouter(&mockStripeBackend{}, newMockPaymentRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewBufferString(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookEndpoint_UnhandledEventAcknowledged(t *testing.T) {
	repo := newMockPaymentRepo()
	r := newTestRouter(&mockStripeBackend{}, repo)

	payload := []byte(fmt.Sprintf(
		`{"id":"evt_1","object":"event","api_version":%q,"type":"invoice.paid","data":{"object":{"id":"in_1"}}}`,
		stripe.APIVersion,
	))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewBuffer(payload))
	req.Header.Set("Stripe-Signature", signPayload(time.Now(), payload, webhookSecret))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)
	assert.Empty(t, repo.bySession)
}

func TestWebhookEndpoint_CheckoutCompleted(t *testing.T) {
	repo := newMockPaymentRepo()
	r := newTestRouter(&mockStripeBackend{}, repo)

	payload := []byte(fmt.Sprintf(
		`{"id":"evt_1","object":"event","api_version":%q,"type":"checkout.session.completed","data":{"object":{"id":"cs_test_123","object":"checkout.session","amount_total":15000,"currency":"mad","metadata":{"athlete_id":"a1","club_id":"c1","season_id":"2025"}}}}`,
		stripe.APIVersion,
	))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewBuffer(payload))
	req.Header.Set("Stripe-Signature", signPayload(time.Now(), payload, webhookSecret))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	payment, ok := repo.bySession["cs_test_123"]
	assert.True(t, ok)
	assert.Equal(t, "succeeded", payment.Status)
	assert.Equal(t, "a1", payment.AthleteID)
}
