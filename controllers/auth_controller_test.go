package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"federation-backend/controllers"
	"federation-backend/models"
	"federation-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// ---- mock manager repository ----

type mockManagerRepo struct {
	byEmail map[string]*models.ClubManager
	updated map[uuid.UUID]string
}

func newMockManagerRepo() *mockManagerRepo {
	return &mockManagerRepo{
		byEmail: make(map[string]*models.ClubManager),
		updated: make(map[uuid.UUID]string),
	}
}

func (m *mockManagerRepo) Create(_ context.Context, manager *models.ClubManager) error {
	m.byEmail[manager.Email] = manager
	return nil
}

func (m *mockManagerRepo) FindByEmail(_ context.Context, email string) (*models.ClubManager, error) {
	if manager, ok := m.byEmail[email]; ok {
		return manager, nil
	}
	return nil, errors.New("record not found")
}

func (m *mockManagerRepo) FindByID(_ context.Context, id uuid.UUID) (*models.ClubManager, error) {
	for _, manager := range m.byEmail {
		if manager.ID == id {
			return manager, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *mockManagerRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	m.updated[id] = passwordHash
	return nil
}

func (m *mockManagerRepo) TouchLastLogin(_ context.Context, _ uuid.UUID) error { return nil }

// ---- helpers ----

func newAuthRouter(repo *mockManagerRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()

	ac := &controllers.AuthController{
		Managers:        repo,
		Tokens:          services.NewTokenService("test-secret"),
		Passwords:       services.NewPasswordValidator(),
		AdminAccessCode: "federation-2025",
		Logger:          logger,
	}

	r := gin.New()
	r.POST("/auth/login", ac.Login)
	r.POST("/auth/admin-access", ac.AdminAccess)
	return r
}

func seedManager(t *testing.T, repo *mockManagerRepo, email, password string, mustChange bool) *models.ClubManager {
	t.Helper()
	hash, err := services.HashPassword(password)
	assert.NoError(t, err)

	manager := &models.ClubManager{
		ID:                 uuid.New(),
		Email:              email,
		PasswordHash:       hash,
		ClubID:             uuid.New(),
		MustChangePassword: mustChange,
	}
	assert.NoError(t, repo.Create(context.Background(), manager))
	return manager
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestLogin_Success(t *testing.T) {
	repo := newMockManagerRepo()
	seedManager(t, repo, "manager@club.ma", "TempPass123", true)
	r := newAuthRouter(repo)

	w := postJSON(r, "/auth/login", `{"email":"manager@club.ma","password":"TempPass123"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
	assert.Equal(t, true, resp["must_change_password"])
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockManagerRepo()
	seedManager(t, repo, "manager@club.ma", "TempPass123", false)
	r := newAuthRouter(repo)

	w := postJSON(r, "/auth/login", `{"email":"manager@club.ma","password":"WrongPass1"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmailSameResponseAsWrongPassword(t *testing.T) {
	r := newAuthRouter(newMockManagerRepo())

	w := postJSON(r, "/auth/login", `{"email":"nobody@club.ma","password":"TempPass123"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestAdminAccess_ValidCode(t *testing.T) {
	r := newAuthRouter(newMockManagerRepo())

	w := postJSON(r, "/auth/admin-access", `{"access_code":"federation-2025"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	tokens := services.NewTokenService("test-secret")
	claims, err := tokens.ValidateToken(resp["token"].(string))
	assert.NoError(t, err)
	assert.Equal(t, services.RoleAdmin, claims.Role)
}

func TestAdminAccess_InvalidCode(t *testing.T) {
	r := newAuthRouter(newMockManagerRepo())

	w := postJSON(r, "/auth/admin-access", `{"access_code":"guessing"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
