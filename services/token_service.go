package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleManager = "manager"
	RoleAdmin   = "admin"

	managerTokenTTL = 24 * time.Hour
	adminTokenTTL   = 12 * time.Hour
)

// TokenService issues and validates the HS256 session tokens that replaced
// the old client-side access flags. Every request revalidates expiry server
// side; nothing about a session is trusted from client storage.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// GenerateManagerToken issues a token for a club manager session.
func (t *TokenService) GenerateManagerToken(managerID, email, clubID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":     managerID,
		"email":   email,
		"club_id": clubID,
		"role":    RoleManager,
		"exp":     time.Now().Add(managerTokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// GenerateAdminToken issues a short-lived token after an access-code exchange.
func (t *TokenService) GenerateAdminToken() (string, error) {
	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": RoleAdmin,
		"exp":  time.Now().Add(adminTokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Claims is the validated view of a session token.
type Claims struct {
	Subject string
	Email   string
	ClubID  string
	Role    string
}

// ValidateToken parses and verifies a token, rejecting unexpected signing
// methods and expired tokens.
func (t *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	out := &Claims{}
	if sub, ok := claims["sub"].(string); ok {
		out.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if clubID, ok := claims["club_id"].(string); ok {
		out.ClubID = clubID
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = role
	}
	return out, nil
}
