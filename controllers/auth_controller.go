package controllers

import (
	"crypto/subtle"
	"net/http"

	"federation-backend/middleware"
	"federation-backend/repository"
	"federation-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthController struct {
	Managers        repository.ManagerRepository
	Tokens          *services.TokenService
	Passwords       *services.PasswordValidator
	AdminAccessCode string
	Logger          *zap.Logger
}

// Login authenticates a club manager. Managers created with a temporary
// password get must_change_password=true back and are expected to call
// ChangePassword before anything else.
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	manager, err := ac.Managers.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if err := services.ComparePassword(manager.PasswordHash, req.Password); err != nil {
		ac.Logger.Warn("Failed login attempt", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := ac.Tokens.GenerateManagerToken(manager.ID.String(), manager.Email, manager.ClubID.String())
	if err != nil {
		ac.Logger.Error("Failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	if err := ac.Managers.TouchLastLogin(c.Request.Context(), manager.ID); err != nil {
		ac.Logger.Warn("Failed to record login time", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"token":                token,
		"must_change_password": manager.MustChangePassword,
		"club_id":              manager.ClubID,
	})
}

// ChangePassword replaces the caller's password and clears the forced-change
// flag set when an admin issues a temporary password.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.Role != services.RoleManager {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "current_password and new_password are required"})
		return
	}

	managerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	manager, err := ac.Managers.FindByID(c.Request.Context(), managerID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := services.ComparePassword(manager.PasswordHash, req.CurrentPassword); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if err := ac.Passwords.ValidatePassword(req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := services.HashPassword(req.NewPassword)
	if err != nil {
		ac.Logger.Error("Failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}

	if err := ac.Managers.UpdatePassword(c.Request.Context(), manager.ID, hash); err != nil {
		ac.Logger.Error("Failed to update password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "password updated"})
}

// AdminAccess exchanges the federation's admin access code for a short-lived
// admin token. The old client-side access flag is gone; every admin request
// now carries a token the server revalidates.
func (ac *AuthController) AdminAccess(c *gin.Context) {
	var req struct {
		AccessCode string `json:"access_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "access_code is required"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.AccessCode), []byte(ac.AdminAccessCode)) != 1 {
		ac.Logger.Warn("Invalid admin access code attempt", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access code"})
		return
	}

	token, err := ac.Tokens.GenerateAdminToken()
	if err != nil {
		ac.Logger.Error("Failed to generate admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
