package controllers

import (
	"net/http"

	"federation-backend/models"
	"federation-backend/repository"
	"federation-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClubController struct {
	Repo     repository.ClubRepository
	Managers repository.ManagerRepository
	Logger   *zap.Logger
}

func (ctl *ClubController) Create(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		City    string `json:"city"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	club := models.Club{
		Name:    req.Name,
		City:    req.City,
		Address: req.Address,
		Active:  true,
	}

	if err := ctl.Repo.Create(c.Request.Context(), &club); err != nil {
		ctl.Logger.Error("Failed to create club", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create club"})
		return
	}

	c.JSON(http.StatusCreated, club)
}

func (ctl *ClubController) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}

	club, err := ctl.Repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
		return
	}

	c.JSON(http.StatusOK, club)
}

func (ctl *ClubController) List(c *gin.Context) {
	clubs, err := ctl.Repo.FindAll(c.Request.Context())
	if err != nil {
		ctl.Logger.Error("Failed to list clubs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clubs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clubs": clubs})
}

func (ctl *ClubController) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}

	club, err := ctl.Repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
		return
	}

	var req struct {
		Name    string `json:"name" binding:"required"`
		City    string `json:"city"`
		Address string `json:"address"`
		Active  *bool  `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	club.Name = req.Name
	club.City = req.City
	club.Address = req.Address
	if req.Active != nil {
		club.Active = *req.Active
	}

	if err := ctl.Repo.Update(c.Request.Context(), club); err != nil {
		ctl.Logger.Error("Failed to update club", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update club"})
		return
	}

	c.JSON(http.StatusOK, club)
}

func (ctl *ClubController) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}

	if err := ctl.Repo.Delete(c.Request.Context(), id); err != nil {
		ctl.Logger.Error("Failed to delete club", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete club"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// CreateManager provisions a club manager account with a temporary password.
// The manager must change it on first login.
func (ctl *ClubController) CreateManager(c *gin.Context) {
	clubID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}

	if _, err := ctl.Repo.FindByID(c.Request.Context(), clubID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
		return
	}

	var req struct {
		Email             string `json:"email" binding:"required,email"`
		FullName          string `json:"full_name"`
		TemporaryPassword string `json:"temporary_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := services.HashPassword(req.TemporaryPassword)
	if err != nil {
		ctl.Logger.Error("Failed to hash temporary password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create manager"})
		return
	}

	manager := models.ClubManager{
		Email:              req.Email,
		PasswordHash:       hash,
		FullName:           req.FullName,
		ClubID:             clubID,
		MustChangePassword: true,
	}

	if err := ctl.Managers.Create(c.Request.Context(), &manager); err != nil {
		ctl.Logger.Error("Failed to create manager", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create manager"})
		return
	}

	c.JSON(http.StatusCreated, manager)
}
