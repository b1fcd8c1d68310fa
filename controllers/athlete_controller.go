package controllers

import (
	"net/http"
	"strconv"
	"time"

	"federation-backend/models"
	"federation-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AthleteController struct {
	Repo   repository.AthleteRepository
	Logger *zap.Logger
}

type athleteRequest struct {
	FirstName     string     `json:"first_name" binding:"required"`
	LastName      string     `json:"last_name" binding:"required"`
	BirthDate     *time.Time `json:"birth_date"`
	LicenseNumber string     `json:"license_number" binding:"required"`
	Category      string     `json:"category"`
	ClubID        string     `json:"club_id" binding:"required,uuid"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
}

func (ctl *AthleteController) Create(c *gin.Context) {
	var req athleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	athlete := models.Athlete{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		BirthDate:     req.BirthDate,
		LicenseNumber: req.LicenseNumber,
		Category:      req.Category,
		ClubID:        uuid.MustParse(req.ClubID),
		Email:         req.Email,
		Phone:         req.Phone,
	}

	if err := ctl.Repo.Create(c.Request.Context(), &athlete); err != nil {
		ctl.Logger.Error("Failed to create athlete", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create athlete"})
		return
	}

	c.JSON(http.StatusCreated, athlete)
}

func (ctl *AthleteController) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid athlete id"})
		return
	}

	athlete, err := ctl.Repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "athlete not found"})
		return
	}

	c.JSON(http.StatusOK, athlete)
}

func (ctl *AthleteController) List(c *gin.Context) {
	if clubParam := c.Query("club_id"); clubParam != "" {
		clubID, err := uuid.Parse(clubParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
			return
		}
		athletes, err := ctl.Repo.FindByClub(c.Request.Context(), clubID)
		if err != nil {
			ctl.Logger.Error("Failed to list athletes", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list athletes"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"athletes": athletes})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	athletes, total, err := ctl.Repo.FindAll(c.Request.Context(), page, limit)
	if err != nil {
		ctl.Logger.Error("Failed to list athletes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list athletes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"athletes": athletes, "total": total, "page": page})
}

func (ctl *AthleteController) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid athlete id"})
		return
	}

	athlete, err := ctl.Repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "athlete not found"})
		return
	}

	var req athleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	athlete.FirstName = req.FirstName
	athlete.LastName = req.LastName
	athlete.BirthDate = req.BirthDate
	athlete.LicenseNumber = req.LicenseNumber
	athlete.Category = req.Category
	athlete.ClubID = uuid.MustParse(req.ClubID)
	athlete.Email = req.Email
	athlete.Phone = req.Phone

	if err := ctl.Repo.Update(c.Request.Context(), athlete); err != nil {
		ctl.Logger.Error("Failed to update athlete", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update athlete"})
		return
	}

	c.JSON(http.StatusOK, athlete)
}

func (ctl *AthleteController) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid athlete id"})
		return
	}

	if err := ctl.Repo.Delete(c.Request.Context(), id); err != nil {
		ctl.Logger.Error("Failed to delete athlete", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete athlete"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
