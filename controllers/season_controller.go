package controllers

import (
	"net/http"
	"time"

	"federation-backend/models"
	"federation-backend/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SeasonController struct {
	Repo   repository.SeasonRepository
	Logger *zap.Logger
}

func (ctl *SeasonController) Create(c *gin.Context) {
	var req struct {
		ID       string    `json:"id" binding:"required"`
		Label    string    `json:"label" binding:"required"`
		StartsAt time.Time `json:"starts_at" binding:"required"`
		EndsAt   time.Time `json:"ends_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	season := models.Season{
		ID:       req.ID,
		Label:    req.Label,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}

	if err := ctl.Repo.Create(c.Request.Context(), &season); err != nil {
		ctl.Logger.Error("Failed to create season", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create season"})
		return
	}

	c.JSON(http.StatusCreated, season)
}

func (ctl *SeasonController) List(c *gin.Context) {
	seasons, err := ctl.Repo.FindAll(c.Request.Context())
	if err != nil {
		ctl.Logger.Error("Failed to list seasons", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list seasons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"seasons": seasons})
}

func (ctl *SeasonController) Current(c *gin.Context) {
	season, err := ctl.Repo.FindCurrent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no current season"})
		return
	}

	c.JSON(http.StatusOK, season)
}

// SetCurrent marks one season as current and clears the flag on the rest.
func (ctl *SeasonController) SetCurrent(c *gin.Context) {
	id := c.Param("id")

	season, err := ctl.Repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "season not found"})
		return
	}

	seasons, err := ctl.Repo.FindAll(c.Request.Context())
	if err != nil {
		ctl.Logger.Error("Failed to list seasons", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update season"})
		return
	}

	for i := range seasons {
		if seasons[i].Current && seasons[i].ID != season.ID {
			seasons[i].Current = false
			if err := ctl.Repo.Update(c.Request.Context(), &seasons[i]); err != nil {
				ctl.Logger.Error("Failed to clear current season", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update season"})
				return
			}
		}
	}

	season.Current = true
	if err := ctl.Repo.Update(c.Request.Context(), season); err != nil {
		ctl.Logger.Error("Failed to set current season", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update season"})
		return
	}

	c.JSON(http.StatusOK, season)
}
