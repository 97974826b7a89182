package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/greenhabit/greenhabit/config"
	"github.com/greenhabit/greenhabit/models"
	"github.com/greenhabit/greenhabit/scoring"
	"github.com/greenhabit/greenhabit/utils"
)

// ConfigController exposes public, non-sensitive settings to clients.
type ConfigController struct{}

// NewConfigController creates a ConfigController.
func NewConfigController() *ConfigController {
	return &ConfigController{}
}

// GetScoring returns the scoring and badge parameters so a client-side
// preview can mirror the server formulas without duplicating their source.
func (c *ConfigController) GetScoring(ctx *gin.Context) {
	cfg := config.Get()
	utils.Success(ctx, gin.H{
		"catalog_size":           models.CatalogSize(),
		"points_per_habit":       scoring.PointsPerHabit,
		"streak_window_days":     cfg.StreakWindowDays,
		"streak_score_threshold": cfg.StreakScoreThreshold,
	})
}
