package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greenhabit/greenhabit/models"
	"github.com/greenhabit/greenhabit/utils"
)

// StatsController provides aggregate service statistics.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns public counts. Each count falls back to zero on error
// rather than failing the whole endpoint.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var checkinCount int64
	var badgeCount int64
	var checkinsToday int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}
	if err := s.db.Model(&models.Checkin{}).Count(&checkinCount).Error; err != nil {
		checkinCount = 0
	}
	if err := s.db.Model(&models.Badge{}).Count(&badgeCount).Error; err != nil {
		badgeCount = 0
	}

	today := time.Now().Format(models.DateLayout)
	if err := s.db.Model(&models.Checkin{}).Where("date = ?", today).Count(&checkinsToday).Error; err != nil {
		checkinsToday = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":     userCount,
		"checkin_count":  checkinCount,
		"badge_count":    badgeCount,
		"checkins_today": checkinsToday,
	})
}
