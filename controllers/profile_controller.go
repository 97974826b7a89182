package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greenhabit/greenhabit/models"
	"github.com/greenhabit/greenhabit/utils"
)

// ProfileController composes the read-only gamification profile.
type ProfileController struct {
	db *gorm.DB
}

// NewProfileController creates a new controller instance.
func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

type badgeResponse struct {
	Name       string    `json:"name"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// Get returns the user's point total and badges ordered by unlock time.
// The payload is cached and invalidated after every checkin submission.
func (p *ProfileController) Get(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := profileCacheKey(userID)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var ledger models.PointsTotal
	points := 0
	if err := p.db.Where("user_id = ?", userID).First(&ledger).Error; err == nil {
		points = ledger.Total
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load points")
		return
	}

	var rows []models.Badge
	if err := p.db.Where("user_id = ?", userID).Order("unlocked_at ASC").Find(&rows).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load badges")
		return
	}

	badgeList := make([]badgeResponse, 0, len(rows))
	for _, b := range rows {
		badgeList = append(badgeList, badgeResponse{Name: b.Name, UnlockedAt: b.UnlockedAt})
	}

	payload := gin.H{"points": points, "badges": badgeList}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}
