package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greenhabit/greenhabit/models"
	"github.com/greenhabit/greenhabit/utils"
)

// HabitController serves the per-user habit catalog.
type HabitController struct {
	db *gorm.DB
}

// NewHabitController creates a new controller instance.
func NewHabitController(db *gorm.DB) *HabitController {
	return &HabitController{db: db}
}

// List returns the user's habit catalog in insertion order. The catalog is
// immutable after signup, so the cached copy never needs invalidation.
func (h *HabitController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	cacheKey := "cache:habits:" + strconv.Itoa(int(userID))
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var habits []models.Habit
	if err := h.db.Where("user_id = ?", userID).Order("id").Find(&habits).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load habits")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: habits}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, habits)
}
