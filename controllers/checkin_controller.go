package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenhabit/greenhabit/badges"
	"github.com/greenhabit/greenhabit/config"
	"github.com/greenhabit/greenhabit/models"
	"github.com/greenhabit/greenhabit/scoring"
	"github.com/greenhabit/greenhabit/utils"
)

// CheckinController handles daily checkin submission and the weekly chart feed.
type CheckinController struct {
	db        *gorm.DB
	evaluator *badges.Evaluator
}

// errLedgerMissing marks the signup invariant violation: every account gets a
// points row at creation, so a checkin must never find it absent.
var errLedgerMissing = errors.New("points ledger row missing")

// NewCheckinController creates a controller with the badge evaluator
// configured from the application settings.
func NewCheckinController(db *gorm.DB) *CheckinController {
	cfg := config.Get()
	return &CheckinController{
		db:        db,
		evaluator: badges.NewEvaluator(cfg.StreakWindowDays, cfg.StreakScoreThreshold),
	}
}

type submitCheckinRequest struct {
	Date   string          `json:"date" binding:"required"`
	Checks map[string]bool `json:"checks" binding:"required"`
	Score  *int            `json:"score" binding:"required"`
}

// Submit stores one day's habit completions and runs the scoring pipeline:
// upsert the checkin row, accrue the point delta, evaluate badge unlocks.
// The three steps share one transaction so a concurrent reader never sees a
// partial submission. Resubmitting a date replaces the stored checks and
// score wholesale and accrues a fresh delta; only badges are idempotent.
func (c *CheckinController) Submit(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req submitCheckinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	parsed, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "date must be formatted YYYY-MM-DD")
		return
	}
	date := parsed.Format(models.DateLayout)

	score := *req.Score
	if score < 0 || score > 100 {
		utils.Error(ctx, http.StatusBadRequest, 40022, "score must be between 0 and 100")
		return
	}

	// The checks map is validated against the user's own catalog before any
	// write. The score is range checked only; the client computes it.
	catalogKeys, err := c.habitKeys(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load habit catalog")
		return
	}
	if len(catalogKeys) == 0 {
		utils.Error(ctx, http.StatusNotFound, 40420, "habit catalog not found")
		return
	}
	for key := range req.Checks {
		if _, known := catalogKeys[key]; !known {
			utils.Error(ctx, http.StatusBadRequest, 40023, "unknown habit key: "+key)
			return
		}
	}

	checksJSON, err := json.Marshal(req.Checks)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid checks payload")
		return
	}

	delta := scoring.ComputePointsDelta(score, len(catalogKeys))

	var totalPoints int
	var unlocked []string
	err = c.db.Transaction(func(tx *gorm.DB) error {
		// Idempotent upsert: (user_id, date) is unique, a resubmission
		// overwrites the previous checks and score for that day.
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"checks_json": string(checksJSON),
				"score":       score,
				"updated_at":  time.Now(),
			}),
		}).Create(&models.Checkin{
			UserID:     userID,
			Date:       date,
			ChecksJSON: string(checksJSON),
			Score:      score,
		}).Error
		if err != nil {
			return err
		}

		res := tx.Model(&models.PointsTotal{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"total":      gorm.Expr("total + ?", delta),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errLedgerMissing
		}

		var ledger models.PointsTotal
		if err := tx.Where("user_id = ?", userID).First(&ledger).Error; err != nil {
			return err
		}
		totalPoints = ledger.Total

		unlocked, err = c.evaluator.Evaluate(tx, userID, date, score)
		return err
	})
	if err != nil {
		if errors.Is(err, errLedgerMissing) {
			utils.Error(ctx, http.StatusNotFound, 40421, "points ledger not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to record checkin")
		return
	}

	utils.InvalidateByPrefix(profileCacheKey(userID))

	utils.Success(ctx, gin.H{
		"total_points":    totalPoints,
		"badges_unlocked": unlocked,
	})
}

// weeklyScore is one point on the weekly chart. Days without a checkin are
// omitted; the client fills gaps with zero.
type weeklyScore struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// Weekly returns scores for the most recent 7 calendar days, ascending.
func (c *CheckinController) Weekly(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	from := time.Now().AddDate(0, 0, -6).Format(models.DateLayout)

	rows := []weeklyScore{}
	err := c.db.Model(&models.Checkin{}).
		Select("date", "score").
		Where("user_id = ? AND date >= ?", userID, from).
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load weekly scores")
		return
	}

	utils.Success(ctx, rows)
}

// habitKeys returns the set of habit keys in the user's catalog.
func (c *CheckinController) habitKeys(userID uint) (map[string]struct{}, error) {
	var keys []string
	err := c.db.Model(&models.Habit{}).
		Where("user_id = ?", userID).
		Pluck("key", &keys).Error
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set, nil
}
