package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhabit/greenhabit/models"
	"github.com/greenhabit/greenhabit/scoring"
)

func TestStatsArePublicAndCount(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := registerUser(t, r)

	today := time.Now().Format(models.DateLayout)
	status, _ := submitCheckin(t, r, token, today, allChecks(), 100)
	require.Equal(t, http.StatusOK, status)
	status, _ = submitCheckin(t, r, token, "2025-05-01", halfChecks(), 50)
	require.Equal(t, http.StatusOK, status)

	// No token: the endpoint is public.
	status, env := doJSON(t, r, http.MethodGet, "/api/v1/stats", "", nil)
	require.Equal(t, http.StatusOK, status)

	var stats struct {
		UserCount     int64 `json:"user_count"`
		CheckinCount  int64 `json:"checkin_count"`
		BadgeCount    int64 `json:"badge_count"`
		CheckinsToday int64 `json:"checkins_today"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.EqualValues(t, 1, stats.UserCount)
	assert.EqualValues(t, 2, stats.CheckinCount)
	assert.EqualValues(t, 1, stats.BadgeCount)
	assert.EqualValues(t, 1, stats.CheckinsToday)
}

func TestScoringConfigIsPublic(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := doJSON(t, r, http.MethodGet, "/api/v1/config/scoring", "", nil)
	require.Equal(t, http.StatusOK, status)

	var cfg struct {
		CatalogSize          int `json:"catalog_size"`
		PointsPerHabit       int `json:"points_per_habit"`
		StreakWindowDays     int `json:"streak_window_days"`
		StreakScoreThreshold int `json:"streak_score_threshold"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cfg))
	assert.Equal(t, models.CatalogSize(), cfg.CatalogSize)
	assert.Equal(t, scoring.PointsPerHabit, cfg.PointsPerHabit)
	assert.Equal(t, 7, cfg.StreakWindowDays)
	assert.Equal(t, 60, cfg.StreakScoreThreshold)
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
}
