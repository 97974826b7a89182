package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhabit/greenhabit/badges"
	"github.com/greenhabit/greenhabit/models"
)

func halfChecks() map[string]bool {
	return map[string]bool{
		"exercise": true, "sleep": true, "water": true, "walk": true,
		"meal": true, "meditate": true, "screen": true,
	}
}

func allChecks() map[string]bool {
	checks := map[string]bool{}
	for _, h := range models.DefaultHabits(0) {
		checks[h.Key] = true
	}
	return checks
}

func TestSubmitCheckinAwardsPoints(t *testing.T) {
	r, db := newTestRouter(t)
	token, userID := registerUser(t, r)

	// catalogSize=14, score=50 -> delta 70
	status, result := submitCheckin(t, r, token, "2025-03-10", halfChecks(), 50)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 70, result.TotalPoints)
	assert.Empty(t, result.BadgesUnlocked)

	var ledger models.PointsTotal
	require.NoError(t, db.Where("user_id = ?", userID).First(&ledger).Error)
	assert.Equal(t, 70, ledger.Total)
}

func TestSubmitCheckinUpsertsSameDate(t *testing.T) {
	r, db := newTestRouter(t)
	token, userID := registerUser(t, r)

	status, first := submitCheckin(t, r, token, "2025-03-10", halfChecks(), 50)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 70, first.TotalPoints)

	// Resubmission replaces the stored row but still accrues its own
	// delta. Only badges are idempotent.
	status, second := submitCheckin(t, r, token, "2025-03-10", halfChecks(), 50)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 140, second.TotalPoints)
	assert.Empty(t, second.BadgesUnlocked)

	var count int64
	require.NoError(t, db.Model(&models.Checkin{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "resubmission must overwrite, not append")
}

func TestSubmitCheckinReplacesChecksWholesale(t *testing.T) {
	r, db := newTestRouter(t)
	token, userID := registerUser(t, r)

	_, _ = submitCheckin(t, r, token, "2025-03-10", halfChecks(), 50)
	status, _ := submitCheckin(t, r, token, "2025-03-10", map[string]bool{"water": true}, 7)
	require.Equal(t, http.StatusOK, status)

	var row models.Checkin
	require.NoError(t, db.Where("user_id = ? AND date = ?", userID, "2025-03-10").First(&row).Error)
	assert.Equal(t, 7, row.Score)
	assert.JSONEq(t, `{"water":true}`, row.ChecksJSON, "no merge of partial check sets")
}

func TestPerfectDayBadge(t *testing.T) {
	r, db := newTestRouter(t)
	token, userID := registerUser(t, r)

	status, result := submitCheckin(t, r, token, "2025-03-10", allChecks(), 100)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{badges.PerfectDay}, result.BadgesUnlocked)
	assert.Equal(t, 140, result.TotalPoints)

	// A second perfect day never re-grants the badge.
	status, result = submitCheckin(t, r, token, "2025-03-11", allChecks(), 100)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, result.BadgesUnlocked)

	var count int64
	require.NoError(t, db.Model(&models.Badge{}).
		Where("user_id = ? AND name = ?", userID, badges.PerfectDay).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestWeekConsistencyBoundary(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := registerUser(t, r)

	// Six qualifying days. Scores stay below 100 to keep Perfect Day out.
	for day := 1; day <= 6; day++ {
		date := fmt.Sprintf("2025-03-%02d", day)
		status, result := submitCheckin(t, r, token, date, halfChecks(), 60+day)
		require.Equal(t, http.StatusOK, status)
		require.Empty(t, result.BadgesUnlocked, "partial window must not unlock")
	}

	// Day seven at 59 misses the threshold.
	status, result := submitCheckin(t, r, token, "2025-03-07", halfChecks(), 59)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, result.BadgesUnlocked)

	// Raising day seven to 60 completes the streak.
	status, result = submitCheckin(t, r, token, "2025-03-07", halfChecks(), 60)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{badges.WeekConsistency}, result.BadgesUnlocked)

	// An eighth qualifying day does not grant it again.
	status, result = submitCheckin(t, r, token, "2025-03-08", halfChecks(), 80)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, result.BadgesUnlocked)
}

func TestWeekConsistencyNeedsFullWindow(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := registerUser(t, r)

	// Six rows total, one short of the window, no credit even though
	// every score clears the threshold.
	for day := 1; day <= 6; day++ {
		date := fmt.Sprintf("2025-03-%02d", day)
		status, result := submitCheckin(t, r, token, date, halfChecks(), 90)
		require.Equal(t, http.StatusOK, status)
		assert.Empty(t, result.BadgesUnlocked)
	}
}

func TestBadgeUniquenessUnderConcurrentSubmissions(t *testing.T) {
	r, db := newTestRouter(t)
	token, userID := registerUser(t, r)

	// Workers only collect; every assertion happens on the test goroutine.
	type submission struct {
		status int
		result checkinResult
		err    error
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan submission, workers)

	body, err := json.Marshal(gin.H{"date": "2025-03-10", "checks": allChecks(), "score": 100})
	require.NoError(t, err)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/checkins", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			sub := submission{status: w.Code}
			var env apiEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				sub.err = err
			} else if w.Code == http.StatusOK {
				sub.err = json.Unmarshal(env.Data, &sub.result)
			}
			results <- sub
		}()
	}
	wg.Wait()
	close(results)

	reported := 0
	for sub := range results {
		require.NoError(t, sub.err)
		require.Equal(t, http.StatusOK, sub.status)
		reported += len(sub.result.BadgesUnlocked)
	}
	assert.Equal(t, 1, reported, "exactly one submission may report the unlock")

	var count int64
	require.NoError(t, db.Model(&models.Badge{}).
		Where("user_id = ? AND name = ?", userID, badges.PerfectDay).
		Count(&count).Error)
	assert.EqualValues(t, 1, count, "unique index must reject duplicates")
}

func TestSubmitCheckinValidation(t *testing.T) {
	r, db := newTestRouter(t)
	token, userID := registerUser(t, r)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing date", map[string]interface{}{"checks": halfChecks(), "score": 50}},
		{"malformed date", map[string]interface{}{"date": "10/03/2025", "checks": halfChecks(), "score": 50}},
		{"missing checks", map[string]interface{}{"date": "2025-03-10", "score": 50}},
		{"missing score", map[string]interface{}{"date": "2025-03-10", "checks": halfChecks()}},
		{"score too high", map[string]interface{}{"date": "2025-03-10", "checks": halfChecks(), "score": 101}},
		{"score negative", map[string]interface{}{"date": "2025-03-10", "checks": halfChecks(), "score": -1}},
		{"unknown habit key", map[string]interface{}{"date": "2025-03-10", "checks": map[string]bool{"skydiving": true}, "score": 7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := doJSON(t, r, http.MethodPost, "/api/v1/checkins", token, tc.body)
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}

	// Rejected submissions never touch storage.
	var count int64
	require.NoError(t, db.Model(&models.Checkin{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitCheckinMissingLedgerIsNotFound(t *testing.T) {
	r, db := newTestRouter(t)
	token, userID := registerUser(t, r)

	// Simulate the signup invariant being violated.
	require.NoError(t, db.Where("user_id = ?", userID).Delete(&models.PointsTotal{}).Error)

	status, _ := submitCheckin(t, r, token, "2025-03-10", halfChecks(), 50)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSubmitCheckinRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)
	status, _ := doJSON(t, r, http.MethodPost, "/api/v1/checkins", "", gin.H{
		"date": "2025-03-10", "checks": halfChecks(), "score": 50,
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestWeeklyScoresOmitGaps(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := registerUser(t, r)

	oldest := time.Now().AddDate(0, 0, -6).Format(models.DateLayout)
	today := time.Now().Format(models.DateLayout)

	_, _ = submitCheckin(t, r, token, oldest, halfChecks(), 40)
	_, _ = submitCheckin(t, r, token, today, halfChecks(), 80)
	// A checkin outside the window stays invisible.
	outside := time.Now().AddDate(0, 0, -10).Format(models.DateLayout)
	_, _ = submitCheckin(t, r, token, outside, halfChecks(), 99)

	status, env := doJSON(t, r, http.MethodGet, "/api/v1/checkins/weekly", token, nil)
	require.Equal(t, http.StatusOK, status)

	var rows []struct {
		Date  string `json:"date"`
		Score int    `json:"score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 2, "days without a checkin are omitted, not zero-filled")
	assert.Equal(t, oldest, rows[0].Date)
	assert.Equal(t, 40, rows[0].Score)
	assert.Equal(t, today, rows[1].Date)
	assert.Equal(t, 80, rows[1].Score)
}
