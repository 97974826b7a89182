package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhabit/greenhabit/badges"
)

type profilePayload struct {
	Points int `json:"points"`
	Badges []struct {
		Name       string    `json:"name"`
		UnlockedAt time.Time `json:"unlocked_at"`
	} `json:"badges"`
}

func getProfile(t *testing.T, r *gin.Engine, token string) profilePayload {
	t.Helper()
	status, env := doJSON(t, r, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, status)

	var p profilePayload
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestProfileStartsEmpty(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := registerUser(t, r)

	p := getProfile(t, r, token)
	assert.Equal(t, 0, p.Points)
	assert.Empty(t, p.Badges)
}

func TestProfileReflectsCheckins(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := registerUser(t, r)

	status, _ := submitCheckin(t, r, token, "2025-05-01", halfChecks(), 50)
	require.Equal(t, http.StatusOK, status)
	status, _ = submitCheckin(t, r, token, "2025-05-02", allChecks(), 100)
	require.Equal(t, http.StatusOK, status)

	p := getProfile(t, r, token)
	assert.Equal(t, 70+140, p.Points)
	require.Len(t, p.Badges, 1)
	assert.Equal(t, badges.PerfectDay, p.Badges[0].Name)
	assert.False(t, p.Badges[0].UnlockedAt.IsZero())
}

func TestProfileRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)
	status, _ := doJSON(t, r, http.MethodGet, "/api/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
