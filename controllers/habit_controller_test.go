package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhabit/greenhabit/models"
)

func TestHabitListReturnsCatalog(t *testing.T) {
	r, _ := newTestRouter(t)
	token, _ := registerUser(t, r)

	status, env := doJSON(t, r, http.MethodGet, "/api/v1/habits", token, nil)
	require.Equal(t, http.StatusOK, status)

	var habits []struct {
		Key   string `json:"key"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &habits))
	require.Len(t, habits, models.CatalogSize())

	// Insertion order matches the catalog definition.
	assert.Equal(t, "exercise", habits[0].Key)
	assert.Equal(t, "compost", habits[len(habits)-1].Key)
	for _, h := range habits {
		assert.NotEmpty(t, h.Title, "habit %q has no title", h.Key)
	}
}

func TestHabitListIsPerUser(t *testing.T) {
	r, db := newTestRouter(t)
	token, userID := registerUser(t, r)
	_, otherID := registerUser(t, r)

	// Both users own a catalog, but the endpoint only shows the caller's.
	var total int64
	require.NoError(t, db.Model(&models.Habit{}).Count(&total).Error)
	require.EqualValues(t, 2*models.CatalogSize(), total)

	status, env := doJSON(t, r, http.MethodGet, "/api/v1/habits", token, nil)
	require.Equal(t, http.StatusOK, status)

	var habits []models.Habit
	require.NoError(t, json.Unmarshal(env.Data, &habits))
	require.Len(t, habits, models.CatalogSize())
	for _, h := range habits {
		assert.Equal(t, userID, h.UserID)
		assert.NotEqual(t, otherID, h.UserID)
	}
}

func TestHabitListRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)
	status, _ := doJSON(t, r, http.MethodGet, "/api/v1/habits", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
