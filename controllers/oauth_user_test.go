package controllers

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/greenhabit/greenhabit/models"
)

func newOAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Habit{},
		&models.PointsTotal{},
	))
	return db
}

func TestFindOrCreateOAuthUserHiddenEmails(t *testing.T) {
	db := newOAuthTestDB(t)
	a := NewAuthController(db)

	// Two accounts whose providers expose no address must both provision.
	first, err := a.findOrCreateOAuthUser("github", &oauthUser{ID: "1001", Name: "First"})
	require.NoError(t, err)
	second, err := a.findOrCreateOAuthUser("github", &oauthUser{ID: "1002", Name: "Second"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.Email)
	assert.NotEmpty(t, second.Email)
	assert.NotEqual(t, first.Email, second.Email, "placeholder addresses must not collide")

	// Both got full signup defaults.
	var habits int64
	require.NoError(t, db.Model(&models.Habit{}).Count(&habits).Error)
	assert.EqualValues(t, 2*models.CatalogSize(), habits)
}

func TestFindOrCreateOAuthUserRelogin(t *testing.T) {
	db := newOAuthTestDB(t)
	a := NewAuthController(db)

	first, err := a.findOrCreateOAuthUser("github", &oauthUser{ID: "1001", Name: "Hidden"})
	require.NoError(t, err)

	// A later login that reveals the address upgrades the placeholder.
	again, err := a.findOrCreateOAuthUser("github", &oauthUser{ID: "1001", Name: "Hidden", Email: "Hidden@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "hidden@example.com", again.Email)

	// Hiding it again keeps the stored address.
	third, err := a.findOrCreateOAuthUser("github", &oauthUser{ID: "1001", Name: "Hidden"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)

	var stored models.User
	require.NoError(t, db.First(&stored, first.ID).Error)
	assert.Equal(t, "hidden@example.com", stored.Email)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)
}

func TestProfileCacheKeyIsScopedPerUser(t *testing.T) {
	assert.False(t, strings.HasPrefix(profileCacheKey(12), profileCacheKey(1)),
		"invalidating user 1 must not match user 12")
}
