package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/greenhabit/greenhabit/middleware"
	"github.com/greenhabit/greenhabit/models"
)

// profileCacheKey ends with a separator so prefix invalidation for user 1
// cannot match user 12's key.
func profileCacheKey(userID uint) string {
	return "cache:profile:" + strconv.Itoa(int(userID)) + ":"
}

// getUserID extracts the authenticated user ID placed by the auth middleware.
func getUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// userResponse is the public projection of a user record.
type userResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func publicUser(u models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, AvatarURL: u.AvatarURL}
}
