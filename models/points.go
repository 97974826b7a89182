package models

import "time"

// PointsTotal keeps the running point total for a user. The row is created at
// signup with a zero total and only ever incremented afterwards; its absence
// during a checkin is an invariant violation, never silently repaired.
type PointsTotal struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	Total     int       `gorm:"not null;default:0" json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}
