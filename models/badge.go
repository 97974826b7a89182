package models

import "time"

// Badge marks a permanent achievement. The (user_id, name) unique index is the
// sole arbiter against double grants under concurrent checkin submissions.
type Badge struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index:idx_badges_user_name,unique;not null" json:"user_id"`
	Name       string    `gorm:"index:idx_badges_user_name,unique;size:64;not null" json:"name"`
	UnlockedAt time.Time `gorm:"not null" json:"unlocked_at"`
}
