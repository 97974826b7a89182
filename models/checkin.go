package models

import "time"

// DateLayout is the calendar-date format used for checkin dates. Storing the
// date as a plain string keeps lexicographic and chronological order identical
// and avoids timezone drift between the DB column and Go time values.
const DateLayout = "2006-01-02"

// Checkin is one user's record of completed habits for a single day.
// At most one row exists per (user, date); resubmission replaces the row.
type Checkin struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index:idx_checkins_user_date,unique;not null" json:"user_id"`
	Date       string    `gorm:"index:idx_checkins_user_date,unique;size:10;not null" json:"date"`
	ChecksJSON string    `gorm:"type:text;not null" json:"-"`
	Score      int       `gorm:"not null" json:"score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
