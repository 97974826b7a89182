package models

import "time"

// Todo is a free-form task owned by a user, separate from the habit catalog.
type Todo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Text      string    `gorm:"size:512;not null" json:"text"`
	Done      bool      `gorm:"not null;default:false" json:"done"`
	DueDate   *string   `gorm:"size:10" json:"due_date"`
	Priority  int       `gorm:"not null;default:0" json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
