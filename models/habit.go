package models

import "time"

// Habit is one trackable habit belonging to a user. The catalog is cloned
// into per-user rows at signup and never regenerated afterwards.
type Habit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_habits_user_key,unique;not null" json:"user_id"`
	Key       string    `gorm:"index:idx_habits_user_key,unique;size:32;not null" json:"key"`
	Title     string    `gorm:"size:128;not null" json:"title"`
	Emoji     string    `gorm:"size:8" json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

type habitDef struct {
	Key   string
	Title string
	Emoji string
}

// defaultCatalog is the fixed set of habits every new account starts with.
var defaultCatalog = []habitDef{
	{"exercise", "30 min Exercise", "🏃"},
	{"sleep", "7–8 hrs Sleep", "😴"},
	{"water", "Drink 2L Water", "💧"},
	{"walk", "Walk / Transport", "🚶"},
	{"meal", "Healthy Meal", "🥗"},
	{"meditate", "5-min Meditation", "🧘"},
	{"screen", "Limit Screen Time", "📵"},
	{"study", "Study / Learn 30m", "📚"},
	{"nojunk", "Avoid Junk Food", "🚫"},
	{"reusable", "Use Reusable Bottle/Bag", "🔁"},
	{"segregate", "Segregate Waste", "🗑️"},
	{"savepower", "Save Electricity", "💡"},
	{"noPlastic", "Avoid Plastic Bag", "🛍️"},
	{"compost", "Compost / Reduce Waste", "🌿"},
}

// CatalogSize is the number of habits in the default catalog.
func CatalogSize() int {
	return len(defaultCatalog)
}

// DefaultHabits returns the catalog cloned for the given user, ready to insert.
func DefaultHabits(userID uint) []Habit {
	habits := make([]Habit, 0, len(defaultCatalog))
	for _, d := range defaultCatalog {
		habits = append(habits, Habit{UserID: userID, Key: d.Key, Title: d.Title, Emoji: d.Emoji})
	}
	return habits
}
