// Package badges evaluates badge unlock rules after a checkin is stored.
//
// Every rule follows the same shape: test its condition, then attempt an
// insert that a unique index turns into a no-op when the badge is already
// held. The index, not a prior read, decides races between concurrent
// submissions, so re-evaluating an already-unlocked badge reports nothing
// and never errors.
package badges

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/greenhabit/greenhabit/models"
)

// Badge names. Granted at most once per user.
const (
	PerfectDay      = "Perfect Day"
	WeekConsistency = "1-Week Consistency"
)

// Evaluator checks unlock conditions against a user's checkin history.
type Evaluator struct {
	windowDays     int
	scoreThreshold int
}

// NewEvaluator builds an Evaluator with the streak window length (in days)
// and the minimum score a day must reach to count toward the streak.
func NewEvaluator(windowDays, scoreThreshold int) *Evaluator {
	return &Evaluator{windowDays: windowDays, scoreThreshold: scoreThreshold}
}

type rule struct {
	name    string
	unlocks func(tx *gorm.DB, userID uint, date string, score int) (bool, error)
}

func (e *Evaluator) rules() []rule {
	return []rule{
		{name: PerfectDay, unlocks: e.perfectDay},
		{name: WeekConsistency, unlocks: e.weekConsistency},
	}
}

// Evaluate runs every rule for the submitted checkin and returns the names of
// newly unlocked badges. It must run inside the same transaction as the
// checkin upsert so a failed submission leaves no badge behind.
func (e *Evaluator) Evaluate(tx *gorm.DB, userID uint, date string, score int) ([]string, error) {
	unlocked := []string{}
	for _, r := range e.rules() {
		ok, err := r.unlocks(tx, userID, date, score)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Badge{UserID: userID, Name: r.name, UnlockedAt: time.Now()})
		if res.Error != nil {
			return nil, res.Error
		}
		// RowsAffected == 0 means the unique index rejected a duplicate:
		// the badge was already held, so it is not reported as new.
		if res.RowsAffected > 0 {
			unlocked = append(unlocked, r.name)
		}
	}
	return unlocked, nil
}

func (e *Evaluator) perfectDay(tx *gorm.DB, userID uint, date string, score int) (bool, error) {
	return score == 100, nil
}

// weekConsistency fires only when the lookback window is completely filled:
// exactly windowDays checkins exist with date <= the submitted date and every
// one of them meets the threshold. Partial windows never earn credit.
func (e *Evaluator) weekConsistency(tx *gorm.DB, userID uint, date string, score int) (bool, error) {
	var scores []int
	err := tx.Model(&models.Checkin{}).
		Where("user_id = ? AND date <= ?", userID, date).
		Order("date DESC").
		Limit(e.windowDays).
		Pluck("score", &scores).Error
	if err != nil {
		return false, err
	}
	if len(scores) != e.windowDays {
		return false, nil
	}
	for _, s := range scores {
		if s < e.scoreThreshold {
			return false, nil
		}
	}
	return true, nil
}
