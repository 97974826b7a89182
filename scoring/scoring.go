// Package scoring holds the single implementation of the checkin score and
// point formulas shared by the API handlers and any client-side preview.
package scoring

import "math"

// PointsPerHabit is the point value of one habit at a perfect score.
const PointsPerHabit = 10

// ComputeScore converts a completed-habit count into a percentage in [0,100].
// A zero-sized catalog scores 0 by convention.
func ComputeScore(completed, catalogSize int) int {
	if catalogSize <= 0 {
		return 0
	}
	if completed < 0 {
		completed = 0
	}
	if completed > catalogSize {
		completed = catalogSize
	}
	return int(math.Round(100 * float64(completed) / float64(catalogSize)))
}

// ComputePointsDelta converts a percentage score into the points awarded for
// one checkin: a full catalog at 100% is worth catalogSize * PointsPerHabit.
func ComputePointsDelta(score, catalogSize int) int {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(float64(score) / 100 * float64(catalogSize) * PointsPerHabit))
}

// CompletedCount counts the habits marked done in a checks map.
func CompletedCount(checks map[string]bool) int {
	n := 0
	for _, done := range checks {
		if done {
			n++
		}
	}
	return n
}
