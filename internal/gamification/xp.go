package gamification

import "math"

const (
	// completionXP is awarded for finishing a quiz regardless of score.
	completionXP = 50
	// xpPerLevel is the threshold between consecutive levels.
	xpPerLevel = 500
)

// XPEarned returns the XP for a quiz submission: 50 base points plus one
// point per percentage point of the score, rounded to nearest.
func XPEarned(score float64) int {
	return completionXP + int(math.Round(score))
}

// LevelForXP derives the level from total XP. Level is never stored
// independently of this computation.
func LevelForXP(xp int64) int {
	return int(xp/xpPerLevel) + 1
}
