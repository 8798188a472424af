package gamification

import "time"

// Badge identifiers, matching the seeded badges table.
const (
	BadgeFirstSteps   = 1
	BadgeQuizMaster   = 2
	BadgeStreakHunter = 3
	BadgeDataWizard   = 4
	BadgeAIPioneer    = 5
	BadgeNightOwl     = 6
)

// SubmissionStats are the cumulative numbers a badge predicate can see,
// measured after the current submission has been counted.
type SubmissionStats struct {
	// Submissions is the learner's total quiz submission count.
	Submissions int
	// HighScores is the count of submissions with score >= 90.
	HighScores int
	// Streak is the post-update streak.
	Streak int
}

// EligibleBadges evaluates the full predicate set against the learner's
// updated stats and returns the badge ids whose predicates hold. Predicates
// are independent and re-checked in full on every submission; awarding an
// already-held badge is a no-op at the store layer. Night Owl uses the
// server's local wall clock, as the submission hour is a presentation-time
// notion rather than a calendar one.
func EligibleBadges(stats SubmissionStats, now time.Time) []int {
	var eligible []int

	if stats.Submissions == 1 {
		eligible = append(eligible, BadgeFirstSteps)
	}
	if stats.HighScores >= 5 {
		eligible = append(eligible, BadgeQuizMaster)
	}
	if stats.Streak >= 7 {
		eligible = append(eligible, BadgeStreakHunter)
	}
	if h := now.Hour(); h >= 0 && h < 4 {
		eligible = append(eligible, BadgeNightOwl)
	}

	return eligible
}
