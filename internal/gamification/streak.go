package gamification

import "time"

// NextStreak computes the streak after activity at now, given the learner's
// previous last-login timestamp and current streak. Calendar days are
// compared in UTC.
//
//   - active yesterday: streak + 1
//   - not active today (gap, or no prior activity): reset to 1
//   - already active today: unchanged
func NextStreak(lastLogin *time.Time, currentStreak int, now time.Time) int {
	if lastLogin == nil {
		return 1
	}

	today := now.UTC().Truncate(24 * time.Hour)
	yesterday := today.AddDate(0, 0, -1)
	last := lastLogin.UTC().Truncate(24 * time.Hour)

	switch {
	case last.Equal(yesterday):
		return currentStreak + 1
	case !last.Equal(today):
		return 1
	default:
		return currentStreak
	}
}
