package gamification

import (
	"testing"
	"time"
)

func TestNextStreak_FirstEverSubmission(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	if got := NextStreak(nil, 0, now); got != 1 {
		t.Errorf("expected streak 1 for first submission, got %d", got)
	}
}

func TestNextStreak_ConsecutiveDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	if got := NextStreak(&yesterday, 4, now); got != 5 {
		t.Errorf("expected streak 5 after consecutive day, got %d", got)
	}
}

func TestNextStreak_SameDayUnchanged(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	earlier := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	if got := NextStreak(&earlier, 4, now); got != 4 {
		t.Errorf("expected streak unchanged on same day, got %d", got)
	}
}

func TestNextStreak_GapResets(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	threeDaysAgo := now.AddDate(0, 0, -3)
	if got := NextStreak(&threeDaysAgo, 12, now); got != 1 {
		t.Errorf("expected streak reset to 1 after gap, got %d", got)
	}
}

func TestNextStreak_MidnightBoundary(t *testing.T) {
	// 23:59 then 00:01 the next day is still consecutive.
	lastLogin := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC)
	if got := NextStreak(&lastLogin, 2, now); got != 3 {
		t.Errorf("expected streak 3 across midnight, got %d", got)
	}
}
