package gamification

import (
	"testing"
	"time"
)

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestEligibleBadges_FirstSteps(t *testing.T) {
	noon := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	got := EligibleBadges(SubmissionStats{Submissions: 1}, noon)
	if !contains(got, BadgeFirstSteps) {
		t.Errorf("expected First Steps on first submission, got %v", got)
	}

	got = EligibleBadges(SubmissionStats{Submissions: 2}, noon)
	if contains(got, BadgeFirstSteps) {
		t.Errorf("did not expect First Steps on second submission, got %v", got)
	}
}

func TestEligibleBadges_QuizMaster(t *testing.T) {
	noon := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	got := EligibleBadges(SubmissionStats{Submissions: 10, HighScores: 4}, noon)
	if contains(got, BadgeQuizMaster) {
		t.Errorf("did not expect Quiz Master at 4 high scores, got %v", got)
	}

	got = EligibleBadges(SubmissionStats{Submissions: 10, HighScores: 5}, noon)
	if !contains(got, BadgeQuizMaster) {
		t.Errorf("expected Quiz Master at 5 high scores, got %v", got)
	}
}

func TestEligibleBadges_StreakHunter(t *testing.T) {
	noon := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	got := EligibleBadges(SubmissionStats{Submissions: 3, Streak: 6}, noon)
	if contains(got, BadgeStreakHunter) {
		t.Errorf("did not expect Streak Hunter at streak 6, got %v", got)
	}

	got = EligibleBadges(SubmissionStats{Submissions: 3, Streak: 7}, noon)
	if !contains(got, BadgeStreakHunter) {
		t.Errorf("expected Streak Hunter at streak 7, got %v", got)
	}
}

func TestEligibleBadges_NightOwlHourWindow(t *testing.T) {
	cases := []struct {
		hour int
		want bool
	}{
		{0, true},
		{3, true},
		{4, false},
		{23, false},
	}
	for _, c := range cases {
		now := time.Date(2025, 3, 10, c.hour, 30, 0, 0, time.Local)
		got := EligibleBadges(SubmissionStats{Submissions: 2}, now)
		if contains(got, BadgeNightOwl) != c.want {
			t.Errorf("hour %d: Night Owl eligibility = %v, want %v", c.hour, !c.want, c.want)
		}
	}
}

func TestEligibleBadges_MultipleAtOnce(t *testing.T) {
	// First submission at 2am during a long streak trips three predicates.
	twoAM := time.Date(2025, 3, 10, 2, 0, 0, 0, time.Local)
	got := EligibleBadges(SubmissionStats{Submissions: 1, Streak: 7}, twoAM)
	for _, id := range []int{BadgeFirstSteps, BadgeStreakHunter, BadgeNightOwl} {
		if !contains(got, id) {
			t.Errorf("expected badge %d in %v", id, got)
		}
	}
}
