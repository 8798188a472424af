package models

import "time"

// LearnerState is the mutable gamification slice of a user row, read under
// a row lock during quiz submission.
type LearnerState struct {
	ID        int64
	XP        int64
	Streak    int
	LastLogin *time.Time
}

// QuizScoreRecord is the immutable log of one scored attempt.
type QuizScoreRecord struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"student_id"`
	QuizID      int64     `json:"quiz_id"`
	Score       float64   `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
}

type SubmitQuizRequest struct {
	QuizID int64   `json:"quizId"`
	Score  float64 `json:"score"`
	// SubmissionKey is an optional client-supplied UUID. Retrying a failed
	// submission with the same key will not double-apply XP or badges.
	SubmissionKey string `json:"submissionKey,omitempty"`
}

// SubmissionOutcome is what a quiz submission returns to the caller.
type SubmissionOutcome struct {
	QuizScoreRecord
	XPEarned  int   `json:"xpEarned"`
	NewLevel  int   `json:"newLevel"`
	NewStreak int   `json:"streak"`
	NewBadges []int `json:"newBadges"`
	// Replayed is true when a submission_key matched an already-persisted
	// attempt and no new effects were applied.
	Replayed bool `json:"replayed,omitempty"`
}

type RecordActivityRequest struct {
	Minutes int `json:"minutes"`
}

type Badge struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type BadgeAward struct {
	BadgeID  int       `json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`
}

type LeaderboardEntry struct {
	Rank   int     `json:"rank"`
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	XP     int64   `json:"xp"`
	Streak int     `json:"streak"`
	Avatar *string `json:"avatar,omitempty"`
	Role   string  `json:"role"`
}

// ── Progress series (read path) ──────────────────────────

type DailyStudyHours struct {
	Day   string  `json:"day"`
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type WeeklyStudyHours struct {
	Week  string            `json:"week"`
	Hours float64           `json:"hours"`
	Days  []DailyStudyHours `json:"days"`
}

type QuizTrendPoint struct {
	Week  string `json:"week"`
	Score int    `json:"score"`
}

type ProgressSeries struct {
	StudyHours []WeeklyStudyHours `json:"studyHours"`
	QuizTrend  []QuizTrendPoint   `json:"quizTrend"`
}

// StudentStatsResponse backs the student dashboard.
type StudentStatsResponse struct {
	Courses     int                `json:"courses"`
	QuizzesDone int                `json:"quizzesDone"`
	AvgScore    float64            `json:"avgScore"`
	XP          int64              `json:"xp"`
	Streak      int                `json:"streak"`
	Level       int                `json:"level"`
	QuizTrend   []QuizTrendPoint   `json:"quizTrend"`
	StudyHours  []WeeklyStudyHours `json:"studyHours"`
	Badges      []BadgeAward       `json:"badges"`
}
