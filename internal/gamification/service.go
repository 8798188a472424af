package gamification

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/smart-learn/backend/internal/models"
)

// Core error taxonomy. Anything else coming out of the service is a
// storage failure the caller may retry.
var (
	ErrLearnerNotFound = errors.New("learner not found")
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// Notifier receives fire-and-forget performance signals after a successful
// submission. Implementations must never block the caller.
type Notifier interface {
	PredictPerformance(score float64, timeSpentMinutes, loginStreak int)
}

const progressWindowWeeks = 8

type Service struct {
	store    *Store
	notifier Notifier
}

// NewService wires the engine. notifier may be nil when no prediction
// service is configured.
func NewService(store *Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// ── Submission write path ───────────────────────────────

// SubmitQuizResult records a scored attempt and applies its gamification
// effects — XP, level, streak, badge awards — as one atomic unit. A storage
// failure anywhere rolls the whole submission back.
func (s *Service) SubmitQuizResult(studentID int64, req models.SubmitQuizRequest) (*models.SubmissionOutcome, error) {
	if req.Score < 0 || req.Score > 100 {
		return nil, fmt.Errorf("%w: score must be between 0 and 100", ErrInvalidInput)
	}
	if req.QuizID <= 0 {
		return nil, fmt.Errorf("%w: quizId is required", ErrInvalidInput)
	}

	var key *string
	if req.SubmissionKey != "" {
		if _, err := uuid.Parse(req.SubmissionKey); err != nil {
			return nil, fmt.Errorf("%w: submissionKey must be a UUID", ErrInvalidInput)
		}
		key = &req.SubmissionKey
	}

	now := time.Now()

	tx, err := s.store.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin submission: %w", err)
	}
	defer tx.Rollback()

	// Locking the learner row first serializes concurrent submissions by
	// the same learner; later submitters see the committed state.
	learner, err := s.store.GetLearnerForUpdate(tx, studentID)
	if err != nil {
		return nil, err
	}

	if key != nil {
		existing, err := s.store.FindScoreByKey(tx, *key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			// Retry of an already-applied submission: report the persisted
			// record without re-applying any effect.
			outcome := &models.SubmissionOutcome{
				QuizScoreRecord: *existing,
				XPEarned:        XPEarned(existing.Score),
				NewLevel:        LevelForXP(learner.XP),
				NewStreak:       learner.Streak,
				NewBadges:       []int{},
				Replayed:        true,
			}
			return outcome, tx.Commit()
		}
	}

	exists, err := s.store.QuizExists(tx, req.QuizID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrQuizNotFound
	}

	record, err := s.store.InsertScoreRecord(tx, studentID, req.QuizID, req.Score, key)
	if err != nil {
		return nil, err
	}

	xpEarned := XPEarned(req.Score)
	newXP := learner.XP + int64(xpEarned)
	newLevel := LevelForXP(newXP)
	newStreak := NextStreak(learner.LastLogin, learner.Streak, now)

	if err := s.store.UpdateLearnerProgress(tx, studentID, newXP, newLevel, newStreak); err != nil {
		return nil, err
	}

	submissions, err := s.store.CountSubmissions(tx, studentID)
	if err != nil {
		return nil, err
	}
	highScores, err := s.store.CountHighScores(tx, studentID)
	if err != nil {
		return nil, err
	}

	stats := SubmissionStats{
		Submissions: submissions,
		HighScores:  highScores,
		Streak:      newStreak,
	}

	newBadges := []int{}
	for _, badgeID := range EligibleBadges(stats, now) {
		awarded, err := s.store.AwardBadge(tx, studentID, badgeID)
		if err != nil {
			return nil, err
		}
		if awarded {
			newBadges = append(newBadges, badgeID)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit submission: %w", err)
	}

	if len(newBadges) > 0 {
		log.Printf("[gamification] learner %d earned badges %v", studentID, newBadges)
	}

	// Side channel only; its outcome never touches the response.
	if s.notifier != nil {
		s.notifier.PredictPerformance(req.Score, 60, newStreak)
	}

	return &models.SubmissionOutcome{
		QuizScoreRecord: *record,
		XPEarned:        xpEarned,
		NewLevel:        newLevel,
		NewStreak:       newStreak,
		NewBadges:       newBadges,
	}, nil
}

// ── Activity ledger ─────────────────────────────────────

func (s *Service) RecordActivity(studentID int64, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: minutes must be positive", ErrInvalidInput)
	}

	exists, err := s.store.LearnerExists(studentID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrLearnerNotFound
	}

	return s.store.UpsertActivity(studentID, minutes)
}

// ── Progress aggregator ─────────────────────────────────

// GetProgressSeries rolls the activity ledger and score history into the
// weekly/daily buckets the dashboard charts consume. Every bucket in the
// window is present, zero-valued where the learner was idle.
func (s *Service) GetProgressSeries(studentID int64) (*models.ProgressSeries, error) {
	weekly, err := s.store.WeeklyStudyHours(studentID, progressWindowWeeks)
	if err != nil {
		return nil, err
	}
	daily, err := s.store.DailyStudyHours(studentID, progressWindowWeeks)
	if err != nil {
		return nil, err
	}

	studyHours := make([]models.WeeklyStudyHours, 0, len(weekly))
	for _, w := range weekly {
		days := make([]models.DailyStudyHours, 0, 7)
		for i := 0; i < 7; i++ {
			day := w.Start.AddDate(0, 0, i)
			label := formatDayLabel(day)
			days = append(days, models.DailyStudyHours{
				Day:   label,
				Date:  label,
				Hours: roundHours(daily[day.Format("2006-01-02")]),
			})
		}
		studyHours = append(studyHours, models.WeeklyStudyHours{
			Week:  formatWeekRange(w.Start, w.Start.AddDate(0, 0, 6)),
			Hours: roundHours(w.Value),
			Days:  days,
		})
	}

	trend, err := s.store.WeeklyQuizTrend(studentID, progressWindowWeeks)
	if err != nil {
		return nil, err
	}
	quizTrend := make([]models.QuizTrendPoint, 0, len(trend))
	for _, t := range trend {
		quizTrend = append(quizTrend, models.QuizTrendPoint{
			Week:  formatDayLabel(t.Start),
			Score: int(math.Round(t.Value)),
		})
	}

	return &models.ProgressSeries{StudyHours: studyHours, QuizTrend: quizTrend}, nil
}

// ── Badges & leaderboard ────────────────────────────────

func (s *Service) ListBadges() ([]models.Badge, error) {
	return s.store.ListBadges()
}

func (s *Service) EarnedBadges(studentID int64) ([]models.BadgeAward, error) {
	return s.store.EarnedBadges(studentID)
}

func (s *Service) GetLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.Leaderboard(limit)
}
