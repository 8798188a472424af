package gamification

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/smart-learn/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin() (*sql.Tx, error) {
	return s.db.Begin()
}

// ── Submission write path (all within one transaction) ──

// GetLearnerForUpdate locks the learner's row for the duration of the
// transaction, serializing concurrent submissions by the same learner.
func (s *Store) GetLearnerForUpdate(tx *sql.Tx, studentID int64) (*models.LearnerState, error) {
	var l models.LearnerState
	err := tx.QueryRow(
		`SELECT id, COALESCE(xp, 0), COALESCE(streak, 0), last_login
		 FROM users WHERE id = $1 FOR UPDATE`,
		studentID,
	).Scan(&l.ID, &l.XP, &l.Streak, &l.LastLogin)
	if err == sql.ErrNoRows {
		return nil, ErrLearnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get learner: %w", err)
	}
	return &l, nil
}

func (s *Store) QuizExists(tx *sql.Tx, quizID int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM quizzes WHERE id = $1)`, quizID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check quiz: %w", err)
	}
	return exists, nil
}

// FindScoreByKey returns the score record previously persisted under a
// submission key, or nil when the key is unseen.
func (s *Store) FindScoreByKey(tx *sql.Tx, key string) (*models.QuizScoreRecord, error) {
	var rec models.QuizScoreRecord
	err := tx.QueryRow(
		`SELECT id, student_id, quiz_id, score, completed_at
		 FROM quiz_scores WHERE submission_key = $1`,
		key,
	).Scan(&rec.ID, &rec.StudentID, &rec.QuizID, &rec.Score, &rec.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find score by key: %w", err)
	}
	return &rec, nil
}

func (s *Store) InsertScoreRecord(tx *sql.Tx, studentID, quizID int64, score float64, key *string) (*models.QuizScoreRecord, error) {
	rec := models.QuizScoreRecord{StudentID: studentID, QuizID: quizID, Score: score}
	err := tx.QueryRow(
		`INSERT INTO quiz_scores (student_id, quiz_id, score, submission_key)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, completed_at`,
		studentID, quizID, score, key,
	).Scan(&rec.ID, &rec.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("insert score record: %w", err)
	}
	return &rec, nil
}

// UpdateLearnerProgress writes the recomputed xp/level/streak and stamps
// last_login, the streak calculator's unconditional side effect.
func (s *Store) UpdateLearnerProgress(tx *sql.Tx, studentID int64, xp int64, level, streak int) error {
	_, err := tx.Exec(
		`UPDATE users SET xp = $2, level = $3, streak = $4, last_login = NOW() WHERE id = $1`,
		studentID, xp, level, streak,
	)
	if err != nil {
		return fmt.Errorf("update learner progress: %w", err)
	}
	return nil
}

func (s *Store) CountSubmissions(tx *sql.Tx, studentID int64) (int, error) {
	var count int
	err := tx.QueryRow(
		`SELECT COUNT(*) FROM quiz_scores WHERE student_id = $1`,
		studentID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return count, nil
}

func (s *Store) CountHighScores(tx *sql.Tx, studentID int64) (int, error) {
	var count int
	err := tx.QueryRow(
		`SELECT COUNT(*) FROM quiz_scores WHERE student_id = $1 AND score >= 90`,
		studentID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count high scores: %w", err)
	}
	return count, nil
}

// AwardBadge inserts a badge award, reporting whether it was newly earned.
// Re-awarding a held badge is a no-op, not an error.
func (s *Store) AwardBadge(tx *sql.Tx, studentID int64, badgeID int) (bool, error) {
	result, err := tx.Exec(
		`INSERT INTO user_badges (user_id, badge_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, badge_id) DO NOTHING`,
		studentID, badgeID,
	)
	if err != nil {
		return false, fmt.Errorf("award badge: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// ── Activity ledger ─────────────────────────────────────

// UpsertActivity adds minutes to today's general-activity row, creating it
// on the first ping of the day. The partial unique index on
// (student_id, date) WHERE course_id IS NULL makes the increment atomic.
func (s *Store) UpsertActivity(studentID int64, minutes int) error {
	_, err := s.db.Exec(
		`INSERT INTO student_activity (student_id, course_id, date, time_spent_minutes)
		 VALUES ($1, NULL, (NOW() AT TIME ZONE 'UTC')::date, $2)
		 ON CONFLICT (student_id, date) WHERE course_id IS NULL
		 DO UPDATE SET time_spent_minutes = student_activity.time_spent_minutes + EXCLUDED.time_spent_minutes,
		               updated_at = NOW()`,
		studentID, minutes,
	)
	if err != nil {
		return fmt.Errorf("upsert activity: %w", err)
	}
	return nil
}

func (s *Store) LearnerExists(studentID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check learner: %w", err)
	}
	return exists, nil
}

// ── Progress aggregator (read path) ─────────────────────

type weekBucket struct {
	Start time.Time
	Value float64
}

// WeeklyStudyHours returns one bucket per calendar week over the trailing
// window, zero-filled for weeks with no activity.
func (s *Store) WeeklyStudyHours(studentID int64, weeks int) ([]weekBucket, error) {
	rows, err := s.db.Query(
		`WITH weeks AS (
		    SELECT generate_series(
		        date_trunc('week', CURRENT_DATE - ($2 - 1) * INTERVAL '1 week'),
		        date_trunc('week', CURRENT_DATE),
		        '1 week'::interval
		    ) AS week_start
		 )
		 SELECT w.week_start, COALESCE(SUM(sa.time_spent_minutes), 0) / 60.0 AS hours
		 FROM weeks w
		 LEFT JOIN student_activity sa
		   ON date_trunc('week', sa.date) = w.week_start AND sa.student_id = $1
		 GROUP BY w.week_start
		 ORDER BY w.week_start`,
		studentID, weeks,
	)
	if err != nil {
		return nil, fmt.Errorf("weekly study hours: %w", err)
	}
	defer rows.Close()

	var buckets []weekBucket
	for rows.Next() {
		var b weekBucket
		if err := rows.Scan(&b.Start, &b.Value); err != nil {
			return nil, fmt.Errorf("scan week bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// DailyStudyHours returns the raw per-day totals inside the window; the
// service zero-fills the gaps when assembling the series.
func (s *Store) DailyStudyHours(studentID int64, weeks int) (map[string]float64, error) {
	rows, err := s.db.Query(
		`SELECT date, COALESCE(SUM(time_spent_minutes), 0) / 60.0 AS hours
		 FROM student_activity
		 WHERE student_id = $1 AND date >= CURRENT_DATE - $2 * INTERVAL '1 week'
		 GROUP BY date
		 ORDER BY date`,
		studentID, weeks,
	)
	if err != nil {
		return nil, fmt.Errorf("daily study hours: %w", err)
	}
	defer rows.Close()

	byDate := make(map[string]float64)
	for rows.Next() {
		var date time.Time
		var hours float64
		if err := rows.Scan(&date, &hours); err != nil {
			return nil, fmt.Errorf("scan daily hours: %w", err)
		}
		byDate[date.Format("2006-01-02")] = hours
	}
	return byDate, rows.Err()
}

// WeeklyQuizTrend averages quiz scores per calendar week, zero where a week
// has no submissions.
func (s *Store) WeeklyQuizTrend(studentID int64, weeks int) ([]weekBucket, error) {
	rows, err := s.db.Query(
		`WITH weeks AS (
		    SELECT generate_series(
		        date_trunc('week', CURRENT_DATE - ($2 - 1) * INTERVAL '1 week'),
		        date_trunc('week', CURRENT_DATE),
		        '1 week'::interval
		    ) AS week_start
		 )
		 SELECT w.week_start, COALESCE(AVG(qs.score), 0) AS avg_score
		 FROM weeks w
		 LEFT JOIN quiz_scores qs
		   ON date_trunc('week', qs.completed_at) = w.week_start AND qs.student_id = $1
		 GROUP BY w.week_start
		 ORDER BY w.week_start`,
		studentID, weeks,
	)
	if err != nil {
		return nil, fmt.Errorf("weekly quiz trend: %w", err)
	}
	defer rows.Close()

	var buckets []weekBucket
	for rows.Next() {
		var b weekBucket
		if err := rows.Scan(&b.Start, &b.Value); err != nil {
			return nil, fmt.Errorf("scan trend bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// ── Badges & leaderboard reads ──────────────────────────

func (s *Store) ListBadges() ([]models.Badge, error) {
	rows, err := s.db.Query(`SELECT id, name, icon, description FROM badges ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	defer rows.Close()

	var badges []models.Badge
	for rows.Next() {
		var b models.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Icon, &b.Description); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	if badges == nil {
		badges = []models.Badge{}
	}
	return badges, rows.Err()
}

func (s *Store) EarnedBadges(studentID int64) ([]models.BadgeAward, error) {
	rows, err := s.db.Query(
		`SELECT badge_id, earned_at FROM user_badges WHERE user_id = $1 ORDER BY earned_at`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("earned badges: %w", err)
	}
	defer rows.Close()

	var awards []models.BadgeAward
	for rows.Next() {
		var a models.BadgeAward
		if err := rows.Scan(&a.BadgeID, &a.EarnedAt); err != nil {
			return nil, fmt.Errorf("scan badge award: %w", err)
		}
		awards = append(awards, a)
	}
	if awards == nil {
		awards = []models.BadgeAward{}
	}
	return awards, rows.Err()
}

func (s *Store) Leaderboard(limit int) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, name, COALESCE(xp, 0), COALESCE(streak, 0), avatar, role
		 FROM users
		 WHERE role = 'student'
		 ORDER BY xp DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.XP, &e.Streak, &e.Avatar, &e.Role); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return entries, rows.Err()
}
