package admin

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/smart-learn/backend/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── User management ─────────────────────────────────────

func (s *Store) ListUsers() ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, role, status, avatar, xp, level, streak, last_login, created_at
		FROM users
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.Avatar,
			&u.XP, &u.Level, &u.Streak, &u.LastLogin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) CreateUser(name, email, passwordHash, role string) (*models.User, error) {
	user := models.User{
		Name:   name,
		Email:  email,
		Role:   role,
		Status: models.StatusActive,
		Level:  1,
	}
	err := s.db.QueryRow(`
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		name, email, passwordHash, role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// ToggleStatus flips a user between active and banned and returns the new
// status.
func (s *Store) ToggleStatus(userID int64) (string, error) {
	var status string
	err := s.db.QueryRow(`
		UPDATE users SET status = CASE WHEN status = 'active' THEN 'banned' ELSE 'active' END
		WHERE id = $1
		RETURNING status`, userID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("toggle status: %w", err)
	}
	return status, nil
}

func (s *Store) UpdateRole(userID int64, role string) error {
	res, err := s.db.Exec(`UPDATE users SET role = $2 WHERE id = $1`, userID, role)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *Store) InstructorIDs() ([]int64, error) {
	rows, err := s.db.Query(`SELECT id FROM users WHERE role = 'instructor' AND status = 'active'`)
	if err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan instructor id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ── Course management ───────────────────────────────────

func (s *Store) ListCourses() ([]models.AdminCourse, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.title, COALESCE(c.description, ''), u.name,
			COUNT(e.id) AS students_count, c.created_at
		FROM courses c
		JOIN users u ON u.id = c.instructor_id
		LEFT JOIN enrollments e ON e.course_id = c.id
		GROUP BY c.id, u.name
		ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := []models.AdminCourse{}
	for rows.Next() {
		var c models.AdminCourse
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.InstructorName, &c.StudentsCount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (s *Store) CourseStudents(courseID int64) ([]models.CourseStudent, error) {
	rows, err := s.db.Query(`
		SELECT u.id, u.name, u.email, u.avatar, e.progress, e.enrolled_at, e.last_accessed
		FROM enrollments e
		JOIN users u ON u.id = e.student_id
		WHERE e.course_id = $1
		ORDER BY e.enrolled_at`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list course students: %w", err)
	}
	defer rows.Close()

	students := []models.CourseStudent{}
	for rows.Next() {
		var st models.CourseStudent
		if err := rows.Scan(&st.ID, &st.Name, &st.Email, &st.Avatar, &st.Progress, &st.EnrolledAt, &st.LastAccessed); err != nil {
			return nil, fmt.Errorf("scan course student: %w", err)
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

func (s *Store) DeleteCourse(courseID int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		return false, fmt.Errorf("delete course: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete course: %w", err)
	}
	return n > 0, nil
}

// ── Platform analytics ──────────────────────────────────

type monthlySignups struct {
	Month time.Time
	Count int
}

// MonthlySignups returns signups per calendar month over the last n months,
// zero-filled, oldest first.
func (s *Store) MonthlySignups(months int) ([]monthlySignups, error) {
	rows, err := s.db.Query(`
		WITH series AS (
			SELECT generate_series(
				date_trunc('month', NOW()) - ($1 - 1) * INTERVAL '1 month',
				date_trunc('month', NOW()),
				'1 month'
			) AS month
		)
		SELECT s.month, COALESCE(COUNT(u.id), 0)
		FROM series s
		LEFT JOIN users u ON date_trunc('month', u.created_at) = s.month
		GROUP BY s.month
		ORDER BY s.month`, months)
	if err != nil {
		return nil, fmt.Errorf("monthly signups: %w", err)
	}
	defer rows.Close()

	series := []monthlySignups{}
	for rows.Next() {
		var m monthlySignups
		if err := rows.Scan(&m.Month, &m.Count); err != nil {
			return nil, fmt.Errorf("scan monthly signups: %w", err)
		}
		series = append(series, m)
	}
	return series, rows.Err()
}

func (s *Store) CourseTitles() ([]string, error) {
	rows, err := s.db.Query(`SELECT title FROM courses`)
	if err != nil {
		return nil, fmt.Errorf("list course titles: %w", err)
	}
	defer rows.Close()

	titles := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan course title: %w", err)
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

type platformTotals struct {
	TotalUsers     int
	ActiveCourses  int
	CompletionRate float64
	DropoutRate    float64
}

// PlatformTotals gathers the headline admin numbers. Dropout rate is the
// share of enrollments untouched for 30 days and under half complete.
func (s *Store) PlatformTotals() (*platformTotals, error) {
	var t platformTotals
	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM courses),
			COALESCE((SELECT AVG(progress) FROM enrollments), 0),
			COALESCE((
				SELECT 100.0 * COUNT(*) FILTER (
					WHERE last_accessed < NOW() - INTERVAL '30 days' AND progress < 50
				) / NULLIF(COUNT(*), 0)
				FROM enrollments
			), 0)`,
	).Scan(&t.TotalUsers, &t.ActiveCourses, &t.CompletionRate, &t.DropoutRate)
	if err != nil {
		return nil, fmt.Errorf("platform totals: %w", err)
	}
	return &t, nil
}

// ── Reports ─────────────────────────────────────────────

// RecentActivity lists the latest study sessions across the platform, with
// a placeholder label for sessions not tied to a course.
func (s *Store) RecentActivity(limit int) ([]models.ActivityReportEntry, error) {
	rows, err := s.db.Query(`
		SELECT sa.id, u.name, COALESCE(c.title, 'General Platform Learning'),
			sa.date, sa.time_spent_minutes
		FROM student_activity sa
		JOIN users u ON u.id = sa.student_id
		LEFT JOIN courses c ON c.id = sa.course_id
		ORDER BY sa.updated_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()

	entries := []models.ActivityReportEntry{}
	for rows.Next() {
		var e models.ActivityReportEntry
		if err := rows.Scan(&e.ID, &e.User, &e.Course, &e.Date, &e.TimeSpentMinutes); err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SystemLogs surfaces recent warning and error notifications.
func (s *Store) SystemLogs(limit int) ([]models.Notification, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, message, type, is_read, created_at
		FROM notifications
		WHERE type IN ('warning', 'error')
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("system logs: %w", err)
	}
	defer rows.Close()

	logs := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		logs = append(logs, n)
	}
	return logs, rows.Err()
}

// PendingIssues counts unread warnings and errors from the last 24 hours.
func (s *Store) PendingIssues() (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM notifications
		WHERE type IN ('warning', 'error')
			AND is_read = FALSE
			AND created_at > NOW() - INTERVAL '24 hours'`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("pending issues: %w", err)
	}
	return n, nil
}
