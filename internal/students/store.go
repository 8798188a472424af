package students

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/smart-learn/backend/internal/models"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrCourseNotFound  = errors.New("course not found")
	ErrAlreadyEnrolled = errors.New("already enrolled")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Enrollment ──────────────────────────────────────────

func (s *Store) Enroll(studentID, courseID int64) error {
	var exists bool
	if err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, courseID).Scan(&exists); err != nil {
		return fmt.Errorf("check course: %w", err)
	}
	if !exists {
		return ErrCourseNotFound
	}

	_, err := s.db.Exec(`
		INSERT INTO enrollments (student_id, course_id, progress)
		VALUES ($1, $2, 0)`, studentID, courseID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyEnrolled
		}
		return fmt.Errorf("enroll: %w", err)
	}
	return nil
}

// EnrolledCourses lists the student's courses with enrollment progress,
// optionally filtered by a title search term.
func (s *Store) EnrolledCourses(studentID int64, search string) ([]models.EnrolledCourse, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.instructor_id, c.title, c.description, c.category, c.level,
			c.price, c.thumbnail, c.created_at,
			(SELECT COUNT(*) FROM enrollments WHERE course_id = c.id) AS students_count,
			e.progress
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = $1
			AND ($2 = '' OR c.title ILIKE '%' || $2 || '%')
		ORDER BY e.last_accessed DESC NULLS LAST, e.enrolled_at DESC`,
		studentID, search)
	if err != nil {
		return nil, fmt.Errorf("list enrolled courses: %w", err)
	}
	defer rows.Close()

	courses := []models.EnrolledCourse{}
	for rows.Next() {
		var c models.EnrolledCourse
		if err := rows.Scan(&c.ID, &c.InstructorID, &c.Title, &c.Description, &c.Category,
			&c.Level, &c.Price, &c.Thumbnail, &c.CreatedAt, &c.StudentsCount, &c.Progress); err != nil {
			return nil, fmt.Errorf("scan enrolled course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Recommendations returns the most popular courses the student is not
// enrolled in yet, optionally filtered by a title or description search term.
func (s *Store) Recommendations(studentID int64, search string, limit int) ([]models.Course, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.instructor_id, c.title, c.description, c.category, c.level,
			c.price, c.thumbnail, c.created_at,
			COUNT(e.id) AS students_count
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id
		WHERE c.id NOT IN (SELECT course_id FROM enrollments WHERE student_id = $1)
			AND ($2 = '' OR c.title ILIKE '%' || $2 || '%' OR c.description ILIKE '%' || $2 || '%')
		GROUP BY c.id
		ORDER BY students_count DESC, c.created_at DESC
		LIMIT $3`, studentID, search, limit)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.InstructorID, &c.Title, &c.Description, &c.Category,
			&c.Level, &c.Price, &c.Thumbnail, &c.CreatedAt, &c.StudentsCount); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (s *Store) UpdateProgress(studentID, courseID int64, progress int) error {
	res, err := s.db.Exec(`
		UPDATE enrollments SET progress = $3, last_accessed = NOW()
		WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID, progress)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	if n == 0 {
		return ErrCourseNotFound
	}
	return nil
}

// ── Profile ─────────────────────────────────────────────

func (s *Store) GetProfile(studentID int64) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRow(`
		SELECT name, email, avatar, xp, streak, level, created_at
		FROM users WHERE id = $1`, studentID,
	).Scan(&p.Name, &p.Email, &p.Avatar, &p.XP, &p.Streak, &p.Level, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (s *Store) UpdateProfile(studentID int64, req models.UpdateProfileRequest) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRow(`
		UPDATE users SET
			name = COALESCE($2, name),
			avatar = COALESCE($3, avatar)
		WHERE id = $1
		RETURNING name, email, avatar, xp, streak, level, created_at`,
		studentID, req.Name, req.Avatar,
	).Scan(&p.Name, &p.Email, &p.Avatar, &p.XP, &p.Streak, &p.Level, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &p, nil
}

// ── Dashboard counters ──────────────────────────────────

type dashboardCounters struct {
	Courses     int
	QuizzesDone int
	AvgScore    float64
	XP          int64
	Streak      int
	Level       int
}

func (s *Store) DashboardCounters(studentID int64) (*dashboardCounters, error) {
	var c dashboardCounters
	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM enrollments WHERE student_id = u.id),
			(SELECT COUNT(*) FROM quiz_scores WHERE student_id = u.id),
			COALESCE((SELECT AVG(score) FROM quiz_scores WHERE student_id = u.id), 0),
			u.xp, u.streak, u.level
		FROM users u WHERE u.id = $1`, studentID,
	).Scan(&c.Courses, &c.QuizzesDone, &c.AvgScore, &c.XP, &c.Streak, &c.Level)
	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("dashboard counters: %w", err)
	}
	return &c, nil
}
