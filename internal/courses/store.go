package courses

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/smart-learn/backend/internal/models"
)

var ErrCourseNotFound = errors.New("course not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const courseColumns = `c.id, c.instructor_id, c.title, c.description, c.category, c.level, c.price, c.thumbnail, c.created_at`

func scanCourse(row interface{ Scan(...interface{}) error }, c *models.Course) error {
	return row.Scan(&c.ID, &c.InstructorID, &c.Title, &c.Description, &c.Category,
		&c.Level, &c.Price, &c.Thumbnail, &c.CreatedAt, &c.StudentsCount)
}

// ── Public catalog ──────────────────────────────────────

func (s *Store) ListCatalog() ([]models.Course, error) {
	rows, err := s.db.Query(`
		SELECT ` + courseColumns + `, COUNT(e.id) AS students_count
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id
		GROUP BY c.id
		ORDER BY students_count DESC, c.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (s *Store) GetCourse(courseID int64) (*models.Course, error) {
	var c models.Course
	err := scanCourse(s.db.QueryRow(`
		SELECT `+courseColumns+`, COUNT(e.id) AS students_count
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id
		WHERE c.id = $1
		GROUP BY c.id`, courseID), &c)
	if err == sql.ErrNoRows {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &c, nil
}

func (s *Store) ListLessons(courseID int64) ([]models.Lesson, error) {
	rows, err := s.db.Query(`
		SELECT id, course_id, title, duration, type, video_url, "order"
		FROM lessons
		WHERE course_id = $1
		ORDER BY "order"`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	lessons := []models.Lesson{}
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Duration, &l.Type, &l.VideoURL, &l.Order); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// ── Instructor CRUD ─────────────────────────────────────

func (s *Store) CreateCourse(instructorID int64, req models.CreateCourseRequest) (*models.Course, error) {
	course := models.Course{
		InstructorID: instructorID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Level:        "Beginner",
	}
	err := s.db.QueryRow(`
		INSERT INTO courses (instructor_id, title, description, category, level, price)
		VALUES ($1, $2, $3, $4, 'Beginner', 0)
		RETURNING id, created_at`,
		instructorID, req.Title, req.Description, req.Category,
	).Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return &course, nil
}

func (s *Store) ListByInstructor(instructorID int64) ([]models.Course, error) {
	rows, err := s.db.Query(`
		SELECT `+courseColumns+`, COUNT(e.id) AS students_count
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id
		WHERE c.instructor_id = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC`, instructorID)
	if err != nil {
		return nil, fmt.Errorf("list instructor courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// UpdateCourse applies the non-nil fields of req to a course, scoped to its
// owning instructor. Returns ErrCourseNotFound when the row does not exist
// or belongs to someone else.
func (s *Store) UpdateCourse(courseID, instructorID int64, req models.UpdateCourseRequest) (*models.Course, error) {
	var c models.Course
	err := s.db.QueryRow(`
		UPDATE courses SET
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			category = COALESCE($5, category),
			price = COALESCE($6, price),
			thumbnail = COALESCE($7, thumbnail),
			level = COALESCE($8, level)
		WHERE id = $1 AND instructor_id = $2
		RETURNING id, instructor_id, title, description, category, level, price, thumbnail, created_at`,
		courseID, instructorID,
		req.Title, req.Description, req.Category, req.Price, req.Thumbnail, req.Level,
	).Scan(&c.ID, &c.InstructorID, &c.Title, &c.Description, &c.Category,
		&c.Level, &c.Price, &c.Thumbnail, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return &c, nil
}

func (s *Store) DeleteCourse(courseID, instructorID int64) error {
	res, err := s.db.Exec(`DELETE FROM courses WHERE id = $1 AND instructor_id = $2`, courseID, instructorID)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if n == 0 {
		return ErrCourseNotFound
	}
	return nil
}

// AddLesson appends a lesson at the end of the course's ordering.
func (s *Store) AddLesson(courseID int64, req models.AddLessonRequest) (*models.Lesson, error) {
	lesson := models.Lesson{
		CourseID: courseID,
		Title:    req.Title,
		Duration: req.Duration,
		Type:     req.Type,
		VideoURL: req.VideoURL,
	}
	err := s.db.QueryRow(`
		INSERT INTO lessons (course_id, title, duration, type, video_url, "order")
		VALUES ($1, $2, $3, $4, $5,
			(SELECT COALESCE(MAX("order"), 0) + 1 FROM lessons WHERE course_id = $1))
		RETURNING id, "order"`,
		courseID, req.Title, req.Duration, req.Type, req.VideoURL,
	).Scan(&lesson.ID, &lesson.Order)
	if err != nil {
		return nil, fmt.Errorf("add lesson: %w", err)
	}
	return &lesson, nil
}

// ── Instructor analytics ────────────────────────────────

type rosterRow struct {
	ID         int64
	Name       string
	Courses    string
	Progress   int
	QuizAvg    int
	LastActive *time.Time
}

// Roster aggregates every student enrolled in the instructor's courses:
// one row per student, with their courses joined into one label and their
// progress and quiz scores averaged across those courses.
func (s *Store) Roster(instructorID int64) ([]rosterRow, error) {
	rows, err := s.db.Query(`
		SELECT u.id, u.name,
			STRING_AGG(DISTINCT c.title, ', ') AS courses,
			COALESCE(ROUND(AVG(e.progress)), 0) AS progress,
			COALESCE((
				SELECT ROUND(AVG(qs.score))
				FROM quiz_scores qs
				JOIN quizzes q ON q.id = qs.quiz_id
				WHERE qs.student_id = u.id
					AND q.course_id IN (SELECT id FROM courses WHERE instructor_id = $1)
			), 0) AS quiz_avg,
			MAX(e.last_accessed) AS last_active
		FROM enrollments e
		JOIN users u ON u.id = e.student_id
		JOIN courses c ON c.id = e.course_id
		WHERE c.instructor_id = $1
		GROUP BY u.id, u.name
		ORDER BY u.name`, instructorID)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	defer rows.Close()

	roster := []rosterRow{}
	for rows.Next() {
		var r rosterRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Courses, &r.Progress, &r.QuizAvg, &r.LastActive); err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		roster = append(roster, r)
	}
	return roster, rows.Err()
}

type instructorTotals struct {
	TotalStudents int
	ActiveCourses int
	AvgCompletion float64
}

func (s *Store) InstructorTotals(instructorID int64) (*instructorTotals, error) {
	var t instructorTotals
	err := s.db.QueryRow(`
		SELECT
			COUNT(DISTINCT e.student_id),
			COUNT(DISTINCT c.id),
			COALESCE(AVG(e.progress), 0)
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id
		WHERE c.instructor_id = $1`, instructorID,
	).Scan(&t.TotalStudents, &t.ActiveCourses, &t.AvgCompletion)
	if err != nil {
		return nil, fmt.Errorf("instructor totals: %w", err)
	}
	return &t, nil
}

type engagementRow struct {
	Day         time.Time
	Views       int
	Completions int
}

// WeeklyEngagement returns the last seven days of activity across the
// instructor's courses, zero-filled so every day is present.
func (s *Store) WeeklyEngagement(instructorID int64) ([]engagementRow, error) {
	rows, err := s.db.Query(`
		WITH days AS (
			SELECT generate_series(
				(NOW() AT TIME ZONE 'UTC')::date - 6,
				(NOW() AT TIME ZONE 'UTC')::date,
				'1 day'
			)::date AS day
		)
		SELECT d.day,
			COALESCE(COUNT(sa.id), 0) AS views,
			COALESCE(COUNT(sa.id) FILTER (WHERE sa.time_spent_minutes >= 30), 0) AS completions
		FROM days d
		LEFT JOIN student_activity sa
			ON sa.date = d.day
			AND sa.course_id IN (SELECT id FROM courses WHERE instructor_id = $1)
		GROUP BY d.day
		ORDER BY d.day`, instructorID)
	if err != nil {
		return nil, fmt.Errorf("weekly engagement: %w", err)
	}
	defer rows.Close()

	series := []engagementRow{}
	for rows.Next() {
		var e engagementRow
		if err := rows.Scan(&e.Day, &e.Views, &e.Completions); err != nil {
			return nil, fmt.Errorf("scan engagement row: %w", err)
		}
		series = append(series, e)
	}
	return series, rows.Err()
}

// TouchEnrollment bumps the student's last-accessed marker for a course.
func (s *Store) TouchEnrollment(studentID, courseID int64) error {
	_, err := s.db.Exec(`
		UPDATE enrollments SET last_accessed = NOW()
		WHERE student_id = $1 AND course_id = $2`, studentID, courseID)
	if err != nil {
		return fmt.Errorf("touch enrollment: %w", err)
	}
	return nil
}
