package quizzes

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/smart-learn/backend/internal/models"
)

var (
	ErrQuizNotFound   = errors.New("quiz not found")
	ErrCourseNotFound = errors.New("course not found")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CourseOwnedBy reports whether the course exists and belongs to the given
// instructor.
func (s *Store) CourseOwnedBy(courseID, instructorID int64) (bool, error) {
	var owner int64
	err := s.db.QueryRow(`SELECT instructor_id FROM courses WHERE id = $1`, courseID).Scan(&owner)
	if err == sql.ErrNoRows {
		return false, ErrCourseNotFound
	}
	if err != nil {
		return false, fmt.Errorf("look up course owner: %w", err)
	}
	return owner == instructorID, nil
}

func (s *Store) CreateQuiz(req models.CreateQuizRequest) (*models.Quiz, error) {
	quiz := models.Quiz{
		CourseID:   req.CourseID,
		Title:      req.Title,
		TotalScore: req.TotalScore,
	}
	err := s.db.QueryRow(`
		INSERT INTO quizzes (course_id, title, total_score)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		req.CourseID, req.Title, req.TotalScore,
	).Scan(&quiz.ID, &quiz.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return &quiz, nil
}

func (s *Store) ListByCourse(courseID int64) ([]models.Quiz, error) {
	rows, err := s.db.Query(`
		SELECT id, course_id, title, total_score, created_at
		FROM quizzes
		WHERE course_id = $1
		ORDER BY created_at DESC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := []models.Quiz{}
	for rows.Next() {
		var q models.Quiz
		if err := rows.Scan(&q.ID, &q.CourseID, &q.Title, &q.TotalScore, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// ListAvailable returns the quizzes in courses the student is enrolled in.
func (s *Store) ListAvailable(studentID int64) ([]models.AvailableQuiz, error) {
	rows, err := s.db.Query(`
		SELECT q.id, q.course_id, q.title, q.total_score, q.created_at, c.title
		FROM quizzes q
		JOIN courses c ON c.id = q.course_id
		JOIN enrollments e ON e.course_id = q.course_id
		WHERE e.student_id = $1
		ORDER BY q.created_at DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list available quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := []models.AvailableQuiz{}
	for rows.Next() {
		var q models.AvailableQuiz
		if err := rows.Scan(&q.ID, &q.CourseID, &q.Title, &q.TotalScore, &q.CreatedAt, &q.CourseTitle); err != nil {
			return nil, fmt.Errorf("scan available quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

func (s *Store) GetQuiz(quizID int64) (*models.Quiz, error) {
	var q models.Quiz
	err := s.db.QueryRow(`
		SELECT id, course_id, title, total_score, created_at
		FROM quizzes WHERE id = $1`, quizID,
	).Scan(&q.ID, &q.CourseID, &q.Title, &q.TotalScore, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return &q, nil
}

func (s *Store) AddQuestion(quizID int64, text string, options []byte, correctIndex int) (*models.Question, error) {
	question := models.Question{
		QuizID:       quizID,
		Text:         text,
		Options:      options,
		CorrectIndex: correctIndex,
	}
	err := s.db.QueryRow(`
		INSERT INTO questions (quiz_id, text, options, correct_index)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		quizID, text, options, correctIndex,
	).Scan(&question.ID)
	if err != nil {
		return nil, fmt.Errorf("add question: %w", err)
	}
	return &question, nil
}

func (s *Store) ListQuestions(quizID int64) ([]models.Question, error) {
	rows, err := s.db.Query(`
		SELECT id, quiz_id, text, options, correct_index
		FROM questions
		WHERE quiz_id = $1
		ORDER BY id`, quizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.Options, &q.CorrectIndex); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
