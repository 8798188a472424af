package studyplan

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/smart-learn/backend/internal/models"
)

var ErrTaskNotFound = errors.New("task not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListByDate(studentID int64, date time.Time) ([]models.StudyTask, error) {
	rows, err := s.db.Query(`
		SELECT id, student_id, title, time, category, completed, date
		FROM study_plans
		WHERE student_id = $1 AND date = $2
		ORDER BY id`, studentID, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.StudyTask{}
	for rows.Next() {
		var t models.StudyTask
		var d time.Time
		if err := rows.Scan(&t.ID, &t.StudentID, &t.Title, &t.Time, &t.Category, &t.Completed, &d); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Date = d.Format("2006-01-02")
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) Create(studentID int64, req models.CreateTaskRequest) (*models.StudyTask, error) {
	task := models.StudyTask{
		StudentID: studentID,
		Title:     req.Title,
		Time:      req.Time,
		Category:  req.Category,
		Date:      req.Date,
	}
	var d time.Time
	err := s.db.QueryRow(`
		INSERT INTO study_plans (student_id, title, time, category, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date`,
		studentID, req.Title, req.Time, req.Category, req.Date,
	).Scan(&task.ID, &d)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	task.Date = d.Format("2006-01-02")
	return &task, nil
}

// Toggle flips a task's completed flag, scoped to its owner.
func (s *Store) Toggle(studentID, taskID int64) (*models.StudyTask, error) {
	var t models.StudyTask
	var d time.Time
	err := s.db.QueryRow(`
		UPDATE study_plans SET completed = NOT completed
		WHERE id = $1 AND student_id = $2
		RETURNING id, student_id, title, time, category, completed, date`,
		taskID, studentID,
	).Scan(&t.ID, &t.StudentID, &t.Title, &t.Time, &t.Category, &t.Completed, &d)
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	t.Date = d.Format("2006-01-02")
	return &t, nil
}

func (s *Store) Delete(studentID, taskID int64) error {
	res, err := s.db.Exec(`DELETE FROM study_plans WHERE id = $1 AND student_id = $2`, taskID, studentID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}
