package models

import (
	"encoding/json"
	"time"
)

type Quiz struct {
	ID         int64     `json:"id"`
	CourseID   int64     `json:"course_id"`
	Title      string    `json:"title"`
	TotalScore int       `json:"total_score"`
	CreatedAt  time.Time `json:"created_at"`
}

// AvailableQuiz is a quiz joined with the title of its course, listed for
// students enrolled in that course.
type AvailableQuiz struct {
	Quiz
	CourseTitle string `json:"course_title"`
}

type Question struct {
	ID           int64           `json:"id"`
	QuizID       int64           `json:"quiz_id"`
	Text         string          `json:"text"`
	Options      json.RawMessage `json:"options"`
	CorrectIndex int             `json:"correct_index"`
}

type CreateQuizRequest struct {
	CourseID   int64  `json:"courseId"`
	Title      string `json:"title"`
	TotalScore int    `json:"totalScore"`
}

type AddQuestionRequest struct {
	Text         string          `json:"text"`
	Options      json.RawMessage `json:"options"`
	CorrectIndex int             `json:"correctIndex"`
}
