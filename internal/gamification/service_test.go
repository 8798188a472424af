package gamification

import (
	"errors"
	"testing"

	"github.com/smart-learn/backend/internal/models"
)

func TestSubmitQuizResult_RejectsInvalidInput(t *testing.T) {
	svc := NewService(nil, nil)

	cases := []struct {
		name string
		req  models.SubmitQuizRequest
	}{
		{"score below range", models.SubmitQuizRequest{QuizID: 1, Score: -1}},
		{"score above range", models.SubmitQuizRequest{QuizID: 1, Score: 100.5}},
		{"missing quiz id", models.SubmitQuizRequest{Score: 80}},
		{"malformed submission key", models.SubmitQuizRequest{QuizID: 1, Score: 80, SubmissionKey: "not-a-uuid"}},
	}
	for _, c := range cases {
		_, err := svc.SubmitQuizResult(42, c.req)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", c.name, err)
		}
	}
}

func TestRecordActivity_RejectsNonPositiveMinutes(t *testing.T) {
	svc := NewService(nil, nil)

	for _, minutes := range []int{0, -5} {
		err := svc.RecordActivity(1, minutes)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("RecordActivity(1, %d): expected ErrInvalidInput, got %v", minutes, err)
		}
	}
}
