package gamification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func authedRequest(method, path, body string) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	return r.WithContext(context.WithValue(r.Context(), "user_id", int64(1)))
}

func TestRecordActivityHandler_DecodesMinutes(t *testing.T) {
	h := NewHandler(NewService(nil, nil))

	// Non-positive minutes must be rejected at validation, before any
	// storage access; a decode failure would surface as a 500 instead.
	for _, body := range []string{`{"minutes": 0}`, `{"minutes": -5}`} {
		w := httptest.NewRecorder()
		h.RecordActivity(w, authedRequest("POST", "/api/student/activity", body))
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d (%s)", body, w.Code, w.Body.String())
		}
	}
}

func TestRecordActivityHandler_RequiresAuth(t *testing.T) {
	h := NewHandler(NewService(nil, nil))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/student/activity", strings.NewReader(`{"minutes": 30}`))
	h.RecordActivity(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without identity, got %d", w.Code)
	}
}

func TestSubmitQuizHandler_RejectsOutOfRangeScore(t *testing.T) {
	h := NewHandler(NewService(nil, nil))

	w := httptest.NewRecorder()
	h.SubmitQuiz(w, authedRequest("POST", "/api/quiz/submit", `{"quizId": 1, "score": 120}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range score, got %d (%s)", w.Code, w.Body.String())
	}
}
