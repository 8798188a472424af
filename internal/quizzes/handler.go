package quizzes

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/smart-learn/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// ── Instructor side ─────────────────────────────────────

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.CourseID <= 0 || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "courseId and title are required"})
		return
	}
	if req.TotalScore <= 0 {
		req.TotalScore = 100
	}

	owned, err := h.store.CourseOwnedBy(req.CourseID, instructorID)
	if errors.Is(err, ErrCourseNotFound) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Course not found"})
		return
	}
	if err != nil {
		log.Printf("[quizzes] check course owner: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create quiz"})
		return
	}
	if !owned {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "You can only add quizzes to your own courses"})
		return
	}

	quiz, err := h.store.CreateQuiz(req)
	if err != nil {
		log.Printf("[quizzes] create quiz: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create quiz"})
		return
	}

	writeJSON(w, http.StatusCreated, quiz)
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	quizID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid quiz id"})
		return
	}

	var req models.AddQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Text == "" || len(req.Options) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "text and options are required"})
		return
	}

	quiz, err := h.store.GetQuiz(quizID)
	if errors.Is(err, ErrQuizNotFound) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz not found"})
		return
	}
	if err != nil {
		log.Printf("[quizzes] get quiz: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to add question"})
		return
	}

	owned, err := h.store.CourseOwnedBy(quiz.CourseID, instructorID)
	if err != nil {
		log.Printf("[quizzes] check course owner: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to add question"})
		return
	}
	if !owned {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "You can only edit quizzes in your own courses"})
		return
	}

	question, err := h.store.AddQuestion(quizID, req.Text, req.Options, req.CorrectIndex)
	if err != nil {
		log.Printf("[quizzes] add question: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to add question"})
		return
	}

	writeJSON(w, http.StatusCreated, question)
}

// ── Student side ────────────────────────────────────────

func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	studentID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	quizzes, err := h.store.ListAvailable(studentID)
	if err != nil {
		log.Printf("[quizzes] list available: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load quizzes"})
		return
	}

	writeJSON(w, http.StatusOK, quizzes)
}

func (h *Handler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(mux.Vars(r)["courseId"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid course id"})
		return
	}

	quizzes, err := h.store.ListByCourse(courseID)
	if err != nil {
		log.Printf("[quizzes] list by course: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load quizzes"})
		return
	}

	writeJSON(w, http.StatusOK, quizzes)
}

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid quiz id"})
		return
	}

	if _, err := h.store.GetQuiz(quizID); err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz not found"})
			return
		}
		log.Printf("[quizzes] get quiz: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load questions"})
		return
	}

	questions, err := h.store.ListQuestions(quizID)
	if err != nil {
		log.Printf("[quizzes] list questions: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load questions"})
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
