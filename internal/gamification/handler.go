package gamification

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/smart-learn/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// ── Quiz submission ─────────────────────────────────────

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	outcome, err := h.service.SubmitQuizResult(userID, req)
	if err != nil {
		writeServiceError(w, err, "Failed to submit quiz result")
		return
	}

	writeJSON(w, http.StatusCreated, outcome)
}

// ── Activity ────────────────────────────────────────────

func (h *Handler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.RecordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.RecordActivity(userID, req.Minutes); err != nil {
		writeServiceError(w, err, "Failed to record activity")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Activity recorded"})
}

// ── Progress & badges ───────────────────────────────────

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	series, err := h.service.GetProgressSeries(userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load progress")
		return
	}

	writeJSON(w, http.StatusOK, series)
}

func (h *Handler) ListBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := h.service.ListBadges()
	if err != nil {
		writeServiceError(w, err, "Failed to load badges")
		return
	}

	writeJSON(w, http.StatusOK, badges)
}

func (h *Handler) EarnedBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	awards, err := h.service.EarnedBadges(userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load earned badges")
		return
	}

	writeJSON(w, http.StatusOK, awards)
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.service.GetLeaderboard(limit)
	if err != nil {
		writeServiceError(w, err, "Failed to load leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// ── Helpers ─────────────────────────────────────────────

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrLearnerNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Learner not found"})
	case errors.Is(err, ErrQuizNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz not found"})
	default:
		log.Printf("[gamification] %s: %v", fallback, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: fallback})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
