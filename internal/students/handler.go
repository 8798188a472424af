package students

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/smart-learn/backend/internal/gamification"
	"github.com/smart-learn/backend/internal/models"
)

const recommendationLimit = 5

type Handler struct {
	store        *Store
	gamification *gamification.Service
}

func NewHandler(store *Store, gamification *gamification.Service) *Handler {
	return &Handler{store: store, gamification: gamification}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// ── Enrollment ──────────────────────────────────────────

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	studentID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.CourseID <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "courseId is required"})
		return
	}

	switch err := h.store.Enroll(studentID, req.CourseID); {
	case errors.Is(err, ErrAlreadyEnrolled):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Already enrolled"})
	case errors.Is(err, ErrCourseNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Course not found"})
	case err != nil:
		log.Printf("[students] enroll: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to enroll"})
	default:
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Enrolled successfully"})
	}
}

func (h *Handler) MyCourses(w http.ResponseWriter, r *http.Request) {
	studentID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	courses, err := h.store.EnrolledCourses(studentID, r.URL.Query().Get("search"))
	if err != nil {
		log.Printf("[students] list courses: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load courses"})
		return
	}

	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	studentID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	courses, err := h.store.Recommendations(studentID, r.URL.Query().Get("search"), recommendationLimit)
	if err != nil {
		log.Printf("[students] recommendations: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load recommendations"})
		return
	}

	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	studentID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	courseID, err := strconv.ParseInt(mux.Vars(r)["courseId"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid course id"})
		return
	}

	var req struct {
		Progress int `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Progress < 0 || req.Progress > 100 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Progress must be between 0 and 100"})
		return
	}

	if err := h.store.UpdateProgress(studentID, courseID, req.Progress); err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Enrollment not found"})
			return
		}
		log.Printf("[students] update progress: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update progress"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Progress updated"})
}

// ── Profile ─────────────────────────────────────────────

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	studentID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	profile, err := h.store.GetProfile(studentID)
	if err != nil {
		if errors.Is(err, ErrStudentNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Student not found"})
			return
		}
		log.Printf("[students] get profile: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load profile"})
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	studentID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Name != nil && *req.Name == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Name cannot be empty"})
		return
	}

	profile, err := h.store.UpdateProfile(studentID, req)
	if err != nil {
		if errors.Is(err, ErrStudentNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Student not found"})
			return
		}
		log.Printf("[students] update profile: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update profile"})
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// ── Dashboard ───────────────────────────────────────────

// GetStats assembles the student dashboard: enrollment and quiz counters
// plus the progress charts and earned badges from the gamification engine.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	studentID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	counters, err := h.store.DashboardCounters(studentID)
	if err != nil {
		if errors.Is(err, ErrStudentNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Student not found"})
			return
		}
		log.Printf("[students] dashboard counters: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load stats"})
		return
	}

	series, err := h.gamification.GetProgressSeries(studentID)
	if err != nil {
		log.Printf("[students] progress series: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load stats"})
		return
	}

	badges, err := h.gamification.EarnedBadges(studentID)
	if err != nil {
		log.Printf("[students] earned badges: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load stats"})
		return
	}

	writeJSON(w, http.StatusOK, models.StudentStatsResponse{
		Courses:     counters.Courses,
		QuizzesDone: counters.QuizzesDone,
		AvgScore:    counters.AvgScore,
		XP:          counters.XP,
		Streak:      counters.Streak,
		Level:       counters.Level,
		QuizTrend:   series.QuizTrend,
		StudyHours:  series.StudyHours,
		Badges:      badges,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
