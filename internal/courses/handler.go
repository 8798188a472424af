package courses

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
	store   *Store
	service *Service
}

func NewHandler(store *Store, service *Service) *Handler {
	return &Handler{store: store, service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// ── Public catalog ──────────────────────────────────────

func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	courses, err := h.store.ListCatalog()
	if err != nil {
		log.Printf("[courses] list catalog: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load courses"})
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid course id"})
		return
	}

	course, err := h.store.GetCourse(courseID)
	if errors.Is(err, ErrCourseNotFound) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Course not found"})
		return
	}
	if err != nil {
		log.Printf("[courses] get course: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load course"})
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (h *Handler) ListLessons(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid course id"})
		return
	}

	if _, err := h.store.GetCourse(courseID); err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Course not found"})
			return
		}
		log.Printf("[courses] get course: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load lessons"})
		return
	}

	lessons, err := h.store.ListLessons(courseID)
	if err != nil {
		log.Printf("[courses] list lessons: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load lessons"})
		return
	}

	// Viewing lessons counts as touching the course.
	if userID, ok := getUserID(r); ok {
		if err := h.store.TouchEnrollment(userID, courseID); err != nil {
			log.Printf("[courses] touch enrollment: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, lessons)
}

// ── Instructor CRUD ─────────────────────────────────────

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Title is required"})
		return
	}
	if req.Category == "" {
		req.Category = "General"
	}

	course, err := h.store.CreateCourse(instructorID, req)
	if err != nil {
		log.Printf("[courses] create course: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create course"})
		return
	}

	writeJSON(w, http.StatusCreated, course)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	courses, err := h.store.ListByInstructor(instructorID)
	if err != nil {
		log.Printf("[courses] list instructor courses: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load courses"})
		return
	}

	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	courseID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid course id"})
		return
	}

	var req models.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	course, err := h.store.UpdateCourse(courseID, instructorID, req)
	if errors.Is(err, ErrCourseNotFound) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Course not found"})
		return
	}
	if err != nil {
		log.Printf("[courses] update course: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update course"})
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	courseID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid course id"})
		return
	}

	if err := h.store.DeleteCourse(courseID, instructorID); err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Course not found"})
			return
		}
		log.Printf("[courses] delete course: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete course"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Course deleted"})
}

func (h *Handler) AddLesson(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	courseID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid course id"})
		return
	}

	course, err := h.store.GetCourse(courseID)
	if errors.Is(err, ErrCourseNotFound) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Course not found"})
		return
	}
	if err != nil {
		log.Printf("[courses] get course: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to add lesson"})
		return
	}
	if course.InstructorID != instructorID {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "You can only add lessons to your own courses"})
		return
	}

	var req models.AddLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Title is required"})
		return
	}
	if req.Type == "" {
		req.Type = "video"
	}

	lesson, err := h.store.AddLesson(courseID, req)
	if err != nil {
		log.Printf("[courses] add lesson: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to add lesson"})
		return
	}

	writeJSON(w, http.StatusCreated, lesson)
}

// ── Instructor analytics ────────────────────────────────

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	students, err := h.service.RosterWithRisk(instructorID)
	if err != nil {
		log.Printf("[courses] load roster: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load students"})
		return
	}

	writeJSON(w, http.StatusOK, students)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	stats, err := h.service.InstructorStats(instructorID)
	if err != nil {
		log.Printf("[courses] instructor stats: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load stats"})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
