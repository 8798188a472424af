package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/smart-learn/backend/internal/models"
	"github.com/smart-learn/backend/internal/notifications"
)

// defaultPassword is assigned to admin-created accounts; users are told to
// change it on first login.
const defaultPassword = "123456"

const growthWindowMonths = 6

type Handler struct {
	store    *Store
	notifier *notifications.Store
}

func NewHandler(store *Store, notifier *notifications.Store) *Handler {
	return &Handler{store: store, notifier: notifier}
}

// ── User management ─────────────────────────────────────

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers()
	if err != nil {
		log.Printf("[admin] list users: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load users"})
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Name and email are required"})
		return
	}
	if req.Role != models.RoleStudent && req.Role != models.RoleInstructor {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Role must be student or instructor"})
		return
	}
	if req.Password == "" {
		req.Password = defaultPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[admin] hash password: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create user"})
		return
	}

	user, err := h.store.CreateUser(req.Name, req.Email, string(hash), req.Role)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "An account with this email already exists"})
			return
		}
		log.Printf("[admin] create user: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create user"})
		return
	}

	if err := h.notifier.Create(user.ID, "Welcome to Smart Learn",
		"Your account has been created by an administrator. Please change your password after your first login.",
		"info"); err != nil {
		log.Printf("[admin] welcome notification: %v", err)
	}
	if user.Role == models.RoleInstructor {
		h.notifyInstructors(fmt.Sprintf("%s joined as an instructor", user.Name))
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) notifyInstructors(message string) {
	ids, err := h.store.InstructorIDs()
	if err != nil {
		log.Printf("[admin] list instructors: %v", err)
		return
	}
	for _, id := range ids {
		if err := h.notifier.Create(id, "Instructor update", message, "info"); err != nil {
			log.Printf("[admin] instructor notification: %v", err)
		}
	}
}

func (h *Handler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	var req models.ToggleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.UserID <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "userId is required"})
		return
	}

	status, err := h.store.ToggleStatus(req.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
			return
		}
		log.Printf("[admin] toggle status: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update user"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.UserID <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "userId is required"})
		return
	}
	switch req.Role {
	case models.RoleStudent, models.RoleInstructor, models.RoleAdmin:
	default:
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Role must be student, instructor or admin"})
		return
	}

	if err := h.store.UpdateRole(req.UserID, req.Role); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
			return
		}
		log.Printf("[admin] update role: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update role"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Role updated"})
}

// ── Course management ───────────────────────────────────

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.store.ListCourses()
	if err != nil {
		log.Printf("[admin] list courses: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load courses"})
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) CourseStudents(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid course id"})
		return
	}

	students, err := h.store.CourseStudents(courseID)
	if err != nil {
		log.Printf("[admin] course students: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load students"})
		return
	}
	writeJSON(w, http.StatusOK, students)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid course id"})
		return
	}

	deleted, err := h.store.DeleteCourse(courseID)
	if err != nil {
		log.Printf("[admin] delete course: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete course"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Course not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Course deleted"})
}

// ── Analytics & reports ─────────────────────────────────

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	totals, err := h.store.PlatformTotals()
	if err != nil {
		log.Printf("[admin] platform totals: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load stats"})
		return
	}

	signups, err := h.store.MonthlySignups(growthWindowMonths)
	if err != nil {
		log.Printf("[admin] monthly signups: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load stats"})
		return
	}

	titles, err := h.store.CourseTitles()
	if err != nil {
		log.Printf("[admin] course titles: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load stats"})
		return
	}

	monthlyGrowth := 0
	if n := len(signups); n >= 2 {
		monthlyGrowth = GrowthPercent(signups[n-2].Count, signups[n-1].Count)
	}

	writeJSON(w, http.StatusOK, models.AdminStatsResponse{
		TotalUsers:         totals.TotalUsers,
		ActiveCourses:      totals.ActiveCourses,
		CompletionRate:     int(totals.CompletionRate + 0.5),
		DropoutRate:        int(totals.DropoutRate + 0.5),
		MonthlyGrowth:      monthlyGrowth,
		UserGrowth:         CumulativeGrowth(signups),
		CourseDistribution: BuildDistribution(titles),
	})
}

func (h *Handler) GetReports(w http.ResponseWriter, r *http.Request) {
	activity, err := h.store.RecentActivity(20)
	if err != nil {
		log.Printf("[admin] recent activity: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load reports"})
		return
	}

	logs, err := h.store.SystemLogs(20)
	if err != nil {
		log.Printf("[admin] system logs: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load reports"})
		return
	}

	pending, err := h.store.PendingIssues()
	if err != nil {
		log.Printf("[admin] pending issues: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load reports"})
		return
	}

	writeJSON(w, http.StatusOK, models.SystemReportsResponse{
		RecentActivity: activity,
		SystemLogs:     logs,
		PendingIssues:  pending,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
