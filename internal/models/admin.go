package models

import "time"

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type ToggleStatusRequest struct {
	UserID int64 `json:"userId"`
}

type UpdateRoleRequest struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// AdminCourse is a course row with instructor name and enrollment count,
// as listed in the admin console.
type AdminCourse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	InstructorName string    `json:"instructor_name"`
	StudentsCount  int       `json:"students_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type CourseStudent struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Avatar       *string    `json:"avatar,omitempty"`
	Progress     int        `json:"progress"`
	EnrolledAt   time.Time  `json:"enrolled_at"`
	LastAccessed *time.Time `json:"last_accessed,omitempty"`
}

type UserGrowthPoint struct {
	Month string `json:"month"`
	Users int    `json:"users"`
}

type CourseDistributionEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type AdminStatsResponse struct {
	TotalUsers         int                       `json:"totalUsers"`
	ActiveCourses      int                       `json:"activeCourses"`
	CompletionRate     int                       `json:"completionRate"`
	DropoutRate        int                       `json:"dropoutRate"`
	MonthlyGrowth      int                       `json:"monthlyGrowth"`
	UserGrowth         []UserGrowthPoint         `json:"userGrowth"`
	CourseDistribution []CourseDistributionEntry `json:"courseDistribution"`
}

type ActivityReportEntry struct {
	ID               int64     `json:"id"`
	User             string    `json:"user"`
	Course           string    `json:"course"`
	Date             time.Time `json:"date"`
	TimeSpentMinutes int       `json:"time_spent_minutes"`
}

type SystemReportsResponse struct {
	RecentActivity []ActivityReportEntry `json:"recentActivity"`
	SystemLogs     []Notification        `json:"systemLogs"`
	PendingIssues  int                   `json:"pendingIssues"`
}
