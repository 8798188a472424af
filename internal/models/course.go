package models

import "time"

type Course struct {
	ID            int64     `json:"id"`
	InstructorID  int64     `json:"instructor_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Level         string    `json:"level"`
	Price         float64   `json:"price"`
	Thumbnail     *string   `json:"thumbnail,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	StudentsCount int       `json:"students_count"`
}

type Lesson struct {
	ID       int64   `json:"id"`
	CourseID int64   `json:"course_id"`
	Title    string  `json:"title"`
	Duration *string `json:"duration,omitempty"`
	Type     string  `json:"type"`
	VideoURL *string `json:"video_url,omitempty"`
	Order    int     `json:"order"`
}

type CreateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type UpdateCourseRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Thumbnail   *string  `json:"thumbnail"`
	Level       *string  `json:"level"`
}

type AddLessonRequest struct {
	Title    string  `json:"title"`
	Duration *string `json:"duration"`
	Type     string  `json:"type"`
	VideoURL *string `json:"video_url"`
}

// EnrolledCourse is a course joined with the student's enrollment progress.
type EnrolledCourse struct {
	Course
	Progress int `json:"progress"`
}

type EnrollRequest struct {
	CourseID int64 `json:"courseId"`
}

// ── Instructor analytics ─────────────────────────────────

// Risk levels assigned to enrolled students by the dropout classifier.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

type InstructorStudent struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Courses    string     `json:"course"`
	Progress   int        `json:"progress"`
	QuizAvg    int        `json:"quizAvg"`
	Risk       string     `json:"risk"`
	LastActive *time.Time `json:"lastActive,omitempty"`
}

type EngagementPoint struct {
	Day         string `json:"day"`
	Views       int    `json:"views"`
	Completions int    `json:"completions"`
}

type InstructorStatsResponse struct {
	TotalStudents  int               `json:"totalStudents"`
	ActiveCourses  int               `json:"activeCourses"`
	AtRisk         int               `json:"atRisk"`
	AvgCompletion  string            `json:"avgCompletion"`
	EngagementData []EngagementPoint `json:"engagementData"`
}
