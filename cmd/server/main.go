package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/smart-learn/backend/internal/admin"
	"github.com/smart-learn/backend/internal/auth"
	"github.com/smart-learn/backend/internal/config"
	"github.com/smart-learn/backend/internal/courses"
	"github.com/smart-learn/backend/internal/database"
	"github.com/smart-learn/backend/internal/gamification"
	"github.com/smart-learn/backend/internal/middleware"
	"github.com/smart-learn/backend/internal/models"
	"github.com/smart-learn/backend/internal/notifications"
	"github.com/smart-learn/backend/internal/predictor"
	"github.com/smart-learn/backend/internal/quizzes"
	"github.com/smart-learn/backend/internal/students"
	"github.com/smart-learn/backend/internal/studyplan"
)

func main() {
	cfg := config.Load()
	auth.JWTSecret = []byte(cfg.JWTSecret)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Wiring
	authHandler := auth.NewHandler(db)

	notificationStore := notifications.NewStore(db)
	notificationHandler := notifications.NewHandler(notificationStore)

	gamificationStore := gamification.NewStore(db)
	gamificationService := gamification.NewService(gamificationStore, predictor.NewClient(cfg.MLServiceURL))
	gamificationHandler := gamification.NewHandler(gamificationService)

	quizStore := quizzes.NewStore(db)
	quizHandler := quizzes.NewHandler(quizStore)

	courseStore := courses.NewStore(db)
	courseService := courses.NewService(courseStore)
	courseHandler := courses.NewHandler(courseStore, courseService)

	studentStore := students.NewStore(db)
	studentHandler := students.NewHandler(studentStore, gamificationService)

	studyPlanHandler := studyplan.NewHandler(studyplan.NewStore(db))

	adminHandler := admin.NewHandler(admin.NewStore(db), notificationStore)

	// Routes
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/courses", courseHandler.ListCatalog).Methods("GET")
	api.HandleFunc("/courses/{id:[0-9]+}", courseHandler.GetCourse).Methods("GET")

	// Authenticated
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/courses/{id:[0-9]+}/lessons", courseHandler.ListLessons).Methods("GET")
	protected.HandleFunc("/notifications", notificationHandler.List).Methods("GET")
	protected.HandleFunc("/notifications/{id:[0-9]+}/read", notificationHandler.MarkRead).Methods("PUT")
	protected.HandleFunc("/notifications/read-all", notificationHandler.MarkAllRead).Methods("PUT")
	protected.HandleFunc("/gamification/badges", gamificationHandler.ListBadges).Methods("GET")
	protected.HandleFunc("/gamification/leaderboard", gamificationHandler.Leaderboard).Methods("GET")

	// Student
	student := protected.PathPrefix("/student").Subrouter()
	student.Use(middleware.RequireRole(models.RoleStudent))
	student.HandleFunc("/courses", studentHandler.MyCourses).Methods("GET")
	student.HandleFunc("/courses/enroll", studentHandler.Enroll).Methods("POST")
	student.HandleFunc("/courses/{courseId:[0-9]+}/progress", studentHandler.UpdateProgress).Methods("PUT")
	student.HandleFunc("/recommendations", studentHandler.Recommendations).Methods("GET")
	student.HandleFunc("/profile", studentHandler.GetProfile).Methods("GET")
	student.HandleFunc("/profile", studentHandler.UpdateProfile).Methods("PUT")
	student.HandleFunc("/stats", studentHandler.GetStats).Methods("GET")
	student.HandleFunc("/activity", gamificationHandler.RecordActivity).Methods("POST")
	student.HandleFunc("/progress", gamificationHandler.GetProgress).Methods("GET")
	student.HandleFunc("/badges", gamificationHandler.EarnedBadges).Methods("GET")

	// Quizzes
	quiz := protected.PathPrefix("/quiz").Subrouter()
	quiz.HandleFunc("/available", quizHandler.ListAvailable).Methods("GET")
	quiz.HandleFunc("/course/{courseId:[0-9]+}", quizHandler.ListByCourse).Methods("GET")
	quiz.HandleFunc("/{id:[0-9]+}/questions", quizHandler.GetQuestions).Methods("GET")
	quiz.HandleFunc("/submit", gamificationHandler.SubmitQuiz).Methods("POST")

	// Instructor
	instructor := protected.PathPrefix("/instructor").Subrouter()
	instructor.Use(middleware.RequireRole(models.RoleInstructor))
	instructor.HandleFunc("/courses", courseHandler.ListMine).Methods("GET")
	instructor.HandleFunc("/courses", courseHandler.CreateCourse).Methods("POST")
	instructor.HandleFunc("/courses/{id:[0-9]+}", courseHandler.UpdateCourse).Methods("PUT")
	instructor.HandleFunc("/courses/{id:[0-9]+}", courseHandler.DeleteCourse).Methods("DELETE")
	instructor.HandleFunc("/courses/{id:[0-9]+}/lessons", courseHandler.AddLesson).Methods("POST")
	instructor.HandleFunc("/quizzes", quizHandler.CreateQuiz).Methods("POST")
	instructor.HandleFunc("/quizzes/{id:[0-9]+}/questions", quizHandler.AddQuestion).Methods("POST")
	instructor.HandleFunc("/students", courseHandler.GetRoster).Methods("GET")
	instructor.HandleFunc("/stats", courseHandler.GetStats).Methods("GET")

	// Admin
	adminRoutes := protected.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.RequireRole(models.RoleAdmin))
	adminRoutes.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	adminRoutes.HandleFunc("/users", adminHandler.CreateUser).Methods("POST")
	adminRoutes.HandleFunc("/users/toggle-status", adminHandler.ToggleStatus).Methods("PUT")
	adminRoutes.HandleFunc("/users/role", adminHandler.UpdateRole).Methods("PUT")
	adminRoutes.HandleFunc("/courses", adminHandler.ListCourses).Methods("GET")
	adminRoutes.HandleFunc("/courses/{id:[0-9]+}", adminHandler.DeleteCourse).Methods("DELETE")
	adminRoutes.HandleFunc("/courses/{id:[0-9]+}/students", adminHandler.CourseStudents).Methods("GET")
	adminRoutes.HandleFunc("/stats", adminHandler.GetStats).Methods("GET")
	adminRoutes.HandleFunc("/reports", adminHandler.GetReports).Methods("GET")
	adminRoutes.HandleFunc("/announcements", notificationHandler.Broadcast).Methods("POST")

	// Study plan
	plan := protected.PathPrefix("/study-plan").Subrouter()
	plan.Use(middleware.RequireRole(models.RoleStudent))
	plan.HandleFunc("", studyPlanHandler.List).Methods("GET")
	plan.HandleFunc("", studyPlanHandler.Create).Methods("POST")
	plan.HandleFunc("/{id:[0-9]+}/toggle", studyPlanHandler.Toggle).Methods("PUT")
	plan.HandleFunc("/{id:[0-9]+}", studyPlanHandler.Delete).Methods("DELETE")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, c.Handler(r)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
