package students

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRecommendations_AppliesSearchFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	defer db.Close()
	store := NewStore(db)

	rows := sqlmock.NewRows([]string{
		"id", "instructor_id", "title", "description", "category", "level",
		"price", "thumbnail", "created_at", "students_count",
	}).AddRow(int64(3), int64(2), "SQL for Analysts", "Queries from scratch",
		"Data Science", "Beginner", 49.99, nil, time.Now(), 12)

	mock.ExpectQuery("ILIKE").
		WithArgs(int64(7), "sql", recommendationLimit).
		WillReturnRows(rows)

	courses, err := store.Recommendations(7, "sql", recommendationLimit)
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}
	if len(courses) != 1 || courses[0].Title != "SQL for Analysts" {
		t.Errorf("unexpected result %+v", courses)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecommendations_EmptySearchPassesThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	defer db.Close()
	store := NewStore(db)

	mock.ExpectQuery("NOT IN").
		WithArgs(int64(7), "", recommendationLimit).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "instructor_id", "title", "description", "category", "level",
			"price", "thumbnail", "created_at", "students_count",
		}))

	courses, err := store.Recommendations(7, "", recommendationLimit)
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("expected no rows, got %+v", courses)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
