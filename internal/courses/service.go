package courses

import (
	"fmt"
	"time"

	"github.com/smart-learn/backend/internal/models"
)

// Service layers the dropout classifier and dashboard assembly over the
// store. Plain CRUD goes straight through.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// RosterWithRisk returns the instructor's students with a risk bucket
// attached to each.
func (s *Service) RosterWithRisk(instructorID int64) ([]models.InstructorStudent, error) {
	rows, err := s.store.Roster(instructorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	students := []models.InstructorStudent{}
	for _, r := range rows {
		students = append(students, models.InstructorStudent{
			ID:         r.ID,
			Name:       r.Name,
			Courses:    r.Courses,
			Progress:   r.Progress,
			QuizAvg:    r.QuizAvg,
			Risk:       ClassifyRisk(r.Progress, r.QuizAvg, r.LastActive, now),
			LastActive: r.LastActive,
		})
	}
	return students, nil
}

// InstructorStats assembles the instructor dashboard header numbers and the
// seven-day engagement chart.
func (s *Service) InstructorStats(instructorID int64) (*models.InstructorStatsResponse, error) {
	totals, err := s.store.InstructorTotals(instructorID)
	if err != nil {
		return nil, err
	}

	engagement, err := s.store.WeeklyEngagement(instructorID)
	if err != nil {
		return nil, err
	}

	points := make([]models.EngagementPoint, 0, len(engagement))
	for _, e := range engagement {
		points = append(points, models.EngagementPoint{
			Day:         e.Day.Format("Mon"),
			Views:       e.Views,
			Completions: e.Completions,
		})
	}

	students, err := s.RosterWithRisk(instructorID)
	if err != nil {
		return nil, err
	}
	atRisk := 0
	for _, st := range students {
		if st.Risk == models.RiskHigh {
			atRisk++
		}
	}

	return &models.InstructorStatsResponse{
		TotalStudents:  totals.TotalStudents,
		ActiveCourses:  totals.ActiveCourses,
		AtRisk:         atRisk,
		AvgCompletion:  fmt.Sprintf("%d%%", int(totals.AvgCompletion+0.5)),
		EngagementData: points,
	}, nil
}
