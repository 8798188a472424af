package courses

import (
	"time"

	"github.com/smart-learn/backend/internal/models"
)

// ClassifyRisk buckets a student's dropout risk from their course progress,
// quiz average, and days since last activity. A nil lastActive counts as
// never active.
func ClassifyRisk(progress, quizAvg int, lastActive *time.Time, now time.Time) string {
	inactiveDays := 9999
	if lastActive != nil {
		inactiveDays = int(now.Sub(*lastActive).Hours() / 24)
	}

	if progress < 20 && inactiveDays > 7 {
		return models.RiskHigh
	}
	if progress < 50 && inactiveDays > 3 {
		return models.RiskMedium
	}
	// quizAvg of 0 means no quizzes taken yet, not failing ones.
	if quizAvg > 0 && quizAvg < 60 {
		return models.RiskHigh
	}
	return models.RiskLow
}
