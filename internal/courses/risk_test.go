package courses

import (
	"testing"
	"time"

	"github.com/smart-learn/backend/internal/models"
)

func TestClassifyRisk(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	daysAgo := func(n int) *time.Time {
		d := now.AddDate(0, 0, -n)
		return &d
	}

	cases := []struct {
		name       string
		progress   int
		quizAvg    int
		lastActive *time.Time
		want       string
	}{
		{"fresh and engaged", 80, 85, daysAgo(1), models.RiskLow},
		{"barely started, long idle", 10, 0, daysAgo(10), models.RiskHigh},
		{"barely started but active", 10, 0, daysAgo(1), models.RiskLow},
		{"failing quizzes", 70, 45, daysAgo(1), models.RiskHigh},
		{"halfway, drifting", 40, 75, daysAgo(5), models.RiskMedium},
		{"drifting outranks failing quizzes", 40, 45, daysAgo(5), models.RiskMedium},
		{"never active, no progress", 0, 0, nil, models.RiskHigh},
		{"no quizzes taken yet", 90, 0, daysAgo(2), models.RiskLow},
	}

	for _, c := range cases {
		if got := ClassifyRisk(c.progress, c.quizAvg, c.lastActive, now); got != c.want {
			t.Errorf("%s: ClassifyRisk = %q, want %q", c.name, got, c.want)
		}
	}
}
