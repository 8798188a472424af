package admin

import (
	"math"
	"sort"
	"strings"

	"github.com/smart-learn/backend/internal/models"
)

// courseTopics maps title keywords to the distribution buckets shown on the
// admin dashboard, checked in order.
var courseTopics = []struct {
	Name     string
	Keywords []string
}{
	{"Web Development", []string{"web", "html", "css", "javascript", "react", "frontend", "backend"}},
	{"Data Science", []string{"data", "sql", "analytics", "statistics"}},
	{"AI & ML", []string{"ai", "machine learning", "deep learning", "neural"}},
	{"Design", []string{"design", "ui", "ux", "figma"}},
	{"Mobile", []string{"mobile", "android", "ios", "flutter"}},
}

var topicColors = map[string]string{
	"Web Development": "hsl(221, 83%, 53%)",
	"Data Science":    "hsl(142, 71%, 45%)",
	"AI & ML":         "hsl(262, 83%, 58%)",
	"Design":          "hsl(346, 77%, 50%)",
	"Mobile":          "hsl(32, 95%, 44%)",
	"Other":           "hsl(215, 16%, 47%)",
}

// classifyTopic buckets a course by the first keyword its title contains.
func classifyTopic(title string) string {
	lower := strings.ToLower(title)
	for _, topic := range courseTopics {
		for _, kw := range topic.Keywords {
			if strings.Contains(lower, kw) {
				return topic.Name
			}
		}
	}
	return "Other"
}

// BuildDistribution groups course titles into topic buckets, largest first.
func BuildDistribution(titles []string) []models.CourseDistributionEntry {
	counts := map[string]int{}
	for _, t := range titles {
		counts[classifyTopic(t)]++
	}

	entries := []models.CourseDistributionEntry{}
	for name, count := range counts {
		entries = append(entries, models.CourseDistributionEntry{
			Name:  name,
			Value: count,
			Color: topicColors[name],
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// GrowthPercent is the month-over-month change in signups, rounded to the
// nearest whole percent.
func GrowthPercent(previous, current int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// CumulativeGrowth turns per-month signup counts into a running total.
func CumulativeGrowth(series []monthlySignups) []models.UserGrowthPoint {
	points := make([]models.UserGrowthPoint, 0, len(series))
	total := 0
	for _, m := range series {
		total += m.Count
		points = append(points, models.UserGrowthPoint{
			Month: m.Month.Format("Jan"),
			Users: total,
		})
	}
	return points
}
