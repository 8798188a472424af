package admin

import (
	"testing"
	"time"
)

func TestClassifyTopic(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Full-Stack Web Development", "Web Development"},
		{"Intro to Data Analytics", "Data Science"},
		{"Machine Learning Fundamentals", "AI & ML"},
		{"UI/UX Design Basics", "Design"},
		{"Flutter for Beginners", "Mobile"},
		{"Public Speaking", "Other"},
	}
	for _, c := range cases {
		if got := classifyTopic(c.title); got != c.want {
			t.Errorf("classifyTopic(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestBuildDistribution(t *testing.T) {
	titles := []string{
		"React Crash Course",
		"Advanced CSS",
		"SQL for Analysts",
		"Philosophy 101",
	}
	entries := BuildDistribution(titles)
	if len(entries) != 3 {
		t.Fatalf("expected 3 buckets, got %d: %v", len(entries), entries)
	}
	if entries[0].Name != "Web Development" || entries[0].Value != 2 {
		t.Errorf("expected Web Development first with 2 courses, got %+v", entries[0])
	}
	for _, e := range entries {
		if e.Color == "" {
			t.Errorf("bucket %q has no color", e.Name)
		}
	}
}

func TestGrowthPercent(t *testing.T) {
	cases := []struct {
		prev, curr, want int
	}{
		{0, 0, 0},
		{0, 5, 100},
		{10, 15, 50},
		{10, 10, 0},
		{20, 15, -25},
	}
	for _, c := range cases {
		if got := GrowthPercent(c.prev, c.curr); got != c.want {
			t.Errorf("GrowthPercent(%d, %d) = %d, want %d", c.prev, c.curr, got, c.want)
		}
	}
}

func TestCumulativeGrowth(t *testing.T) {
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	series := []monthlySignups{
		{Month: jan, Count: 3},
		{Month: jan.AddDate(0, 1, 0), Count: 0},
		{Month: jan.AddDate(0, 2, 0), Count: 5},
	}
	points := CumulativeGrowth(series)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	wantUsers := []int{3, 3, 8}
	wantMonths := []string{"Jan", "Feb", "Mar"}
	for i, p := range points {
		if p.Users != wantUsers[i] || p.Month != wantMonths[i] {
			t.Errorf("point %d = %+v, want {%s %d}", i, p, wantMonths[i], wantUsers[i])
		}
	}
}
