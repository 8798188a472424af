package gamification

import (
	"testing"
	"time"
)

func TestFormatDayLabel(t *testing.T) {
	d := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := formatDayLabel(d); got != "2 Jan" {
		t.Errorf("expected %q, got %q", "2 Jan", got)
	}
	d = time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	if got := formatDayLabel(d); got != "25 Dec" {
		t.Errorf("expected %q, got %q", "25 Dec", got)
	}
}

func TestFormatWeekRange_SameMonth(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)
	if got := formatWeekRange(start, end); got != "6-12 Jan" {
		t.Errorf("expected %q, got %q", "6-12 Jan", got)
	}
}

func TestFormatWeekRange_CrossesMonth(t *testing.T) {
	start := time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)
	if got := formatWeekRange(start, end); got != "27 Jan - 2 Feb" {
		t.Errorf("expected %q, got %q", "27 Jan - 2 Feb", got)
	}
}

func TestRoundHours(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.25, 1.3},
		{1.24, 1.2},
		{2.35, 2.4},
	}
	for _, c := range cases {
		if got := roundHours(c.in); got != c.want {
			t.Errorf("roundHours(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
