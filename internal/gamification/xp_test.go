package gamification

import "testing"

func TestXPEarned(t *testing.T) {
	cases := []struct {
		score float64
		want  int
	}{
		{0, 50},
		{100, 150},
		{87, 137},
		{87.5, 138}, // rounds half away from zero
		{87.4, 137},
	}
	for _, c := range cases {
		if got := XPEarned(c.score); got != c.want {
			t.Errorf("XPEarned(%v) = %d, want %d", c.score, got, c.want)
		}
	}
}

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

func TestSubmissionCrossesLevelBoundary(t *testing.T) {
	// A learner at 480 XP scoring 100 earns 150 XP and lands on level 2.
	earned := XPEarned(100)
	if earned != 150 {
		t.Fatalf("expected 150 XP earned, got %d", earned)
	}
	newXP := int64(480) + int64(earned)
	if newXP != 630 {
		t.Fatalf("expected 630 total XP, got %d", newXP)
	}
	if level := LevelForXP(newXP); level != 2 {
		t.Errorf("expected level 2 at %d XP, got %d", newXP, level)
	}
}
