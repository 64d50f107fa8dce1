package rewards

import "testing"

func TestDailyGoals(t *testing.T) {
	s := NewState()
	s.LastProblemDate = "2026-10-14"
	s.SessionCorrect = 8
	s.SessionWrong = 3
	s.CurrentStreak = 2

	goals := DailyGoals(s, "2026-10-14")
	if len(goals) != 3 {
		t.Fatalf("expected 3 goals, got %d", len(goals))
	}
	if g := goals[0]; g.Current != 10 || !g.Completed || g.XPReward != 25 {
		t.Errorf("problems goal = %+v", g)
	}
	if g := goals[1]; g.Current != 7 || !g.Completed || g.Name != "Get 7 correct today" {
		t.Errorf("correct goal = %+v", g)
	}
	if g := goals[2]; g.Current != 2 || g.Completed {
		t.Errorf("streak goal = %+v", g)
	}

	stale := DailyGoals(s, "2026-10-15")
	for _, g := range stale {
		if g.Current != 0 || g.Completed {
			t.Errorf("goal %s should reset on a new day: %+v", g.ID, g)
		}
	}
}

type constRand int

func (c constRand) Intn(n int) int { return int(c) % n }

func TestMessages(t *testing.T) {
	if got := Celebration(constRand(0), 1); got != "Purrfect! 🐱" {
		t.Errorf("Celebration = %q", got)
	}
	if got := Celebration(constRand(3), 5); got != "🔥 You're the top cat! 🐱" {
		t.Errorf("streak Celebration = %q", got)
	}
	if got := Encouragement(constRand(1)); got != "Even cats need 9 tries sometimes! 🐱" {
		t.Errorf("Encouragement = %q", got)
	}
}
