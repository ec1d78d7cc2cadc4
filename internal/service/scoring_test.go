package service

import (
	"desafiabrasil/internal/model"
	"math/rand/v2"
	"reflect"
	"sort"
	"testing"
)

func TestRoundPercent(t *testing.T) {
	tests := []struct {
		num, den, want int
	}{
		{0, 0, 0},
		{0, 10, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{5, 8, 63}, // 62.5 rounds up
		{139, 200, 70},
		{10, 10, 100},
	}
	for _, tt := range tests {
		if got := RoundPercent(tt.num, tt.den); got != tt.want {
			t.Errorf("RoundPercent(%d, %d) = %d, want %d", tt.num, tt.den, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{100, "Extraordinary"},
		{95, "Extraordinary"},
		{94, "Excellent"},
		{90, "Excellent"},
		{89, "Very Good"},
		{80, "Very Good"},
		{70, "Good"},
		{69, "Regular"},
		{60, "Regular"},
		{59, "Needs Improvement"},
		{50, "Needs Improvement"},
		{49, "Keep Studying"},
		{0, "Keep Studying"},
	}
	for _, tt := range tests {
		if got := Classify(tt.pct); got != tt.want {
			t.Errorf("Classify(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestEvaluateBadges(t *testing.T) {
	simulado := model.ExamTemplate{Type: model.TemplateSimulado, BonusBadge: "ENEM Ready"}
	practice := model.ExamTemplate{Type: model.TemplatePractice}
	veteran := &model.User{ExamsCompleted: 5}

	tests := []struct {
		name string
		tmpl model.ExamTemplate
		user *model.User
		pct  int
		want []string
	}{
		{"perfection only", practice, veteran, 100, []string{BadgePerfection}},
		{"tiers are exclusive", practice, veteran, 92, []string{BadgeExpert}},
		{"first attempt without tier", practice, &model.User{}, 10, []string{BadgeFirstAttempt}},
		{"simulado bonus at 80", simulado, veteran, 80, []string{BadgeVeryGood, "ENEM Ready"}},
		{"no simulado bonus at 79", simulado, veteran, 79, []string{BadgeGoodPerformance}},
		{"no bonus outside simulado", model.ExamTemplate{Type: model.TemplateIntensive, BonusBadge: "X"}, veteran, 99, []string{BadgePerfection}},
		{"nothing", practice, veteran, 50, []string{}},
		{"held badges skipped", simulado, &model.User{ExamsCompleted: 1, Badges: []string{BadgeExpert, "ENEM Ready"}}, 90, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateBadges(tt.tmpl, tt.user, tt.pct)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateBadges_Idempotent(t *testing.T) {
	tmpl := model.ExamTemplate{Type: model.TemplateSimulado, BonusBadge: "ENEM Ready"}
	user := &model.User{}

	first := EvaluateBadges(tmpl, user, 96)
	user.Badges = append(user.Badges, first...)
	second := EvaluateBadges(tmpl, user, 96)

	if len(second) != 0 {
		t.Fatalf("second evaluation awarded %v", second)
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for n := 0; n < 50; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		shuffle(items, r.IntN)

		sorted := append([]int(nil), items...)
		sort.Ints(sorted)
		for i, v := range sorted {
			if v != i {
				t.Fatalf("n=%d: shuffle lost or duplicated elements: %v", n, items)
			}
		}
	}
}

func TestShuffle_UsesWholeRange(t *testing.T) {
	// Every element must be able to land in the first slot.
	r := rand.New(rand.NewPCG(5, 6))
	firsts := map[int]bool{}
	for i := 0; i < 500; i++ {
		items := []int{0, 1, 2, 3, 4}
		shuffle(items, r.IntN)
		firsts[items[0]] = true
	}
	if len(firsts) != 5 {
		t.Fatalf("only %d distinct leading elements", len(firsts))
	}
}
