package service

import "desafiabrasil/internal/model"

// Badge names
const (
	BadgePerfection      = "Perfection"
	BadgeExpert          = "Expert"
	BadgeVeryGood        = "Very Good"
	BadgeGoodPerformance = "Good Performance"
	BadgeFirstAttempt    = "First Attempt"
)

// RoundPercent returns 100*num/den rounded half up. Zero denominator gives 0.
func RoundPercent(num, den int) int {
	if den <= 0 {
		return 0
	}
	return (200*num + den) / (2 * den)
}

var classifications = []struct {
	min   int
	label string
}{
	{95, "Extraordinary"},
	{90, "Excellent"},
	{80, "Very Good"},
	{70, "Good"},
	{60, "Regular"},
	{50, "Needs Improvement"},
}

// Classify maps an overall percentage to its label
func Classify(percentage int) string {
	for _, c := range classifications {
		if percentage >= c.min {
			return c.label
		}
	}
	return "Keep Studying"
}

var performanceBadges = []struct {
	min  int
	name string
}{
	{95, BadgePerfection},
	{90, BadgeExpert},
	{80, BadgeVeryGood},
	{70, BadgeGoodPerformance},
}

// EvaluateBadges returns the badges earned by one exam that user does not
// hold yet. Only the highest performance tier is awarded.
func EvaluateBadges(tmpl model.ExamTemplate, user *model.User, percentage int) []string {
	var earned []string
	for _, b := range performanceBadges {
		if percentage >= b.min {
			earned = append(earned, b.name)
			break
		}
	}
	if user.ExamsCompleted == 0 {
		earned = append(earned, BadgeFirstAttempt)
	}
	if tmpl.Type == model.TemplateSimulado && tmpl.BonusBadge != "" && percentage >= 80 {
		earned = append(earned, tmpl.BonusBadge)
	}

	badges := []string{}
	for _, b := range earned {
		if !user.HasBadge(b) && !contains(badges, b) {
			badges = append(badges, b)
		}
	}
	return badges
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
