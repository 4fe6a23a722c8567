package generator

import (
	"fmt"
	"strings"

	"learnboard/pkg/api"
	"learnboard/services/plan-service/internal/domain"
)

// TemplateGenerator builds a deterministic day-by-day schedule from a fixed set of activity
// templates. Harder plans get more activities per day.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

var phases = []struct {
	name       string
	activities []string
}{
	{"Foundations", []string{
		"Read an introduction to %s",
		"Write down three questions you have about %s",
		"Watch a beginner talk on %s",
		"Summarize the key vocabulary of %s",
	}},
	{"Core concepts", []string{
		"Study one core concept of %s in depth",
		"Work through a guided exercise on %s",
		"Explain a %s concept in your own words",
		"Compare two approaches used in %s",
	}},
	{"Practice", []string{
		"Solve a practice problem in %s",
		"Review yesterday's %s notes",
		"Build a small exercise using %s",
		"Time yourself on a %s drill",
	}},
	{"Projects", []string{
		"Plan a mini project around %s",
		"Spend a focused hour on your %s project",
		"Get feedback on your %s work",
		"Write a short retrospective on %s",
	}},
}

func perDay(d api.Difficulty) int {
	switch d {
	case api.Beginner:
		return 2
	case api.Advanced:
		return 4
	default:
		return 3
	}
}

func (g *TemplateGenerator) Generate(goal string, difficulty api.Difficulty, days int) domain.Schedule {
	if days <= 0 {
		days = api.DefaultDurationDays
	}
	goal = strings.TrimSpace(goal)
	n := perDay(difficulty)

	schedule := make(domain.Schedule, days)
	for day := 1; day <= days; day++ {
		phase := phases[(day-1)*len(phases)/days]
		acts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			tmpl := phase.activities[(day+i)%len(phase.activities)]
			acts = append(acts, fmt.Sprintf("%s: "+tmpl, phase.name, goal))
		}
		schedule[fmt.Sprintf("Day %d", day)] = acts
	}
	return schedule
}
