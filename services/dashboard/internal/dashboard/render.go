package dashboard

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"learnboard/pkg/api"
)

// Render writes the dashboard as plain text.
func Render(w io.Writer, v View) error {
	if v.Loading {
		_, err := fmt.Fprintln(w, "Loading...")
		return err
	}

	var b strings.Builder
	b.WriteString("Learning Dashboard\n")
	if v.Stats != nil && v.Stats.StreakDays > 0 {
		fmt.Fprintf(&b, "%d day streak!\n", v.Stats.StreakDays)
	}
	b.WriteString("\n")

	if v.Stats != nil {
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Total Plans\t%d\n", v.Stats.TotalPlans)
		fmt.Fprintf(tw, "Completed\t%d\n", v.Stats.CompletedPlans)
		fmt.Fprintf(tw, "In Progress\t%d\n", v.Stats.InProgress)
		fmt.Fprintf(tw, "Completion Rate\t%s%%\n", strconv.FormatFloat(v.Stats.CompletionRate, 'f', -1, 64))
		tw.Flush()
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Plans (%s)\n", v.Filter)
	if len(v.Plans) == 0 {
		b.WriteString("  No learning plans yet.\n")
	}
	for _, p := range v.Plans {
		renderPlan(&b, p)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderPlan(b *strings.Builder, p api.LearningPlan) {
	status := "in progress"
	if p.Completed {
		status = "completed"
	}
	if p.Difficulty != "" {
		status = string(p.Difficulty) + ", " + status
	}
	fmt.Fprintf(b, "\n[%d] %s (%s)\n", p.ID, p.Goal, status)
	fmt.Fprintf(b, "  Progress: %d%%\n", int(math.Round(p.Progress)))
	for _, day := range dayOrder(p.Plan) {
		fmt.Fprintf(b, "  %s\n", day)
		for _, act := range p.Plan[day] {
			fmt.Fprintf(b, "    - %s\n", act)
		}
	}
}

// dayOrder sorts day labels by their trailing number so "Day 10" follows "Day 9".
func dayOrder(plan map[string][]string) []string {
	days := make([]string, 0, len(plan))
	for d := range plan {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		ni, oki := trailingNumber(days[i])
		nj, okj := trailingNumber(days[j])
		if oki && okj && ni != nj {
			return ni < nj
		}
		if oki != okj {
			return oki
		}
		return days[i] < days[j]
	})
	return days
}

func trailingNumber(s string) (int, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	return n, err == nil
}
