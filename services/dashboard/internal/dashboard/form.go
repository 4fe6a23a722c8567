package dashboard

import (
	"context"
	"errors"
	"strings"

	"learnboard/pkg/api"
)

var ErrEmptyGoal = errors.New("goal must not be empty")

// PlanForm holds the create-plan inputs. Whether the form is visible is the controller's
// business, not the form's.
type PlanForm struct {
	Goal       string
	Difficulty api.Difficulty
}

func NewPlanForm() *PlanForm {
	return &PlanForm{Difficulty: api.Intermediate}
}

func (f *PlanForm) SetDifficulty(s string) error {
	d, err := api.ParseDifficulty(s)
	if err != nil {
		return err
	}
	f.Difficulty = d
	return nil
}

// Submit hands the form to submit unless the goal is blank. The fields reset only when
// submit succeeds.
func (f *PlanForm) Submit(ctx context.Context, submit func(ctx context.Context, goal string, d api.Difficulty) error) error {
	goal := strings.TrimSpace(f.Goal)
	if goal == "" {
		return ErrEmptyGoal
	}
	if err := submit(ctx, goal, f.Difficulty); err != nil {
		return err
	}
	f.reset()
	return nil
}

func (f *PlanForm) reset() {
	f.Goal = ""
	f.Difficulty = api.Intermediate
}
