// Package dashboard holds the client-side state of the learning dashboard and the actions
// that change it. Every mutation goes to the gateway and is followed by a full refetch.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"learnboard/pkg/api"
	"learnboard/services/dashboard/internal/client"
)

const deleteConfirmation = "Are you sure you want to delete this plan?"

type Filter string

const (
	FilterAll        Filter = "all"
	FilterCompleted  Filter = "completed"
	FilterInProgress Filter = "in_progress"
)

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCompleted, FilterInProgress:
		return f, nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}

type API interface {
	ListPlans(ctx context.Context) ([]api.LearningPlan, error)
	Progress(ctx context.Context) (*api.ProgressStats, error)
	GeneratePlan(ctx context.Context, req api.CreatePlanRequest) (*api.LearningPlan, error)
	LogActivity(ctx context.Context, req api.ActivityLogRequest) (*api.ActivityLog, error)
	DeletePlan(ctx context.Context, id int64) error
}

// Prompter is how the controller talks to the user directly.
type Prompter interface {
	Confirm(message string) bool
	Alert(message string)
}

type Controller struct {
	api      API
	prompter Prompter
	logger   *slog.Logger

	mu        sync.RWMutex
	plans     []api.LearningPlan
	stats     *api.ProgressStats
	modalOpen bool
	loading   bool
	filter    Filter
}

func NewController(a API, p Prompter, logger *slog.Logger) *Controller {
	return &Controller{
		api:      a,
		prompter: p,
		logger:   logger,
		loading:  true,
		filter:   FilterAll,
	}
}

// Load fetches plans and stats concurrently and waits for both. Each result that arrives is
// applied; a failed fetch is logged and leaves its part of the state as it was.
func (c *Controller) Load(ctx context.Context) {
	var (
		plans   []api.LearningPlan
		stats   *api.ProgressStats
		plansOK bool
		statsOK bool
		g       errgroup.Group
	)

	g.Go(func() error {
		p, err := c.api.ListPlans(ctx)
		if err != nil {
			c.logger.ErrorContext(ctx, "Failed to fetch learning plans", slog.Any("error", err))
			return nil
		}
		plans, plansOK = p, true
		return nil
	})
	g.Go(func() error {
		s, err := c.api.Progress(ctx)
		if err != nil {
			c.logger.ErrorContext(ctx, "Failed to fetch progress analytics", slog.Any("error", err))
			return nil
		}
		stats, statsOK = s, true
		return nil
	})
	_ = g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if plansOK {
		c.plans = plans
	}
	if statsOK {
		c.stats = stats
	}
	c.loading = false
}

// CreatePlan asks the gateway for a new plan. An empty difficulty means intermediate. When the
// gateway reports why creation failed, the reason is shown to the user.
func (c *Controller) CreatePlan(ctx context.Context, goal string, difficulty api.Difficulty) error {
	if difficulty == "" {
		difficulty = api.Intermediate
	}

	plan, err := c.api.GeneratePlan(ctx, api.CreatePlanRequest{
		Goal:         goal,
		Difficulty:   difficulty,
		DurationDays: api.DefaultDurationDays,
	})
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			c.prompter.Alert(apiErr.Detail)
		}
		return err
	}

	c.mu.Lock()
	c.plans = append(c.plans, *plan)
	c.mu.Unlock()

	c.Load(ctx)
	c.CloseModal()
	return nil
}

// LogActivity marks one activity of a plan done. Failures are logged, never shown.
func (c *Controller) LogActivity(ctx context.Context, planID, activityID int64) error {
	_, err := c.api.LogActivity(ctx, api.ActivityLogRequest{
		PlanID:     planID,
		ActivityID: activityID,
		Completed:  true,
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to log activity",
			slog.Int64("plan_id", planID), slog.Int64("activity_id", activityID), slog.Any("error", err))
		return err
	}

	c.Load(ctx)
	return nil
}

// DeletePlan removes a plan after the user confirms. It reports whether a delete was sent.
// Failures are logged, never shown.
func (c *Controller) DeletePlan(ctx context.Context, planID int64) (bool, error) {
	if !c.prompter.Confirm(deleteConfirmation) {
		return false, nil
	}

	if err := c.api.DeletePlan(ctx, planID); err != nil {
		c.logger.ErrorContext(ctx, "Failed to delete plan", slog.Int64("plan_id", planID), slog.Any("error", err))
		return true, err
	}

	c.mu.Lock()
	kept := c.plans[:0:0]
	for _, p := range c.plans {
		if p.ID != planID {
			kept = append(kept, p)
		}
	}
	c.plans = kept
	c.mu.Unlock()

	c.Load(ctx)
	return true, nil
}

func (c *Controller) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
}

func (c *Controller) Filter() Filter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

// Plans is the current plan list narrowed by the active filter.
func (c *Controller) Plans() []api.LearningPlan {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return filterPlans(c.plans, c.filter)
}

func filterPlans(plans []api.LearningPlan, f Filter) []api.LearningPlan {
	out := make([]api.LearningPlan, 0, len(plans))
	for _, p := range plans {
		switch {
		case f == FilterCompleted && !p.Completed:
		case f == FilterInProgress && p.Completed:
		default:
			out = append(out, p)
		}
	}
	return out
}

// Stats returns nil until a stats fetch has succeeded.
func (c *Controller) Stats() *api.ProgressStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.stats == nil {
		return nil
	}
	s := *c.stats
	return &s
}

func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Controller) OpenModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modalOpen = true
}

func (c *Controller) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modalOpen = false
}

func (c *Controller) ModalOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modalOpen
}

// View is a consistent snapshot for rendering.
type View struct {
	Loading bool
	Filter  Filter
	Stats   *api.ProgressStats
	Plans   []api.LearningPlan
}

func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v := View{
		Loading: c.loading,
		Filter:  c.filter,
		Plans:   filterPlans(c.plans, c.filter),
	}
	if c.stats != nil {
		s := *c.stats
		v.Stats = &s
	}
	return v
}
