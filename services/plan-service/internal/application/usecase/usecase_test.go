package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"

	"learnboard/pkg/api"
	"learnboard/pkg/logging"
	"learnboard/services/plan-service/internal/application/usecase"
	"learnboard/services/plan-service/internal/domain"
	"learnboard/services/plan-service/internal/infrastructure/generator"
	"learnboard/services/plan-service/internal/infrastructure/repository"
	"learnboard/services/plan-service/internal/infrastructure/security"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

type fixture struct {
	auth      *usecase.AuthUseCase
	plans     *usecase.PlanUseCase
	activity  *usecase.ActivityUseCase
	analytics *usecase.AnalyticsUseCase
	users     *repository.UserRepository
	clock     *clock
}

func newFixture(t *testing.T, gen usecase.Generator) *fixture {
	t.Helper()
	db, err := repository.NewDB(sqlite.Open(filepath.Join(t.TempDir(), "plans.db")), "test", logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if gen == nil {
		gen = generator.NewTemplateGenerator()
	}
	c := &clock{t: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
	users := repository.NewUserRepository(db)
	plans := repository.NewPlanRepository(db)
	activities := repository.NewActivityRepository(db)

	return &fixture{
		auth:      usecase.NewAuthUseCase(users, security.NewPasswordHasherWithCost(bcrypt.MinCost), security.NewTokenManager("secret", time.Hour)),
		plans:     usecase.NewPlanUseCase(plans, gen, 3),
		activity:  usecase.NewActivityUseCase(plans, activities, c.Now),
		analytics: usecase.NewAnalyticsUseCase(plans, activities, c.Now),
		users:     users,
		clock:     c,
	}
}

func (f *fixture) register(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), name, name+"@example.com", "pw")
	require.NoError(t, err)
	return u
}

// reload mimics the per-request user lookup the HTTP layer does.
func (f *fixture) reload(t *testing.T, u *domain.User) *domain.User {
	t.Helper()
	fresh, err := f.users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	return fresh
}

type stubGenerator struct {
	mock.Mock
}

func (g *stubGenerator) Generate(goal string, difficulty api.Difficulty, days int) domain.Schedule {
	args := g.Called(goal, difficulty, days)
	return args.Get(0).(domain.Schedule)
}

func TestAuth_RegisterLoginAuthenticate(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	u := f.register(t, "alice")
	assert.NotEqual(t, "pw", u.PasswordHash)

	_, err := f.auth.Register(ctx, "alice", "again@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	_, err = f.auth.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, "nobody", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	token, err := f.auth.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	got, err := f.auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.auth.Authenticate(ctx, token+"x")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestPlans_GenerateDefaultsAndLimit(t *testing.T) {
	gen := &stubGenerator{}
	gen.On("Generate", "Learn Go", api.Intermediate, 30).Return(domain.Schedule{"Day 1": {"a"}})
	f := newFixture(t, gen)
	ctx := context.Background()
	u := f.register(t, "alice")

	for i := 0; i < 3; i++ {
		plan, err := f.plans.Generate(ctx, u, api.CreatePlanRequest{Goal: "  Learn Go "})
		require.NoError(t, err)
		assert.Equal(t, api.Intermediate, plan.Difficulty)
		assert.Equal(t, 30, plan.DurationDays)
		assert.Equal(t, "Learn Go", plan.Goal)
	}

	_, err := f.plans.Generate(ctx, u, api.CreatePlanRequest{Goal: "Learn Go"})
	assert.ErrorIs(t, err, domain.ErrTooManyUnfinished)
	assert.EqualError(t, err, "Maximum 3 unfinished plans allowed")
	gen.AssertNumberOfCalls(t, "Generate", 3)
}

func TestPlans_GenerateRejectsUnknownDifficulty(t *testing.T) {
	f := newFixture(t, nil)
	u := f.register(t, "alice")

	_, err := f.plans.Generate(context.Background(), u, api.CreatePlanRequest{Goal: "Go", Difficulty: "expert"})
	assert.ErrorIs(t, err, api.ErrInvalidPayload)
}

func TestPlans_ListFilterAndDelete(t *testing.T) {
	gen := &stubGenerator{}
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(domain.Schedule{"Day 1": {"only"}})
	f := newFixture(t, gen)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	finished, err := f.plans.Generate(ctx, alice, api.CreatePlanRequest{Goal: "A"})
	require.NoError(t, err)
	_, err = f.plans.Generate(ctx, alice, api.CreatePlanRequest{Goal: "B"})
	require.NoError(t, err)

	_, err = f.activity.Log(ctx, alice, api.ActivityLogRequest{PlanID: finished.ID, ActivityID: 1, Completed: true})
	require.NoError(t, err)

	done, err := f.plans.List(ctx, alice, "completed")
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "A", done[0].Goal)

	open, err := f.plans.List(ctx, alice, "in_progress")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "B", open[0].Goal)

	assert.ErrorIs(t, f.plans.Delete(ctx, bob, finished.ID), domain.ErrPlanNotFound)
	require.NoError(t, f.plans.Delete(ctx, alice, finished.ID))

	all, err := f.plans.List(ctx, alice, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestActivity_LogFallsBackToActivityID(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	plan, err := f.plans.Generate(ctx, alice, api.CreatePlanRequest{Goal: "Go", Difficulty: api.Beginner, DurationDays: 2})
	require.NoError(t, err)

	entry, err := f.activity.Log(ctx, alice, api.ActivityLogRequest{ActivityID: plan.ID, Completed: true})
	require.NoError(t, err)
	assert.Equal(t, plan.ID, entry.PlanID)
	require.NotNil(t, entry.CompletedAt)

	_, err = f.activity.Log(ctx, bob, api.ActivityLogRequest{PlanID: plan.ID, ActivityID: 1, Completed: true})
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)

	stored, err := f.plans.List(ctx, alice, "")
	require.NoError(t, err)
	assert.Equal(t, 25.0, stored[0].Progress)
}

func TestAnalytics_Progress(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	alice := f.register(t, "alice")

	plan, err := f.plans.Generate(ctx, alice, api.CreatePlanRequest{Goal: "Go", Difficulty: api.Beginner, DurationDays: 3})
	require.NoError(t, err)

	// Two activities on day one, one on day two.
	for i, at := range []time.Time{f.clock.t, f.clock.t.Add(time.Hour), f.clock.t.AddDate(0, 0, 1)} {
		f.clock.t = at
		_, err := f.activity.Log(ctx, f.reload(t, alice), api.ActivityLogRequest{PlanID: plan.ID, ActivityID: int64(i + 1), Completed: true})
		require.NoError(t, err)
	}

	stats, err := f.analytics.Progress(ctx, f.reload(t, alice))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalPlans)
	assert.Equal(t, 0, stats.CompletedPlans)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 50.0, stats.CompletionRate)
	assert.Equal(t, 2, stats.StreakDays)
	assert.Equal(t, []domain.DailyCount{
		{Date: "2025-03-10", Count: 2},
		{Date: "2025-03-11", Count: 1},
	}, stats.Weekly)

	// A week later the streak has lapsed and the first day has left the window.
	f.clock.t = f.clock.t.AddDate(0, 0, 7)
	stats, err = f.analytics.Progress(ctx, f.reload(t, alice))
	require.NoError(t, err)
	assert.Zero(t, stats.StreakDays)
	assert.Equal(t, []domain.DailyCount{{Date: "2025-03-11", Count: 1}}, stats.Weekly)
}

func TestAnalytics_NoActivities(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.register(t, "alice")

	stats, err := f.analytics.Progress(context.Background(), alice)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalPlans)
	assert.Zero(t, stats.CompletionRate)
	assert.Empty(t, stats.Weekly)
}
