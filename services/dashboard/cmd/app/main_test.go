package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnboard/pkg/api"
	"learnboard/services/dashboard/internal/session"
)

type fakeGateway struct {
	verifyStatus int

	mu      sync.Mutex
	deletes []string
}

func (g *fakeGateway) deleted() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.deletes...)
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/api/verify-token":
		w.WriteHeader(g.verifyStatus)
		json.NewEncoder(w).Encode(api.VerifyResponse{Username: "alice", UserID: 1})
	case r.URL.Path == "/api/learning-plan/all":
		json.NewEncoder(w).Encode([]api.LearningPlan{
			{ID: 1, Goal: "Learn Go", Progress: 39.6, Difficulty: api.Beginner, Plan: map[string][]string{
				"Day 2":  {"Write a CLI"},
				"Day 1":  {"Read the tour"},
				"Day 10": {"Ship it"},
			}},
			{ID: 2, Goal: "Learn SQL", Progress: 100, Completed: true},
		})
	case r.URL.Path == "/api/analytics/progress":
		json.NewEncoder(w).Encode(api.ProgressStats{TotalPlans: 5, CompletedPlans: 2, InProgress: 3, CompletionRate: 40, StreakDays: 3})
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/learning-plan/"):
		g.mu.Lock()
		g.deletes = append(g.deletes, r.URL.Path)
		g.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"message": "Learning plan deleted successfully"})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(api.ErrorEnvelope{Message: "unexpected"})
	}
}

func run(t *testing.T, gw *fakeGateway, token, stdin string, args ...string) (string, string, error) {
	t.Helper()
	srv := httptest.NewServer(gw)
	t.Cleanup(srv.Close)

	tokenFile := filepath.Join(t.TempDir(), "token")
	if token != "" {
		require.NoError(t, session.NewFileStore(tokenFile).Save(token))
	}

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append(args, "--gateway", srv.URL, "--token-file", tokenFile))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestDashboardCommand_Renders(t *testing.T) {
	out, _, err := run(t, &fakeGateway{verifyStatus: http.StatusOK}, "tok", "", "dashboard")
	require.NoError(t, err)

	assert.Contains(t, out, "Learning Dashboard\n3 day streak!\n")
	assert.Regexp(t, `Completion Rate\s+40%`, out)
	assert.Contains(t, out, "[1] Learn Go (beginner, in progress)")
	assert.Contains(t, out, "Progress: 40%")
	assert.Less(t, strings.Index(out, "Day 2"), strings.Index(out, "Day 10"))
}

func TestDashboardCommand_Filter(t *testing.T) {
	out, _, err := run(t, &fakeGateway{verifyStatus: http.StatusOK}, "tok", "", "dashboard", "--filter", "completed")
	require.NoError(t, err)

	assert.Contains(t, out, "Learn SQL")
	assert.NotContains(t, out, "Learn Go")
}

func TestDashboardCommand_NoToken(t *testing.T) {
	out, _, err := run(t, &fakeGateway{verifyStatus: http.StatusOK}, "", "", "dashboard")

	assert.ErrorIs(t, err, session.ErrUnauthenticated)
	assert.Contains(t, out, "learnboard login")
	assert.NotContains(t, out, "Learning Dashboard")
}

func TestDashboardCommand_RejectedTokenIsCleared(t *testing.T) {
	srv := httptest.NewServer(&fakeGateway{verifyStatus: http.StatusInternalServerError})
	t.Cleanup(srv.Close)
	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, session.NewFileStore(tokenFile).Save("stale"))

	var stdout bytes.Buffer
	root := newRootCmd()
	root.SetArgs([]string{"dashboard", "--gateway", srv.URL, "--token-file", tokenFile})
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})

	err := root.ExecuteContext(context.Background())

	assert.ErrorIs(t, err, session.ErrUnauthenticated)
	assert.NotContains(t, stdout.String(), "Learning Dashboard")
	_, statErr := os.Stat(tokenFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteCommand_Declined(t *testing.T) {
	gw := &fakeGateway{verifyStatus: http.StatusOK}
	out, _, err := run(t, gw, "tok", "n\n", "delete", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Are you sure you want to delete this plan? [y/N]: ")
	assert.Contains(t, out, "Cancelled")
	assert.Empty(t, gw.deleted())
}

func TestDeleteCommand_Yes(t *testing.T) {
	gw := &fakeGateway{verifyStatus: http.StatusOK}
	_, _, err := run(t, gw, "tok", "", "delete", "1", "--yes")
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/learning-plan/1"}, gw.deleted())
}

func TestCreateCommand_EmptyGoal(t *testing.T) {
	_, _, err := run(t, &fakeGateway{verifyStatus: http.StatusOK}, "tok", "", "create", "--goal", "   ")
	assert.Error(t, err)
}

func TestLogoutCommand(t *testing.T) {
	out, _, err := run(t, &fakeGateway{}, "tok", "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")
}
