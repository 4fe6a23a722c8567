package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnboard/pkg/api"
	"learnboard/pkg/logging"
	"learnboard/services/dashboard/internal/session"
)

type captured struct {
	method string
	path   string
	auth   string
	body   string
}

func newClient(t *testing.T, token string, handler func(w http.ResponseWriter, r *http.Request)) (*GatewayClient, *session.Session, *[]captured) {
	t.Helper()
	var calls []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, captured{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization"), body: string(b)})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	s, err := session.Open(session.NewMemoryStore(token))
	require.NoError(t, err)
	c, err := NewGatewayClient(srv.URL+"/", s, srv.Client(), logging.Discard())
	require.NoError(t, err)
	return c, s, &calls
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestNewGatewayClient_RejectsScheme(t *testing.T) {
	s, _ := session.Open(session.NewMemoryStore(""))
	_, err := NewGatewayClient("ftp://example.com", s, nil, logging.Discard())
	assert.Error(t, err)
}

func TestGatewayClient_LoginStoresToken(t *testing.T) {
	c, s, calls := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.TokenResponse{AccessToken: "jwt", TokenType: "bearer"})
	})

	require.NoError(t, c.Login(context.Background(), api.LoginRequest{Username: "alice", Password: "pw"}))

	assert.Equal(t, "jwt", s.Token())
	require.Len(t, *calls, 1)
	assert.Equal(t, "/api/login", (*calls)[0].path)
	assert.JSONEq(t, `{"username":"alice","password":"pw"}`, (*calls)[0].body)
}

func TestGatewayClient_InvalidRequestNeverSent(t *testing.T) {
	c, _, calls := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.TokenResponse{AccessToken: "jwt"})
	})

	err := c.Login(context.Background(), api.LoginRequest{Username: "  ", Password: "pw"})
	assert.ErrorIs(t, err, api.ErrInvalidPayload)
	assert.Empty(t, *calls)
}

func TestGatewayClient_AttachesBearer(t *testing.T) {
	c, _, calls := newClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/learning-plan/all":
			writeJSON(w, http.StatusOK, []api.LearningPlan{{ID: 1, Goal: "Go", Plan: map[string][]string{"Day 1": {"a"}}}})
		case "/api/analytics/progress":
			writeJSON(w, http.StatusOK, api.ProgressStats{TotalPlans: 1, InProgress: 1})
		default:
			writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
		}
	})
	ctx := context.Background()

	plans, err := c.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)

	stats, err := c.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPlans)

	require.NoError(t, c.DeletePlan(ctx, 7))
	require.NoError(t, c.VerifyToken(ctx, "explicit"))

	require.Len(t, *calls, 4)
	assert.Equal(t, "Bearer tok", (*calls)[0].auth)
	assert.Equal(t, "Bearer tok", (*calls)[1].auth)
	assert.Equal(t, http.MethodDelete, (*calls)[2].method)
	assert.Equal(t, "/api/learning-plan/7", (*calls)[2].path)
	assert.Equal(t, "Bearer explicit", (*calls)[3].auth)
}

func TestGatewayClient_ErrorEnvelope(t *testing.T) {
	c, s, _ := newClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, api.ErrorEnvelope{
			Message: "Failed to generate learning plan",
			Detail:  "Maximum 3 unfinished plans allowed",
		})
	})

	_, err := c.GeneratePlan(context.Background(), api.CreatePlanRequest{Goal: "Go", Difficulty: api.Intermediate, DurationDays: 30})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Failed to generate learning plan", apiErr.Message)
	assert.Equal(t, "Maximum 3 unfinished plans allowed", apiErr.Detail)
	assert.Equal(t, "tok", s.Token(), "a 500 does not end the session")
}

func TestGatewayClient_UnauthorizedClearsSession(t *testing.T) {
	c, s, _ := newClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, api.BackendError{Detail: "Invalid authentication credentials"})
	})

	_, err := c.ListPlans(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Empty(t, s.Token())
}

func TestGatewayClient_RejectsMalformedReply(t *testing.T) {
	c, _, _ := newClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"total_plans": 1, "completion_rate": 250})
	})

	_, err := c.Progress(context.Background())
	assert.ErrorIs(t, err, api.ErrInvalidPayload)
}
