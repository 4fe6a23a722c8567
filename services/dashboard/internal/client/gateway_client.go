package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"learnboard/pkg/api"
	"learnboard/services/dashboard/internal/session"
)

// APIError is a non-2xx gateway reply decoded from its error envelope.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d): %s", msg, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s (%d)", msg, e.Status)
}

// GatewayClient calls the /api routes. Every request carries the session's bearer token
// when there is one, and a 401 reply ends the session.
type GatewayClient struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	logger     *slog.Logger
}

// NewGatewayClient uses http.DefaultClient when httpClient is nil, so requests never time out
// on their own.
func NewGatewayClient(baseURL string, s *session.Session, httpClient *http.Client, logger *slog.Logger) (*GatewayClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("gateway url %q: unsupported scheme", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GatewayClient{baseURL: u.String(), httpClient: httpClient, session: s, logger: logger}, nil
}

// Login exchanges credentials for a token and stores it in the session.
func (c *GatewayClient) Login(ctx context.Context, req api.LoginRequest) error {
	var tok api.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", "", req, &tok); err != nil {
		return err
	}
	return c.session.Set(tok.AccessToken)
}

func (c *GatewayClient) Register(ctx context.Context, req api.RegisterRequest) (*api.UserResponse, error) {
	var user api.UserResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", "", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyToken checks token explicitly rather than whatever the session currently holds.
func (c *GatewayClient) VerifyToken(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodGet, "/api/verify-token", token, nil, nil)
}

func (c *GatewayClient) ListPlans(ctx context.Context) ([]api.LearningPlan, error) {
	var plans []api.LearningPlan
	if err := c.do(ctx, http.MethodGet, "/api/learning-plan/all", c.session.Token(), nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *GatewayClient) Progress(ctx context.Context) (*api.ProgressStats, error) {
	var stats api.ProgressStats
	if err := c.do(ctx, http.MethodGet, "/api/analytics/progress", c.session.Token(), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *GatewayClient) GeneratePlan(ctx context.Context, req api.CreatePlanRequest) (*api.LearningPlan, error) {
	var plan api.LearningPlan
	if err := c.do(ctx, http.MethodPost, "/api/generate-plan", c.session.Token(), req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *GatewayClient) LogActivity(ctx context.Context, req api.ActivityLogRequest) (*api.ActivityLog, error) {
	var entry api.ActivityLog
	if err := c.do(ctx, http.MethodPost, "/api/activity/log", c.session.Token(), req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *GatewayClient) DeletePlan(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/learning-plan/"+strconv.FormatInt(id, 10), c.session.Token(), nil, nil)
}

// do sends in (if any) as JSON and decodes a 2xx reply into out (if any), validating it.
func (c *GatewayClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		if err := api.Validate(in); err != nil {
			return err
		}
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env api.ErrorEnvelope
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Message, apiErr.Detail = env.Message, env.Detail
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.logger.WarnContext(ctx, "Gateway rejected credentials, clearing session", slog.String("path", path))
			if err := c.session.Logout(); err != nil {
				return errors.Join(apiErr, err)
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", api.ErrInvalidPayload, path, err)
	}
	return api.Validate(out)
}
