package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"learnboard/pkg/api"
	"learnboard/services/api-gateway/internal/client"
	"learnboard/services/api-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Backend is what the gateway needs from the plan backend.
type Backend interface {
	Do(ctx context.Context, method, path string, body []byte, header http.Header) (*client.Response, error)
}

// route describes one forwarded endpoint.
type route struct {
	name    string
	method  string
	message string
	// payload returns a fresh value to validate the body against; nil means no body.
	payload func() any
	// relayDetail copies the backend's `detail` into the error envelope.
	relayDetail bool
}

type proxy struct {
	backend Backend
}

// forward relays the request to path. Success is always 200 with the backend body verbatim;
// any failure is the route's fixed message with 500.
func (p *proxy) forward(c *gin.Context, rt route, path string) {
	var body []byte
	if rt.payload != nil {
		raw, err := c.GetRawData()
		if err != nil {
			p.fail(c, rt, fmt.Errorf("read body: %w", err))
			return
		}
		dst := rt.payload()
		if err := json.Unmarshal(raw, dst); err != nil {
			p.fail(c, rt, fmt.Errorf("decode body: %w", err))
			return
		}
		if err := api.Validate(dst); err != nil {
			p.fail(c, rt, err)
			return
		}
		body = raw
	}

	header := http.Header{}
	if token := middleware.AccessToken(c); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	if id := c.Writer.Header().Get("X-Request-ID"); id != "" {
		header.Set("X-Request-ID", id)
	}

	res, err := p.backend.Do(c, rt.method, path, body, header)
	if err != nil {
		p.fail(c, rt, err)
		return
	}

	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(http.StatusOK, contentType, res.Body)
}

func (p *proxy) fail(c *gin.Context, rt route, err error) {
	envelope := api.ErrorEnvelope{Message: rt.message}

	attrs := []any{slog.Any("error", err)}
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		attrs = append(attrs, slog.Int("backend_status", statusErr.Status))
		if rt.relayDetail {
			envelope.Detail = statusErr.Detail()
		}
	}
	middleware.Logger(c).With(slog.String("route", rt.name)).ErrorContext(c, rt.message, attrs...)

	c.AbortWithStatusJSON(http.StatusInternalServerError, envelope)
}
