package session

import (
	"context"
	"errors"
	"log/slog"
)

var ErrUnauthenticated = errors.New("not authenticated")

type Verifier interface {
	VerifyToken(ctx context.Context, token string) error
}

type Navigator interface {
	RedirectToLogin()
}

// Guard runs a protected view only after the stored token has been verified.
type Guard struct {
	session     *Session
	verifier    Verifier
	nav         Navigator
	placeholder func()
	logger      *slog.Logger
}

// NewGuard wires a guard. placeholder is shown while verification is in flight and may be nil.
func NewGuard(s *Session, v Verifier, nav Navigator, placeholder func(), logger *slog.Logger) *Guard {
	if placeholder == nil {
		placeholder = func() {}
	}
	return &Guard{session: s, verifier: v, nav: nav, placeholder: placeholder, logger: logger}
}

// Protect verifies the session once and then calls render. Without a valid token render is
// never called: the token is discarded, the navigator redirects, and ErrUnauthenticated is
// returned.
func (g *Guard) Protect(ctx context.Context, render func(ctx context.Context) error) error {
	token := g.session.Token()
	if token == "" {
		g.nav.RedirectToLogin()
		return ErrUnauthenticated
	}

	g.placeholder()
	if err := g.verifier.VerifyToken(ctx, token); err != nil {
		g.logger.WarnContext(ctx, "Session verification failed", slog.Any("error", err))
		if err := g.session.Logout(); err != nil {
			g.logger.ErrorContext(ctx, "Failed to clear session", slog.Any("error", err))
		}
		g.nav.RedirectToLogin()
		return ErrUnauthenticated
	}

	return render(ctx)
}
