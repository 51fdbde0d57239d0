package session

import (
	"context"

	"go.uber.org/zap"
)

const (
	DefaultName = "Guest"
	DefaultLogo = "◆"
)

// Identity is what the surrounding chrome shows for the signed-in business.
type Identity struct {
	Name string
	Logo string
}

type Session struct {
	Authenticated bool
	Identity      Identity
}

// Provider resolves the current session.
type Provider interface {
	Session(ctx context.Context) (Session, error)
}

// Static is a Provider that always returns the same session.
type Static Session

func (s Static) Session(context.Context) (Session, error) {
	return Session(s), nil
}

// Guest is the session used when nothing better is known.
func Guest() Session {
	return Session{Identity: Identity{Name: DefaultName, Logo: DefaultLogo}}
}

// Resolve asks p for the session and never fails: a nil provider or a
// provider error yields the guest session, and blank identity fields are
// filled with defaults.
func Resolve(ctx context.Context, p Provider, logger *zap.Logger) Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if p == nil {
		return Guest()
	}
	s, err := p.Session(ctx)
	if err != nil {
		logger.Warn("session unavailable, continuing as guest", zap.Error(err))
		return Guest()
	}
	if s.Identity.Name == "" {
		s.Identity.Name = DefaultName
	}
	if s.Identity.Logo == "" {
		s.Identity.Logo = DefaultLogo
	}
	return s
}
