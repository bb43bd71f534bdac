package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/estate/internal/estate/domain"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

var ErrNoScope = errors.New("session: request has no session scope")

// Scope is the session state of a single request. It is not safe for use
// outside the request that created it.
type Scope struct {
	m       *Manager
	w       http.ResponseWriter
	current *domain.Session
}

type scopeKey struct{}

func withScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// FromContext returns the request's scope. Outside Manager.Middleware it
// returns an anonymous scope that cannot start sessions.
func FromContext(ctx context.Context) *Scope {
	if s, ok := ctx.Value(scopeKey{}).(*Scope); ok {
		return s
	}
	return &Scope{}
}

// Current reports the signed-in session, if any.
func (s *Scope) Current() (domain.Session, bool) {
	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

// Start signs user in, replacing any session the request already had.
func (s *Scope) Start(ctx context.Context, user domain.User) error {
	if s.m == nil {
		return ErrNoScope
	}
	if s.current != nil {
		_ = s.m.Store.Delete(ctx, s.current.ID)
	}

	sess, err := s.m.start(ctx, s.w, user)
	if err != nil {
		return err
	}
	s.current = &sess
	return nil
}

// End signs the request out. It is safe to call when nobody is signed in.
func (s *Scope) End(ctx context.Context) {
	if s.m == nil {
		return
	}
	if s.current != nil {
		if err := s.m.Store.Delete(ctx, s.current.ID); err != nil {
			slogx.FromContext(ctx).Error("session delete failed", "error", err)
		}
		s.current = nil
	}
	s.m.clearCookie(s.w)
}
