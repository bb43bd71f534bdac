// Package session ties browsers to signed-in users.
//
// The browser holds a signed token naming a server-side session record. A
// request is authenticated only when the token verifies and its record is
// still present and unexpired, so ending a session takes effect immediately.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/estate/internal/estate/domain"
	"github.com/aussiebroadwan/estate/pkg/cryptox"
	"github.com/aussiebroadwan/estate/pkg/jwtx"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

const (
	CookieName = "estate_session"
	Issuer     = "estate"
)

type Config struct {
	Secret []byte
	TTL    time.Duration
	Secure bool // set the Secure cookie attribute
}

type Manager struct {
	Store    Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	TTL      time.Duration
	Secure   bool
	Now      func() time.Time
}

// NewManager returns a Manager backed by store. The secret must be at least
// jwtx.MinSecretSize bytes.
func NewManager(store Store, cfg Config) (*Manager, error) {
	signer, err := jwtx.NewSignerHS256(cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("session signer: %w", err)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	return &Manager{
		Store:    store,
		Signer:   signer,
		Verifier: jwtx.NewVerifierHS256(cfg.Secret, Issuer),
		TTL:      ttl,
		Secure:   cfg.Secure,
		Now:      time.Now,
	}, nil
}

func (m *Manager) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// Sweep drops expired records.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	return m.Store.DeleteExpired(ctx, m.now())
}

// Middleware resolves the session cookie once per request and makes the
// result available through FromContext.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope := &Scope{m: m, w: w}

		if sess, ok := m.resolve(r); ok {
			scope.current = &sess
			r = r.WithContext(slogx.With(r.Context(), "user_id", sess.UserID))
		} else if _, err := r.Cookie(CookieName); err == nil {
			// Stale or forged cookie: drop it so it is not presented again.
			m.clearCookie(w)
		}

		next.ServeHTTP(w, r.WithContext(withScope(r.Context(), scope)))
	})
}

func (m *Manager) resolve(r *http.Request) (domain.Session, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return domain.Session{}, false
	}

	log := slogx.FromContext(r.Context())

	claims, err := m.Verifier.Verify(c.Value)
	if err != nil {
		log.Debug("session cookie rejected", "error", err)
		return domain.Session{}, false
	}

	sess, err := m.Store.Get(r.Context(), claims.SID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error("session lookup failed", "error", err)
		}
		return domain.Session{}, false
	}
	if sess.UserID != claims.Subject || sess.Expired(m.now()) {
		return domain.Session{}, false
	}
	return sess, true
}

func (m *Manager) start(ctx context.Context, w http.ResponseWriter, user domain.User) (domain.Session, error) {
	sid, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return domain.Session{}, err
	}

	now := m.now()
	sess := domain.Session{
		ID:        sid,
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.TTL),
	}

	token, err := m.Signer.Sign(jwtx.NewSessionClaims(user.ID, sid, user.Username, Issuer, m.TTL, now))
	if err != nil {
		return domain.Session{}, fmt.Errorf("sign session: %w", err)
	}
	if err := m.Store.Create(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("store session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.TTL / time.Second),
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
