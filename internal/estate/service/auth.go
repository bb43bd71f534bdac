package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/estate/internal/estate/domain"
	"github.com/aussiebroadwan/estate/internal/estate/store"
	"github.com/aussiebroadwan/estate/pkg/cryptox"
	"github.com/aussiebroadwan/estate/pkg/idx"
)

var (
	ErrValidation         = errors.New("validation_failed")
	ErrDuplicateAccount   = errors.New("duplicate_account")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// PasswordHasher is satisfied by *cryptox.PasswordHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) error
}

type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// AuthService registers accounts and checks credentials against the store.
type AuthService struct {
	Store  store.Store
	Hasher PasswordHasher
	Now    func() time.Time

	decoyOnce sync.Once
	decoyHash string
}

func NewAuthService(s store.Store, hasher PasswordHasher) *AuthService {
	return &AuthService{Store: s, Hasher: hasher, Now: time.Now}
}

// Register creates an account. Username and email are trimmed; the password
// is taken as given.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (domain.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return domain.User{}, ErrValidation
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := ensureAbsent(tx.Users().GetUserByUsername(ctx, username)); err != nil {
			return err
		}
		if err := ensureAbsent(tx.Users().GetUserByEmail(ctx, email)); err != nil {
			return err
		}
		return tx.Users().CreateUser(ctx, u)
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.User{}, ErrDuplicateAccount
	case err != nil:
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// ensureAbsent turns a successful lookup into ErrAlreadyExists and a miss
// into nil.
func ensureAbsent(_ domain.User, err error) error {
	switch {
	case err == nil:
		return store.ErrAlreadyExists
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return err
	}
}

// Login returns the account whose email and password match. Unknown emails
// and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		// Same KDF work as a wrong password.
		_ = s.Hasher.Verify(password, s.decoy())
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.Hasher.Verify(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("verify password: %w", err)
	}
	return u, nil
}

func (s *AuthService) decoy() string {
	s.decoyOnce.Do(func() {
		s.decoyHash, _ = s.Hasher.Hash(cryptox.MustGenerateToken(cryptox.TokenSize128))
	})
	return s.decoyHash
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
