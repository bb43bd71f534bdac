// Package storetest holds the behaviour every store driver must share.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/estate/internal/estate/domain"
	"github.com/aussiebroadwan/estate/internal/estate/store"
	"github.com/aussiebroadwan/estate/pkg/idx"
	"github.com/stretchr/testify/require"
)

// NewUser returns a user with a fresh id and the given username/email.
func NewUser(username, email string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

// Run exercises a freshly migrated, empty store. newStore is called once per
// subtest.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("CreateAndLookup", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		u := NewUser("alice", "alice@example.com")
		require.NoError(t, s.Users().CreateUser(ctx, u))

		byEmail, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, byEmail.ID)
		require.Equal(t, "alice", byEmail.Username)
		require.Equal(t, u.PasswordHash, byEmail.PasswordHash)
		require.WithinDuration(t, u.CreatedAt, byEmail.CreatedAt, time.Second)

		byName, err := s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, u.ID, byName.ID)

		byID, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", byID.Email)

		n, err := s.Users().Count(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})

	t.Run("LookupIsCaseSensitive", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Users().CreateUser(ctx, NewUser("alice", "alice@example.com")))

		_, err := s.Users().GetUserByEmail(ctx, "ALICE@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Users().GetUserByUsername(ctx, "Alice")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("MissingIsNotFound", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("DuplicateUsernameOrEmail", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Users().CreateUser(ctx, NewUser("alice", "alice@example.com")))

		err := s.Users().CreateUser(ctx, NewUser("alice", "other@example.com"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		err = s.Users().CreateUser(ctx, NewUser("bob", "alice@example.com"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		n, err := s.Users().Count(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})

	t.Run("WithTxRollsBack", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		boom := errors.New("boom")

		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().CreateUser(ctx, NewUser("carol", "carol@example.com")); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = s.Users().GetUserByUsername(ctx, "carol")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("WithTxCommits", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Users().CreateUser(ctx, NewUser("dave", "dave@example.com"))
		})
		require.NoError(t, err)

		_, err = s.Users().GetUserByUsername(ctx, "dave")
		require.NoError(t, err)
	})

	t.Run("ConcurrentDuplicatesCreateOne", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const workers = 8
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			created  int
			rejected int
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.Users().CreateUser(ctx, NewUser("erin", "erin@example.com"))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					created++
				case errors.Is(err, store.ErrAlreadyExists):
					rejected++
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 1, created)
		require.Equal(t, workers-1, rejected)
	})

	t.Run("Ping", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Ping(context.Background()))
	})
}
