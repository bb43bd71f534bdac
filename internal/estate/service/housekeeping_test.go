package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/estate/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct{ calls atomic.Int32 }

func (c *countingSweeper) Sweep(context.Context) (int, error) {
	c.calls.Add(1)
	return 0, nil
}

func TestHousekeepingSweepsUntilStopped(t *testing.T) {
	sweeper := &countingSweeper{}
	hk := NewHousekeepingService(sweeper, slogx.Discard(), 5*time.Millisecond)

	hk.Start()
	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	hk.Stop()

	after := sweeper.calls.Load()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, after, sweeper.calls.Load())
}

func TestHousekeepingDefaultInterval(t *testing.T) {
	hk := NewHousekeepingService(&countingSweeper{}, slogx.Discard(), 0)
	require.Equal(t, 10*time.Minute, hk.Interval)
}
