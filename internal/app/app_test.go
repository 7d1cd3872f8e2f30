package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Freeeeeet/labbooking_bot/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingCompleter struct {
	calls atomic.Int32
	err   error
}

func (c *countingCompleter) CompletePastBookings(context.Context) (int64, error) {
	c.calls.Add(1)
	return 0, c.err
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	completer := &countingCompleter{}
	s := NewScheduler(completer, 10*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return completer.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()

	calls := completer.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, completer.calls.Load(), "no runs after Stop")
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	completer := &countingCompleter{err: errors.New("db down")}
	s := NewScheduler(completer, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return completer.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		logger, err := NewLogger(env)
		require.NoError(t, err, env)
		assert.NotNil(t, logger)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	data, err := migrations.FS.ReadFile("00001_init.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	assert.Contains(t, sql, "bookings_active_slot_idx")
	assert.Contains(t, sql, "WHERE status <> 'canceled'")
}
