package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type tokenCleanupStub struct {
	calls atomic.Int64
	err   error
}

func (s *tokenCleanupStub) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	s.calls.Add(1)
	return 0, s.err
}

func waitForStop(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop after cancellation")
	}
}

func TestRunTokenCleanupRunsUntilCancelled(t *testing.T) {
	stub := &tokenCleanupStub{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		RunTokenCleanup(ctx, stub, 2*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return stub.calls.Load() >= 3 },
		time.Second, time.Millisecond)

	cancel()
	waitForStop(t, done)
}

func TestRunTokenCleanupKeepsTickingAfterErrors(t *testing.T) {
	stub := &tokenCleanupStub{err: errors.New("connection refused")}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		RunTokenCleanup(ctx, stub, 2*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return stub.calls.Load() >= 2 },
		time.Second, time.Millisecond)

	cancel()
	waitForStop(t, done)
}
