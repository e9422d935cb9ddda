package sync

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listsync/remote"
)

func TestSchedulerClampsInterval(t *testing.T) {
	s := NewScheduler(testEngine(&memStore{}, remote.NewMemoryClient()), time.Millisecond, zerolog.Nop())
	assert.Equal(t, MinInterval, s.interval)
}

func TestSchedulerSurvivesFailingCycles(t *testing.T) {
	client := remote.NewMemoryClient()
	client.FailOp = "GetLists"
	client.FailErr = remote.NewAPIError("GetLists", 500, "flaky")
	engine := testEngine(&memStore{}, client)

	s := &Scheduler{engine: engine, interval: 5 * time.Millisecond, log: zerolog.Nop()}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancellation")
	}

	require.GreaterOrEqual(t, client.Calls["GetLists"], 2,
		"failing cycles must not stop subsequent ticks")
}

func TestSchedulerSurvivesPanickingCycles(t *testing.T) {
	client := remote.NewMemoryClient()
	// nil store makes every cycle panic after the remote load
	engine := &Engine{client: client, log: zerolog.Nop(), now: time.Now, newID: func() string { return "x" }}

	s := &Scheduler{engine: engine, interval: 5 * time.Millisecond, log: zerolog.Nop()}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	require.GreaterOrEqual(t, client.Calls["GetLists"], 2,
		"a panicking cycle must not kill the loop")
}

func TestSchedulerStopsOnCancellation(t *testing.T) {
	engine := testEngine(&memStore{}, remote.NewMemoryClient())
	s := &Scheduler{engine: engine, interval: time.Hour, log: zerolog.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not return after cancel")
	}
}
