package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
)

func testBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
	})
}

func emptySource(name string) snapshotSource {
	return snapshotSource{
		name:    name,
		breaker: testBreaker(name),
		fetch:   func(ctx context.Context, out interface{}) error { return nil },
	}
}

func newSnapshotService(clientDocs []models.Client, tasksFetch fetchFunc, tasksCalls *int) *DashboardService {
	clientsFetch := func(ctx context.Context, out interface{}) error {
		*out.(*[]models.Client) = clientDocs
		return nil
	}
	return &DashboardService{
		clients:  snapshotSource{name: "clients", breaker: testBreaker("clients"), fetch: clientsFetch},
		leads:    emptySource("leads"),
		projects: emptySource("projects"),
		tasks: snapshotSource{
			name:    "tasks",
			breaker: testBreaker("tasks"),
			fetch: func(ctx context.Context, out interface{}) error {
				*tasksCalls++
				return tasksFetch(ctx, out)
			},
		},
		campaigns: emptySource("campaigns"),
		team:      emptySource("team"),
	}
}

func TestSnapshot_FailedSourceDegradesToEmpty(t *testing.T) {
	clients := []models.Client{{CompanyName: "Acme"}, {CompanyName: "Globex"}}
	calls := 0
	s := newSnapshotService(clients, func(ctx context.Context, out interface{}) error {
		return errors.New("decode failed")
	}, &calls)

	snap := s.snapshot(context.Background())

	assert.Len(t, snap.Clients, 2)
	assert.Empty(t, snap.Tasks)
}

func TestSnapshot_OpenBreakerTripsOnlyItsOwnSource(t *testing.T) {
	clients := []models.Client{{CompanyName: "Acme"}}
	calls := 0
	s := newSnapshotService(clients, func(ctx context.Context, out interface{}) error {
		return errors.New("decode failed")
	}, &calls)

	// Four consecutive failures open the tasks breaker.
	for i := 0; i < 4; i++ {
		s.snapshot(context.Background())
	}
	require.Equal(t, gobreaker.StateOpen, s.tasks.breaker.State())
	require.Equal(t, 4, calls)

	snap := s.snapshot(context.Background())

	// The open breaker short-circuits tasks reads without touching the
	// other sources.
	assert.Equal(t, 4, calls)
	assert.Empty(t, snap.Tasks)
	assert.Len(t, snap.Clients, 1)
	assert.Equal(t, gobreaker.StateClosed, s.clients.breaker.State())
}

func TestGetOverview_AllSourcesDownYieldsZeroes(t *testing.T) {
	calls := 0
	s := newSnapshotService(nil, func(ctx context.Context, out interface{}) error {
		return errors.New("down")
	}, &calls)
	s.clients.fetch = func(ctx context.Context, out interface{}) error { return errors.New("down") }

	overview := s.GetOverview(context.Background(), time.Now())

	assert.Equal(t, 0, overview.Stats.Clients.Total)
	assert.Equal(t, 0, overview.Stats.Tasks.Total)
	assert.Empty(t, overview.UpcomingTasks)
	assert.Empty(t, overview.RecentActivity)
}
