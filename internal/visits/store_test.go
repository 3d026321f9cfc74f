package visits

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIPIsStableAndOpaque(t *testing.T) {
	s := newTestStore(t)
	h := s.HashIP("203.0.113.7")
	require.Len(t, h, 16)
	require.Equal(t, h, s.HashIP("203.0.113.7"))
	require.NotEqual(t, h, s.HashIP("203.0.113.8"))
	require.NotContains(t, h, "203")
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

	visits := []Visit{
		{IP: "a", Path: "/", At: now.Add(-time.Hour)},
		{IP: "a", Path: "/projects", Filter: "AI", At: now.Add(-2 * time.Hour)},
		{IP: "b", Path: "/projects", Filter: "AI", At: now.Add(-20 * time.Hour)},
		{IP: "c", Path: "/projects", Filter: "Python", At: now.AddDate(0, 0, -3)},
		{IP: "d", Path: "/", At: now.AddDate(0, 0, -30)},
	}
	for _, v := range visits {
		require.NoError(t, s.Record(ctx, v))
	}

	st, err := s.Stats(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(5), st.TotalVisits)
	require.Equal(t, int64(4), st.UniqueVisitors)
	require.Equal(t, int64(2), st.VisitsToday)
	require.Equal(t, int64(4), st.VisitsThisWeek)
	require.Equal(t, []Count{{"/projects", 3}, {"/", 2}}, st.TopPaths)
	require.Equal(t, []Count{{"AI", 2}, {"Python", 1}}, st.TopFilters)
}

func TestStatsEmpty(t *testing.T) {
	st, err := newTestStore(t).Stats(context.Background(), time.Now())
	require.NoError(t, err)
	require.Zero(t, st.TotalVisits)
	require.Empty(t, st.TopPaths)
	require.NotNil(t, st.TopFilters)
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now()

	require.NoError(t, s.Record(ctx, Visit{IP: "a", Path: "/", At: now.AddDate(-2, 0, 0)}))
	require.NoError(t, s.Record(ctx, Visit{IP: "b", Path: "/", At: now}))

	n, err := s.Cleanup(ctx, now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	st, err := s.Stats(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), st.TotalVisits)
}

func TestNewOnDiskReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "visits.db")
	s, err := New(path, "")
	require.NoError(t, err)
	require.NoError(t, s.Record(context.Background(), Visit{IP: "a", Path: "/"}))
	require.NoError(t, s.Close())

	s, err = New(path, "")
	require.NoError(t, err)
	defer s.Close()
	st, err := s.Stats(context.Background(), time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(1), st.TotalVisits)
}

func TestRunCleanupPurgesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newTestStore(t)
	now := time.Now()

	require.NoError(t, s.Record(ctx, Visit{IP: "a", Path: "/", At: now.Add(-48 * time.Hour)}))
	require.NoError(t, s.Record(ctx, Visit{IP: "b", Path: "/", At: now}))

	done := make(chan struct{})
	go func() {
		s.RunCleanup(ctx, 24*time.Hour, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
		close(done)
	}()

	require.Eventually(t, func() bool {
		st, err := s.Stats(context.Background(), now)
		return err == nil && st.TotalVisits == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}

func TestStartCleanupStopsBeforeClose(t *testing.T) {
	s, err := NewMemory()
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, s.Record(context.Background(), Visit{IP: "a", Path: "/", At: now.Add(-48 * time.Hour)}))

	stop := s.StartCleanup(context.Background(), 24*time.Hour, time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Eventually(t, func() bool {
		st, err := s.Stats(context.Background(), now)
		return err == nil && st.TotalVisits == 0
	}, time.Second, 5*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop did not wait for the cleanup loop")
	}
	require.NoError(t, s.Close())
}
