package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"travel-portal/types/assistance"
	"travel-portal/types/booking"
	"travel-portal/types/review"
	"travel-portal/types/travelpackage"
	"travel-portal/types/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func TestSummarizeUser(t *testing.T) {
	bookings := []booking.Booking{
		{ID: "past", StartDate: "2026-01-10", Status: booking.StatusCompleted, TotalAmount: 1000},
		{ID: "later", StartDate: "2026-12-20", Status: booking.StatusConfirmed, TotalAmount: 2500.5},
		{ID: "soon", StartDate: "2026-10-14", Status: booking.StatusPending, TotalAmount: 900},
		{ID: "dropped", StartDate: "2026-11-01", Status: booking.StatusCancelled, TotalAmount: 700},
	}
	tickets := []assistance.Request{{Status: "Pending"}, {Status: "RESOLVED"}, {Status: "pending"}}

	s := SummarizeUser(bookings, tickets, 3, at)

	assert.Equal(t, 3500.5, s.TotalSpent)
	require.Len(t, s.Upcoming, 2)
	assert.Equal(t, "soon", s.Upcoming[0].ID)
	assert.Equal(t, "later", s.Upcoming[1].ID)
	assert.Equal(t, 1, s.CountsByStatus[booking.StatusCancelled])
	assert.Equal(t, 2, s.OpenTickets)
	assert.Equal(t, int64(3), s.WishlistSize)
}

func TestSummarizeUser_Empty(t *testing.T) {
	s := SummarizeUser(nil, nil, 0, at)

	assert.NotNil(t, s.Bookings)
	assert.Empty(t, s.Upcoming)
	assert.Equal(t, 0, s.CountsByStatus[booking.StatusPending])
}

func TestSummarizeAdmin(t *testing.T) {
	users := []user.User{{Role: "USER"}, {Role: "USER"}, {Role: "ADMIN"}}
	packages := []travelpackage.Package{{ID: "p-1"}, {ID: "p-2"}}
	bookings := []booking.Booking{
		{Status: booking.StatusConfirmed, TotalAmount: 1000, CreatedAt: "2026-10-01T08:00:00Z"},
		{Status: booking.StatusCompleted, TotalAmount: 500, CreatedAt: "2026-09-30T23:59:59Z"},
		{Status: booking.StatusPending, TotalAmount: 800, CreatedAt: "2026-10-31"},
		{Status: booking.StatusCancelled, TotalAmount: 300},
	}
	reviews := []review.Review{{Rating: 5}}
	tickets := []assistance.Request{{Status: assistance.StatusPending}}

	s := SummarizeAdmin(users, packages, bookings, reviews, tickets, at)

	assert.Equal(t, 3, s.Users)
	assert.Equal(t, 2, s.UsersByRole["USER"])
	assert.Equal(t, 2, s.Packages)
	assert.Equal(t, 4, s.Bookings)
	assert.Equal(t, 2, s.BookingsThisMonth)
	assert.Equal(t, 1500.0, s.Revenue)
	assert.Equal(t, 1, s.Reviews)
	assert.Equal(t, 1, s.PendingTickets)
}

func TestSummarizeAgent(t *testing.T) {
	packages := []travelpackage.Package{{Active: true}, {Active: true}, {Active: false}}
	bookings := []booking.Booking{{Status: booking.StatusPending}, {Status: booking.StatusPending}}
	reviews := []review.Review{{Rating: 5, AgentResponse: "Thanks!"}, {Rating: 4}, {Rating: 4}}

	s := SummarizeAgent(packages, bookings, reviews)

	assert.Equal(t, 2, s.ActivePackages)
	assert.Equal(t, 1, s.InactivePackages)
	assert.Equal(t, 2, s.BookingsByStatus[booking.StatusPending])
	assert.Equal(t, 4.3, s.AverageRating)
	assert.Equal(t, 2, s.UnansweredReviews)
}

type blockingSource struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
}

func (b *blockingSource) ListTickets(ctx context.Context, token string) ([]assistance.Request, error) {
	b.calls.Add(1)
	if b.release != nil {
		<-b.release
	}
	if b.err != nil {
		return nil, b.err
	}
	return []assistance.Request{{ID: "t-1", Status: assistance.StatusPending}}, nil
}

func TestRefresher_NoOverlap(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	r := NewRefresher(src, "svc", time.Minute)

	done := make(chan error, 1)
	go func() { done <- r.Refresh(context.Background()) }()

	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	assert.ErrorIs(t, r.Refresh(context.Background()), ErrRefreshInProgress)

	close(src.release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestRefresher_SnapshotFreshness(t *testing.T) {
	src := &blockingSource{}
	r := NewRefresher(src, "svc", 10*time.Second)
	clock := at
	r.now = func() time.Time { return clock }

	_, ok := r.Snapshot()
	assert.False(t, ok)

	require.NoError(t, r.Refresh(context.Background()))
	tickets, ok := r.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "t-1", tickets[0].ID)

	r.Invalidate()
	_, ok = r.Snapshot()
	assert.False(t, ok)

	require.NoError(t, r.Refresh(context.Background()))
	clock = clock.Add(21 * time.Second)
	_, ok = r.Snapshot()
	assert.False(t, ok)
}

func TestRefresher_InvalidateDuringFetchStaysStale(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	r := NewRefresher(src, "svc", time.Minute)

	done := make(chan error, 1)
	go func() { done <- r.Refresh(context.Background()) }()
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)

	r.Invalidate()
	close(src.release)
	require.NoError(t, <-done)

	_, ok := r.Snapshot()
	assert.False(t, ok, "a fetch that started before the change must not be served")

	require.NoError(t, r.Refresh(context.Background()))
	_, ok = r.Snapshot()
	assert.True(t, ok)
}

func TestRefresher_FailedRefreshKeepsOldSnapshot(t *testing.T) {
	src := &blockingSource{}
	r := NewRefresher(src, "svc", time.Minute)
	require.NoError(t, r.Refresh(context.Background()))

	src.err = errors.New("down")
	assert.Error(t, r.Refresh(context.Background()))

	tickets, ok := r.Snapshot()
	assert.True(t, ok)
	assert.Len(t, tickets, 1)
}

func TestRefresher_RunStopsOnCancel(t *testing.T) {
	src := &blockingSource{}
	r := NewRefresher(src, "svc", 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool { return src.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
}

func TestRefresher_NilIsSafe(t *testing.T) {
	var r *Refresher
	_, ok := r.Snapshot()
	assert.False(t, ok)
	r.Invalidate()
}
