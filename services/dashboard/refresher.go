package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"travel-portal/logger"
	"travel-portal/types/assistance"
)

var ErrRefreshInProgress = errors.New("assistance refresh already in progress")

// TicketSource lists every assistance ticket.
type TicketSource interface {
	ListTickets(ctx context.Context, token string) ([]assistance.Request, error)
}

// Refresher keeps a recent copy of the assistance queue for the admin
// table, polling with a service token. A nil Refresher is valid and
// never has a snapshot.
type Refresher struct {
	source   TicketSource
	token    string
	interval time.Duration

	running atomic.Bool

	mu          sync.RWMutex
	tickets     []assistance.Request
	refreshedAt time.Time
	stale       bool
	// generation counts invalidations; a fetch that overlaps one stays stale
	generation uint64

	now func() time.Time
}

func NewRefresher(source TicketSource, serviceToken string, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Refresher{
		source:   source,
		token:    serviceToken,
		interval: interval,
		now:      time.Now,
	}
}

// Run refreshes immediately and then every interval until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	logger.Info(fmt.Sprintf("Assistance refresher started, interval %s", r.interval))
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Assistance refresher stopped")
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	if err := r.Refresh(ctx); err != nil && !errors.Is(err, ErrRefreshInProgress) && ctx.Err() == nil {
		logger.Warning("Assistance refresh failed: " + err.Error())
	}
}

// Refresh fetches the queue once. A call made while another is running
// returns ErrRefreshInProgress without fetching.
func (r *Refresher) Refresh(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrRefreshInProgress
	}
	defer r.running.Store(false)

	r.mu.RLock()
	started := r.generation
	r.mu.RUnlock()

	tickets, err := r.source.ListTickets(ctx, r.token)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.tickets = tickets
	r.refreshedAt = r.now()
	r.stale = r.generation != started
	r.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the queue when it was refreshed within two
// intervals and has not been invalidated since.
func (r *Refresher) Snapshot() ([]assistance.Request, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stale || r.refreshedAt.IsZero() || r.now().Sub(r.refreshedAt) > 2*r.interval {
		return nil, false
	}
	out := make([]assistance.Request, len(r.tickets))
	copy(out, r.tickets)
	return out, true
}

// Invalidate drops the snapshot after a ticket is changed through us.
func (r *Refresher) Invalidate() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stale = true
	r.generation++
	r.mu.Unlock()
}
