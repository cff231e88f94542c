package reconciler

import (
	"context"
	"time"

	"github.com/posk43/api-final-yatube/internal/config"
	"github.com/posk43/api-final-yatube/internal/service"
	pkglog "github.com/posk43/api-final-yatube/pkg/log"
	"github.com/posk43/api-final-yatube/pkg/pubsub"
)

// Reconciler keeps the group cache warm. It reloads the catalog on a
// fixed interval and, when an event bus is wired, immediately on group
// events published by the catalog's owning service.
type Reconciler struct {
	groups service.GroupService
	bus    pubsub.Subscriber
	cfg    config.ReconcilerConfig
	quit   chan struct{}
	doneCh chan struct{}
}

// New creates a new Reconciler. bus may be nil, leaving only the
// interval-based refresh.
func New(groups service.GroupService, bus pubsub.Subscriber, cfg config.ReconcilerConfig) *Reconciler {
	return &Reconciler{
		groups: groups,
		bus:    bus,
		cfg:    cfg,
		quit:   make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start launches the reconciler in a background goroutine.
func (r *Reconciler) Start(ctx context.Context) {
	go r.run(ctx)
}

// Stop signals the reconciler to stop and returns immediately.
// Call Done() to wait for it to exit.
func (r *Reconciler) Stop() {
	close(r.quit)
}

// Done returns a channel that is closed when the reconciler has fully
// stopped.
func (r *Reconciler) Done() <-chan struct{} {
	return r.doneCh
}

func (r *Reconciler) run(ctx context.Context) {
	defer close(r.doneCh)

	interval := r.cfg.Interval
	if interval <= 0 {
		interval = 60 * time.Second
	}

	// Receiving from a nil channel blocks forever, so an unwired bus
	// simply never fires the event branch.
	var eventCh <-chan *pubsub.Event
	if r.bus != nil {
		ch, err := r.bus.SubscribePattern(ctx, pubsub.ContentPattern(pubsub.EntityGroup))
		if err != nil {
			l := pkglog.L()
			l.Warn().Err(err).Msg("reconciler: group event subscription failed, interval refresh only")
		} else {
			eventCh = ch
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.reconcile(ctx)
		case _, ok := <-eventCh:
			if !ok {
				eventCh = nil
				continue
			}
			r.reconcile(ctx)
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context) {
	l := pkglog.L()

	if err := r.groups.Refresh(ctx); err != nil {
		l.Error().Err(err).Msg("reconciler: failed to refresh group cache")
		return
	}

	l.Debug().Msg("reconciler: group cache refreshed")
}
