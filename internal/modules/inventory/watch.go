package inventory

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// NotifyChannel is the Postgres channel the inventory_items trigger posts to
// (see migrations/schema.sql).
const NotifyChannel = "inventory_changed"

// Watcher bridges Postgres NOTIFY events into the service's subscriber set,
// so writes from other processes (or psql) reach dashboard subscribers too.
type Watcher struct {
	listener *pq.Listener
	service  Service
}

// NewWatcher opens a dedicated listening connection to the database.
func NewWatcher(dsn string, service Service) *Watcher {
	listener := pq.NewListener(dsn, 5*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Warn().Err(err).Int("event", int(ev)).Msg("inventory watcher: listener event")
		}
	})
	return &Watcher{listener: listener, service: service}
}

// Run blocks, forwarding each notification as a full-snapshot broadcast,
// until ctx is cancelled. Consecutive notifications between deliveries
// collapse into one resync since every delivery is already the full list.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.listener.Listen(NotifyChannel); err != nil {
		return err
	}
	defer w.listener.Close()

	log.Info().Str("channel", NotifyChannel).Msg("inventory watcher: listening")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-w.listener.Notify:
			// n is nil when the connection was re-established; resync anyway
			if n != nil {
				log.Debug().Str("payload", n.Extra).Msg("inventory watcher: change notification")
			}
			w.service.NotifyChanged(ctx)
		case <-time.After(90 * time.Second):
			if err := w.listener.Ping(); err != nil {
				log.Warn().Err(err).Msg("inventory watcher: ping failed")
			}
		}
	}
}
