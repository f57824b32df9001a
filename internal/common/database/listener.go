package database

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/metrics"

	"github.com/lib/pq"
)

// OpReconnect is delivered to every subscriber after the listener connection was
// re-established; notifications sent while it was down are lost.
const OpReconnect = "RECONNECT"

// ChangeEvent is the payload published by the notify_table_change trigger.
type ChangeEvent struct {
	Table string `json:"table"`
	Op    string `json:"op"`
}

type ChangeHandler func(ChangeEvent)

// ChangeFeed fans Postgres notifications out to per-table subscribers.
type ChangeFeed struct {
	mu       sync.RWMutex
	handlers map[string]map[uint64]ChangeHandler
	nextID   uint64

	source <-chan *pq.Notification
	closer io.Closer
	logger logger.Logger
}

func NewChangeFeed(source <-chan *pq.Notification, log logger.Logger) *ChangeFeed {
	return &ChangeFeed{
		handlers: make(map[string]map[uint64]ChangeHandler),
		source:   source,
		logger:   log.WithFields(map[string]interface{}{"component": "change-feed"}),
	}
}

// ListenPostgres opens a dedicated LISTEN connection on channel.
func ListenPostgres(dsn, channel string, log logger.Logger) (*ChangeFeed, error) {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Warn("change listener connection problem", map[string]interface{}{
				"event": int(ev),
				"error": err.Error(),
			})
		}
	}

	listener := pq.NewListener(dsn, 2*time.Second, time.Minute, reportProblem)
	if err := listener.Listen(channel); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("listen on %s: %w", channel, err)
	}

	feed := NewChangeFeed(listener.Notify, log)
	feed.closer = listener
	return feed, nil
}

// Subscribe registers handler for changes to table. The returned func removes it.
func (f *ChangeFeed) Subscribe(table string, handler ChangeHandler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := f.nextID
	if f.handlers[table] == nil {
		f.handlers[table] = make(map[uint64]ChangeHandler)
	}
	f.handlers[table][id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.handlers[table], id)
			if len(f.handlers[table]) == 0 {
				delete(f.handlers, table)
			}
		})
	}
}

// Run dispatches notifications until ctx is cancelled or the source closes.
func (f *ChangeFeed) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-f.source:
			if !ok {
				f.logger.Warn("change feed source closed", nil)
				return
			}
			if n == nil {
				f.broadcastReconnect()
				continue
			}
			f.dispatch(n)
		}
	}
}

func (f *ChangeFeed) dispatch(n *pq.Notification) {
	var ev ChangeEvent
	if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil || ev.Table == "" {
		f.logger.Warn("ignoring malformed change notification", map[string]interface{}{
			"channel": n.Channel,
			"payload": n.Extra,
		})
		return
	}

	metrics.ChangeNotifications.WithLabelValues(ev.Table).Inc()
	for _, h := range f.handlersFor(ev.Table) {
		h(ev)
	}
}

func (f *ChangeFeed) broadcastReconnect() {
	f.mu.RLock()
	tables := make([]string, 0, len(f.handlers))
	for table := range f.handlers {
		tables = append(tables, table)
	}
	f.mu.RUnlock()

	f.logger.Info("change listener reconnected, refreshing all subscribers", nil)
	for _, table := range tables {
		for _, h := range f.handlersFor(table) {
			h(ChangeEvent{Table: table, Op: OpReconnect})
		}
	}
}

// handlersFor snapshots the subscriber list so handlers run without the lock held.
func (f *ChangeFeed) handlersFor(table string) []ChangeHandler {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]ChangeHandler, 0, len(f.handlers[table]))
	for _, h := range f.handlers[table] {
		out = append(out, h)
	}
	return out
}

func (f *ChangeFeed) Close() error {
	if f.closer != nil {
		return f.closer.Close()
	}
	return nil
}
