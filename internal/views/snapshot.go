// Package views keeps in-memory copies of whole tables that are re-fetched whenever
// the table changes.
package views

import (
	"context"
	"strconv"
	"sync"
	"time"

	"ese-registration-workers/internal/common/database"
	"ese-registration-workers/internal/common/logger"

	"golang.org/x/sync/singleflight"
)

const (
	defaultRefreshTimeout = 10 * time.Second
	refreshAttempts       = 3
)

// Fetcher loads the full row set.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Subscriber is satisfied by *database.ChangeFeed.
type Subscriber interface {
	Subscribe(table string, handler database.ChangeHandler) func()
}

// Snapshot holds the last successfully fetched rows of one query. A failed
// refetch keeps the previous rows.
type Snapshot[T any] struct {
	name           string
	fetch          Fetcher[T]
	logger         logger.Logger
	refreshTimeout time.Duration

	group singleflight.Group

	mu      sync.RWMutex
	rows    []T
	loaded  bool
	stale   bool
	version uint64
}

func NewSnapshot[T any](name string, fetch Fetcher[T], log logger.Logger) *Snapshot[T] {
	return &Snapshot[T]{
		name:           name,
		fetch:          fetch,
		logger:         log.WithFields(map[string]interface{}{"view": name}),
		refreshTimeout: defaultRefreshTimeout,
	}
}

// Refresh refetches the rows. Concurrent calls for the same version share one
// fetch. Rows from a fetch that overlapped an Invalidate are discarded and the
// fetch is repeated, up to refreshAttempts times.
func (s *Snapshot[T]) Refresh(ctx context.Context) error {
	for attempt := 0; attempt < refreshAttempts; attempt++ {
		s.mu.RLock()
		version := s.version
		s.mu.RUnlock()

		stored, err, _ := s.group.Do(refreshKey(version), func() (interface{}, error) {
			return s.load(ctx, version)
		})
		if err != nil {
			return err
		}
		if stored.(bool) {
			return nil
		}
	}
	s.logger.Warn("view kept changing during refresh, leaving it stale", map[string]interface{}{
		"attempts": refreshAttempts,
	})
	return nil
}

func (s *Snapshot[T]) load(ctx context.Context, version uint64) (bool, error) {
	rows, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("view refresh failed, keeping previous rows", map[string]interface{}{
			"error": err.Error(),
		})
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != version {
		return false, nil
	}
	s.rows = rows
	s.loaded = true
	s.stale = false
	return true, nil
}

func refreshKey(version uint64) string {
	return "refresh-" + strconv.FormatUint(version, 10)
}

// Rows returns a copy of the current rows, fetching first when nothing has been
// loaded yet or the view was invalidated. If that fetch fails, previously loaded
// rows are returned; with nothing loaded the error is returned.
func (s *Snapshot[T]) Rows(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	fresh := s.loaded && !s.stale
	s.mu.RUnlock()

	if !fresh {
		if err := s.Refresh(ctx); err != nil {
			s.mu.RLock()
			loaded := s.loaded
			s.mu.RUnlock()
			if !loaded {
				return nil, err
			}
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.rows...), nil
}

// Invalidate forces the next Rows call to refetch. A fetch already in flight
// can no longer store its rows.
func (s *Snapshot[T]) Invalidate() {
	s.mu.Lock()
	version := s.version
	s.version++
	s.stale = true
	s.mu.Unlock()
	s.group.Forget(refreshKey(version))
}

// Attach refetches the whole view on every change to table, whatever the row.
// The returned func detaches it.
func (s *Snapshot[T]) Attach(feed Subscriber, table string) func() {
	return feed.Subscribe(table, func(ev database.ChangeEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), s.refreshTimeout)
		defer cancel()

		s.logger.Debug("table changed, refreshing view", map[string]interface{}{
			"table": ev.Table,
			"op":    ev.Op,
		})
		s.Invalidate()
		_ = s.Refresh(ctx)
	})
}
