package views

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"ese-registration-workers/internal/common/database"
	"ese-registration-workers/internal/common/logger"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls atomic.Int32
	rows  []string
	err   error
}

func (f *countingFetcher) fetch(context.Context) ([]string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.rows...), nil
}

func TestRows_LazyLoadThenCached(t *testing.T) {
	f := &countingFetcher{rows: []string{"a", "b"}}
	s := NewSnapshot("test", f.fetch, logger.NewTestLogger(t))

	rows, err := s.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rows)

	_, err = s.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestRows_ReturnsCopy(t *testing.T) {
	f := &countingFetcher{rows: []string{"a"}}
	s := NewSnapshot("test", f.fetch, logger.NewTestLogger(t))

	rows, err := s.Rows(context.Background())
	require.NoError(t, err)
	rows[0] = "mutated"

	again, err := s.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again)
}

func TestInvalidate_RefetchesOnNextRead(t *testing.T) {
	f := &countingFetcher{rows: []string{"a"}}
	s := NewSnapshot("test", f.fetch, logger.NewTestLogger(t))

	_, err := s.Rows(context.Background())
	require.NoError(t, err)

	f.rows = []string{"a", "b"}
	s.Invalidate()

	rows, err := s.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rows)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestRows_FailedRefetchKeepsPreviousRows(t *testing.T) {
	f := &countingFetcher{rows: []string{"a"}}
	s := NewSnapshot("test", f.fetch, logger.NewTestLogger(t))

	_, err := s.Rows(context.Background())
	require.NoError(t, err)

	f.err = errors.New("connection reset")
	s.Invalidate()

	rows, err := s.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, rows)
}

func TestRows_FirstLoadFailureIsReturned(t *testing.T) {
	f := &countingFetcher{err: errors.New("connection refused")}
	s := NewSnapshot("test", f.fetch, logger.NewTestLogger(t))

	_, err := s.Rows(context.Background())

	assert.EqualError(t, err, "connection refused")
}

func TestAttach_RefetchesOnAnyChange(t *testing.T) {
	source := make(chan *pq.Notification)
	feed := database.NewChangeFeed(source, logger.NewTestLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		feed.Run(ctx)
		close(done)
	}()

	f := &countingFetcher{rows: []string{"a"}}
	s := NewSnapshot("test", f.fetch, logger.NewTestLogger(t))
	detach := s.Attach(feed, database.TableRegistrations)

	f.rows = []string{"a", "b"}
	source <- &pq.Notification{Channel: "table_changes", Extra: `{"table":"registrations","op":"UPDATE"}`}
	source <- &pq.Notification{Channel: "table_changes", Extra: `{"table":"categories","op":"INSERT"}`}

	// the unbuffered send of the second notification returns only after the first was dispatched
	assert.Equal(t, int32(1), f.calls.Load())

	rows, err := s.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rows)
	assert.Equal(t, int32(1), f.calls.Load())

	detach()
	source <- &pq.Notification{Channel: "table_changes", Extra: `{"table":"registrations","op":"DELETE"}`}
	cancel()
	<-done
	assert.Equal(t, int32(1), f.calls.Load())
}

// blockingFetcher returns the committed value it saw; its first fetch waits on
// release after reading.
type blockingFetcher struct {
	committed atomic.Int32
	first     atomic.Bool
	entered   chan struct{}
	release   chan struct{}
}

func newBlockingFetcher() *blockingFetcher {
	f := &blockingFetcher{entered: make(chan struct{}), release: make(chan struct{})}
	f.first.Store(true)
	return f
}

func (f *blockingFetcher) fetch(context.Context) ([]int, error) {
	rows := []int{int(f.committed.Load())}
	if f.first.CompareAndSwap(true, false) {
		close(f.entered)
		<-f.release
	}
	return rows, nil
}

func TestInvalidate_DiscardsFetchStartedBeforeWrite(t *testing.T) {
	f := newBlockingFetcher()
	s := NewSnapshot("test", f.fetch, logger.NewTestLogger(t))

	done := make(chan error, 1)
	go func() { done <- s.Refresh(context.Background()) }()
	<-f.entered

	f.committed.Store(1)
	s.Invalidate()
	close(f.release)
	require.NoError(t, <-done)

	rows, err := s.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, rows)
}

type handlerCapture struct {
	handler database.ChangeHandler
}

func (c *handlerCapture) Subscribe(_ string, handler database.ChangeHandler) func() {
	c.handler = handler
	return func() {}
}

func TestAttach_ChangeDoesNotJoinFetchStartedBeforeWrite(t *testing.T) {
	f := newBlockingFetcher()
	s := NewSnapshot("test", f.fetch, logger.NewTestLogger(t))
	feed := &handlerCapture{}
	s.Attach(feed, database.TableRegistrations)

	done := make(chan error, 1)
	go func() { done <- s.Refresh(context.Background()) }()
	<-f.entered

	f.committed.Store(1)
	feed.handler(database.ChangeEvent{Table: database.TableRegistrations, Op: "INSERT"})

	close(f.release)
	require.NoError(t, <-done)

	rows, err := s.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, rows)
}
