// Package syncer keeps the local invoice history and the remote collection
// in step.
//
// Writes are local-first: a save must land in the local store before the
// remote push is dispatched, and a failed push never blocks or corrupts the
// local history. Reads pull the remote copy, merge it with the local list
// and persist the result once; any network failure degrades to the
// last-known local list with a non-fatal log.
package syncer

import (
	"context"
	"time"

	"faktur/internal/core"
	"faktur/internal/history"
	"faktur/internal/log"
	"faktur/internal/reconcile"
)

// Remote is the syncer's view of the collection endpoint.
type Remote interface {
	Push(ctx context.Context, deviceID string, records []core.InvoiceRecord) error
	Pull(ctx context.Context, deviceID string) ([]core.InvoiceRecord, error)
}

// Service wires the local store, the reconciler and the remote endpoint.
type Service struct {
	store    *history.Store
	remote   Remote
	deviceID string
	logger   *log.Logger

	pushTimeout time.Duration
	// pushed is signalled after each async push attempt; tests block on it.
	pushed chan struct{}
}

// Option customizes a Service.
type Option func(*Service)

// WithPushTimeout sets the deadline for asynchronous pushes.
func WithPushTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.pushTimeout = d
		}
	}
}

func NewService(store *history.Store, remote Remote, deviceID string, logger *log.Logger, opts ...Option) *Service {
	s := &Service{
		store:       store,
		remote:      remote,
		deviceID:    deviceID,
		logger:      logger.WithComponent(log.ComponentSyncer),
		pushTimeout: 15 * time.Second,
		pushed:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load pulls the remote collection, merges it with the local history and
// persists the merged list once. On any remote failure it falls back to
// the local list.
func (s *Service) Load(ctx context.Context) []core.InvoiceRecord {
	remote, err := s.remote.Pull(ctx, s.deviceID)
	if err != nil {
		s.logger.WarnContext(ctx, "Remote pull failed, using local history",
			log.FieldError, err,
			log.FieldDeviceID, s.deviceID,
			log.FieldOperation, log.OpPull)
		return s.store.List()
	}

	merged := reconcile.Merge(s.store.List(), remote)
	if err := s.store.Replace(merged); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist merged history",
			log.FieldError, err,
			log.FieldOperation, log.OpMerge)
	}
	return merged
}

// Save appends the record locally, then dispatches a fire-and-forget push
// of the whole list. The local write always completes (or fails) first.
func (s *Service) Save(ctx context.Context, record core.InvoiceRecord) error {
	if err := s.store.Append(record); err != nil {
		return err
	}

	records := s.store.List()
	go func() {
		pushCtx, cancel := context.WithTimeout(context.Background(), s.pushTimeout)
		defer cancel()
		if err := s.remote.Push(pushCtx, s.deviceID, records); err != nil {
			s.logger.Warn("Remote push failed, local history unaffected",
				log.FieldError, err,
				log.FieldDeviceID, s.deviceID,
				log.FieldRecords, len(records),
				log.FieldOperation, log.OpPush)
		}
		select {
		case s.pushed <- struct{}{}:
		default:
		}
	}()
	return nil
}

// PushNow synchronously pushes the current local history, used by the sync
// agent where fire-and-forget is not wanted.
func (s *Service) PushNow(ctx context.Context) error {
	return s.remote.Push(ctx, s.deviceID, s.store.List())
}

// WaitPush blocks until an async push attempt finishes or the timeout
// elapses. Intended for tests and orderly shutdown.
func (s *Service) WaitPush(timeout time.Duration) bool {
	select {
	case <-s.pushed:
		return true
	case <-time.After(timeout):
		return false
	}
}
