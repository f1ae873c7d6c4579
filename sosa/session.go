package sosa

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/c360studio/sosagraph/export"
	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/store"
	"github.com/cayleygraph/quad"
)

// Session owns the store shared by every entity it creates.
type Session struct {
	store  store.Store
	alloc  *identifier.Allocator
	clock  func() time.Time
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	epoch  uint64
}

// Option configures a Session.
type Option func(*Session)

// WithStore sets the backing store. Defaults to a fresh store.Memory.
func WithStore(st store.Store) Option {
	return func(s *Session) {
		if st != nil {
			s.store = st
		}
	}
}

// WithAllocator sets the identifier allocator. Defaults to blank nodes.
func WithAllocator(a *identifier.Allocator) Option {
	return func(s *Session) {
		if a != nil {
			s.alloc = a
		}
	}
}

// WithClock sets the time source for result times.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates a session with its own graph.
func NewSession(opts ...Option) *Session {
	s := &Session{
		alloc:  &identifier.Allocator{},
		clock:  func() time.Time { return time.Now().UTC() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = store.NewMemory(store.WithLogger(s.logger))
	}
	return s
}

// Store returns the backing store.
func (s *Session) Store() store.Store {
	return s.store
}

// Serialize renders the current graph.
func (s *Session) Serialize(format export.Format, opts ...export.Option) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	return export.Serialize(s.store, format, opts...)
}

// Write streams the current graph to w.
func (s *Session) Write(w io.Writer, format export.Format, opts ...export.Option) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return export.Write(w, s.store, format, opts...)
}

// Reset empties the graph. Entities created before the reset are stale:
// their accessors keep working, but every operation that would write
// triples for them returns ErrStaleEntity. Rebuild them after a reset.
func (s *Session) Reset() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if r, ok := s.store.(interface{ Reset() }); ok {
		r.Reset()
	} else if err := s.store.Retract(s.store.Triples()...); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	s.mu.Lock()
	s.epoch++
	s.mu.Unlock()
	s.logger.Debug("Reset session graph")
	return nil
}

// Close disposes of the session. Further operations return ErrSessionClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Session) checkOpen() error {
	return s.live()
}

// live checks that the session is open and that every entity among parts
// was created since the last reset. Refs carry no epoch and always pass.
func (s *Session) live(parts ...Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	for _, n := range parts {
		if isNilNode(n) {
			continue
		}
		if st, ok := n.(stamped); ok && st.epochOf() != s.epoch {
			return fmt.Errorf("%w: %s", ErrStaleEntity, n.ID())
		}
	}
	return nil
}

func (s *Session) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// assert applies a batch on behalf of parts, normalizing store failures to
// ErrStoreWrite.
func (s *Session) assert(b batch, parts ...Node) error {
	if err := s.live(parts...); err != nil {
		return err
	}
	if err := s.store.Assert(b...); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *Session) retract(b batch, parts ...Node) error {
	if err := s.live(parts...); err != nil {
		return err
	}
	if err := s.store.Retract(b...); err != nil {
		return storeErr(err)
	}
	return nil
}

func storeErr(err error) error {
	if errors.Is(err, ErrStoreWrite) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreWrite, err)
}

func (s *Session) now() time.Time {
	return s.clock()
}

// batch collects the triples of one atomic operation.
type batch []quad.Quad

func (b *batch) add(subject identifier.ID, predicate string, object quad.Value) {
	*b = append(*b, store.Triple(subject.Value(), quad.IRI(predicate), object))
}

func (b *batch) link(subject identifier.ID, predicate string, object identifier.ID) {
	b.add(subject, predicate, object.Value())
}
