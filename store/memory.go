package store

import (
	"log/slog"
	"sync"

	"github.com/cayleygraph/quad"
	"github.com/prometheus/client_golang/prometheus"
)

// Memory is an insertion-ordered in-memory Store with set semantics.
type Memory struct {
	mu      sync.RWMutex
	triples []quad.Quad
	index   map[string]int

	logger  *slog.Logger
	metrics *storeMetrics
}

// Option configures a Memory store.
type Option func(*Memory)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Memory) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMetrics registers store metrics with reg. A nil registerer disables metrics.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(m *Memory) {
		m.metrics = newStoreMetrics(reg)
	}
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		index:  make(map[string]int),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Assert adds triples to the store. Triples already present are skipped.
// If any triple is malformed nothing is added.
func (m *Memory) Assert(triples ...quad.Quad) error {
	for _, t := range triples {
		if err := validate(t); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	added := 0
	for _, t := range triples {
		k := key(t)
		if _, ok := m.index[k]; ok {
			continue
		}
		m.index[k] = len(m.triples)
		m.triples = append(m.triples, quad.Quad{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object})
		added++
	}

	m.metrics.recordAssert(added, len(m.triples))
	m.logger.Debug("Asserted triples", "requested", len(triples), "added", added, "total", len(m.triples))
	return nil
}

// Retract removes triples from the store. Absent triples are ignored.
func (m *Memory) Retract(triples ...quad.Quad) error {
	for _, t := range triples {
		if err := validate(t); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	drop := make(map[int]bool, len(triples))
	for _, t := range triples {
		if i, ok := m.index[key(t)]; ok {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return nil
	}

	kept := m.triples[:0]
	for i, t := range m.triples {
		if !drop[i] {
			kept = append(kept, t)
		}
	}
	m.triples = kept
	m.reindex()

	m.metrics.recordRetract(len(drop), len(m.triples))
	m.logger.Debug("Retracted triples", "removed", len(drop), "total", len(m.triples))
	return nil
}

func (m *Memory) reindex() {
	m.index = make(map[string]int, len(m.triples))
	for i, t := range m.triples {
		m.index[key(t)] = i
	}
}

// Has reports whether t is in the store.
func (m *Memory) Has(t quad.Quad) bool {
	if validate(t) != nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.index[key(t)]
	return ok
}

// Triples returns a snapshot of all triples in insertion order.
func (m *Memory) Triples() []quad.Quad {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]quad.Quad, len(m.triples))
	copy(out, m.triples)
	return out
}

// Len returns the number of triples.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.triples)
}

// Match returns triples matching the pattern. A nil term matches anything.
func (m *Memory) Match(s, p, o quad.Value) []quad.Quad {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []quad.Quad
	for _, t := range m.triples {
		if s != nil && t.Subject.String() != s.String() {
			continue
		}
		if p != nil && t.Predicate.String() != p.String() {
			continue
		}
		if o != nil && t.Object.String() != o.String() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Reset empties the store.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triples = nil
	m.index = make(map[string]int)
	m.metrics.recordReset()
	m.logger.Debug("Store reset")
}
