package sosa

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/c360studio/sosagraph/export"
	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/store"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore rejects every batch once armed.
type failingStore struct {
	*store.Memory
	fail bool
}

func (f *failingStore) Assert(triples ...quad.Quad) error {
	if f.fail {
		return errors.New("disk on fire")
	}
	return f.Memory.Assert(triples...)
}

func (f *failingStore) Retract(triples ...quad.Quad) error {
	if f.fail {
		return errors.New("disk on fire")
	}
	return f.Memory.Retract(triples...)
}

func has(t *testing.T, s *Session, subj identifier.ID, pred string, obj quad.Value) bool {
	t.Helper()
	return s.Store().Has(store.Triple(subj.Value(), quad.IRI(pred), obj))
}

func TestIdentifierUniqueness(t *testing.T) {
	s := NewSession()

	seen := make(map[identifier.ID]bool)
	record := func(n Node) {
		require.False(t, seen[n.ID()], "duplicate id %s", n.ID())
		seen[n.ID()] = true
	}

	for i := 0; i < 20; i++ {
		p, err := s.NewPlatform("c", "p")
		require.NoError(t, err)
		record(p)

		a, err := s.NewActuator("c", "a")
		require.NoError(t, err)
		record(a)
		record(a.Procedure())
		record(a.ActuableProperty())

		sm, err := s.NewSampler("c", "s")
		require.NoError(t, err)
		record(sm)
		record(sm.Procedure())

		sn, err := s.NewSensor("d")
		require.NoError(t, err)
		record(sn)

		c, err := s.NewObservationCollection("col")
		require.NoError(t, err)
		record(c)
	}
}

func TestConstructionTriples(t *testing.T) {
	s := NewSession()

	p, err := s.NewPlatform("Platform1", "P1")
	require.NoError(t, err)

	assert.True(t, has(t, s, p.ID(), ssn.RDFType, quad.IRI(ssn.ClassPlatform)))
	assert.True(t, has(t, s, p.ID(), ssn.RDFSLabel, quad.String("P1")))
	assert.True(t, has(t, s, p.ID(), ssn.RDFSComment, quad.String("Platform1")))
	assert.Equal(t, 3, s.Store().Len())
	assert.Equal(t, "P1", p.Label())
	assert.Equal(t, "Platform1", p.Comment())
}

func TestActuatorConstructsSubEntitiesWithoutLinks(t *testing.T) {
	s := NewSession()

	a, err := s.NewActuator("valve on pipe 3", "V3")
	require.NoError(t, err)

	assert.True(t, has(t, s, a.ID(), ssn.RDFType, quad.IRI(ssn.ClassActuator)))
	assert.True(t, has(t, s, a.Procedure().ID(), ssn.RDFType, quad.IRI(ssn.ClassProcedure)))
	assert.True(t, has(t, s, a.ActuableProperty().ID(), ssn.RDFType, quad.IRI(ssn.ClassActuableProperty)))
	assert.Equal(t, "V3 procedure", a.Procedure().Label())
	assert.Equal(t, "V3 actuable property", a.ActuableProperty().Label())
	assert.Equal(t, 9, s.Store().Len())

	assert.False(t, has(t, s, a.ID(), ssn.PropImplements, a.Procedure().ID().Value()))
	require.NoError(t, a.AttachProcedure())
	assert.True(t, has(t, s, a.ID(), ssn.PropImplements, a.Procedure().ID().Value()))

	require.NoError(t, a.AttachActuableProperty())
	assert.True(t, has(t, s, a.ID(), ssn.PropActsOnProperty, a.ActuableProperty().ID().Value()))
}

func TestConstructionIsAtomic(t *testing.T) {
	fs := &failingStore{Memory: store.NewMemory(), fail: true}
	s := NewSession(WithStore(fs))

	_, err := s.NewActuator("c", "a")
	require.ErrorIs(t, err, ErrStoreWrite)

	_, err = s.NewPlatform("c", "p")
	require.ErrorIs(t, err, ErrStoreWrite)

	assert.Equal(t, 0, fs.Len())
}

func TestSessionsAreIndependent(t *testing.T) {
	a := NewSession()
	b := NewSession()

	_, err := a.NewPlatform("c", "p")
	require.NoError(t, err)

	assert.Equal(t, 3, a.Store().Len())
	assert.Equal(t, 0, b.Store().Len())
}

func TestReset(t *testing.T) {
	s := NewSession()
	_, err := s.NewPlatform("c", "p")
	require.NoError(t, err)

	require.NoError(t, s.Reset())
	assert.Equal(t, 0, s.Store().Len())
}

func TestResetWithoutResetter(t *testing.T) {
	fs := &failingStore{Memory: store.NewMemory()}
	// hide Memory.Reset behind a narrower type
	s := NewSession(WithStore(struct{ store.Store }{fs}))
	_, err := s.NewPlatform("c", "p")
	require.NoError(t, err)

	require.NoError(t, s.Reset())
	assert.Equal(t, 0, fs.Len())
}

func TestResetMakesEntitiesStale(t *testing.T) {
	s := NewSession()
	p, err := s.NewPlatform("Platform1", "P1")
	require.NoError(t, err)
	sensor, err := s.NewSensor("S1")
	require.NoError(t, err)
	require.NoError(t, p.AddSensor(sensor))
	col, err := s.NewObservationCollection("myCol")
	require.NoError(t, err)

	require.NoError(t, s.Reset())

	assert.ErrorIs(t, p.RemoveSensor(sensor), ErrStaleEntity)
	_, err = col.AddObservation(sensor.ID(), identifier.ID{}, 1.0)
	assert.ErrorIs(t, err, ErrStaleEntity)
	assert.Equal(t, 0, s.Store().Len())

	// in-memory state is still readable
	assert.Equal(t, []identifier.ID{sensor.ID()}, p.Sensors())
	assert.Equal(t, p.ID(), sensor.Platform())

	// a fresh platform cannot host a pre-reset sensor
	fresh, err := s.NewPlatform("Platform2", "P2")
	require.NoError(t, err)
	before := s.Store().Len()
	assert.ErrorIs(t, fresh.AddSensor(sensor), ErrStaleEntity)
	assert.Empty(t, fresh.Sensors())
	assert.Equal(t, before, s.Store().Len())

	rebuilt, err := s.NewSensor("S1")
	require.NoError(t, err)
	require.NoError(t, fresh.AddSensor(rebuilt))
	assert.True(t, has(t, s, fresh.ID(), ssn.PropHosts, rebuilt.ID().Value()))
}

func TestResetRejectsStaleArguments(t *testing.T) {
	s := NewSession()
	feature, err := s.NewUltimateFeatureOfInterest("c", "f")
	require.NoError(t, err)
	prop, err := s.NewObservableProperty("", "temp")
	require.NoError(t, err)

	require.NoError(t, s.Reset())

	col, err := s.NewObservationCollection("myCol")
	require.NoError(t, err)
	assert.ErrorIs(t, col.SetUltimateFeatureOfInterest(feature), ErrStaleEntity)
	assert.ErrorIs(t, col.SetObservedProperty(prop), ErrStaleEntity)
	assert.True(t, col.UltimateFeatureOfInterest().IsZero())

	_, err = s.NewSensor("S1", prop)
	assert.ErrorIs(t, err, ErrStaleEntity)
	_, err = s.NewSampling("c", "s", feature, nil)
	assert.ErrorIs(t, err, ErrStaleEntity)

	// external references carry no session state
	require.NoError(t, col.SetObservedProperty(Ref(prop.ID())))
}

func TestClose(t *testing.T) {
	s := NewSession()
	p, err := s.NewPlatform("c", "p")
	require.NoError(t, err)
	sensor, err := s.NewSensor("d")
	require.NoError(t, err)

	require.NoError(t, s.Close())

	_, err = s.NewPlatform("c", "p2")
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, p.AddSensor(sensor), ErrSessionClosed)
	assert.Empty(t, p.Sensors())

	_, err = s.Serialize(export.FormatTurtle)
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSerializeThroughSession(t *testing.T) {
	s := NewSession(WithAllocator(mustAllocator(t, "http://example.org/id/")))
	p, err := s.NewPlatform("Platform1", "P1")
	require.NoError(t, err)

	out, err := s.Serialize(export.FormatNTriples)
	require.NoError(t, err)
	assert.Contains(t, out, p.ID().String()+" <"+ssn.RDFType+"> <"+ssn.ClassPlatform+"> .")

	var sb strings.Builder
	require.NoError(t, s.Write(&sb, export.FormatTurtle))
	assert.Contains(t, sb.String(), "a sosa:Platform")
}

func mustAllocator(t *testing.T, base string) *identifier.Allocator {
	t.Helper()
	a, err := identifier.NewAllocator(identifier.WithBaseIRI(base))
	require.NoError(t, err)
	return a
}

// steppingClock returns the given instants in order, then repeats the last.
func steppingClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}
