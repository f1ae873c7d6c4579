package sosa

import (
	"sort"
	"strings"
	"testing"

	"github.com/c360studio/sosagraph/export"
	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/store"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostAndRemoveSensorScenario(t *testing.T) {
	s := NewSession()

	p1, err := s.NewPlatform("Platform1", "P1")
	require.NoError(t, err)
	airSpeed, err := s.NewObservableProperty("", "air speed")
	require.NoError(t, err)
	s1, err := s.NewSensor("S1", airSpeed)
	require.NoError(t, err)

	require.NoError(t, p1.AddSensor(s1))

	out, err := s.Serialize(export.FormatNTriples)
	require.NoError(t, err)
	assert.Contains(t, out, p1.ID().String()+" <"+ssn.PropHosts+"> "+s1.ID().String()+" .")
	assert.Contains(t, out, s1.ID().String()+" <"+ssn.PropIsHostedBy+"> "+p1.ID().String()+" .")
	assert.Equal(t, []identifier.ID{s1.ID()}, p1.Sensors())
	assert.Equal(t, p1.ID(), s1.Platform())

	require.NoError(t, p1.RemoveSensor(s1))

	out, err = s.Serialize(export.FormatNTriples)
	require.NoError(t, err)
	assert.NotContains(t, out, "<"+ssn.PropHosts+">")
	assert.NotContains(t, out, "<"+ssn.PropIsHostedBy+">")
	assert.Empty(t, p1.Members(RoleSensor))
	assert.True(t, s1.Platform().IsZero())
}

func TestHostingSymmetry(t *testing.T) {
	s := NewSession()
	p, err := s.NewPlatform("c", "P")
	require.NoError(t, err)

	sensor, err := s.NewSensor("s")
	require.NoError(t, err)
	actuator, err := s.NewActuator("c", "a")
	require.NoError(t, err)
	sampler, err := s.NewSampler("c", "sm")
	require.NoError(t, err)

	entities := []struct {
		role Role
		n    Node
	}{
		{RoleSensor, sensor},
		{RoleActuator, actuator},
		{RoleSampler, sampler},
	}

	hosted := func(n Node) bool {
		return has(t, s, p.ID(), ssn.PropHosts, n.ID().Value())
	}

	for _, e := range entities {
		t.Run(string(e.role), func(t *testing.T) {
			require.NoError(t, p.Add(e.role, e.n))
			assert.True(t, hosted(e.n))
			assert.True(t, has(t, s, e.n.ID(), ssn.PropIsHostedBy, p.ID().Value()))
			assert.Contains(t, p.Members(e.role), e.n.ID())
			assert.True(t, p.Hosts(e.n.ID()))

			require.NoError(t, p.Remove(e.role, e.n))
			assert.False(t, hosted(e.n))
			assert.False(t, has(t, s, e.n.ID(), ssn.PropIsHostedBy, p.ID().Value()))
			assert.NotContains(t, p.Members(e.role), e.n.ID())
			assert.False(t, p.Hosts(e.n.ID()))
		})
	}
}

func TestRoleEnforcement(t *testing.T) {
	s := NewSession()
	p, err := s.NewPlatform("c", "P")
	require.NoError(t, err)
	sensor, err := s.NewSensor("s")
	require.NoError(t, err)
	actuator, err := s.NewActuator("c", "a")
	require.NoError(t, err)
	proc, err := s.NewProcedure("c", "proc")
	require.NoError(t, err)

	tests := []struct {
		name string
		role Role
		n    Node
	}{
		{"actuator as sensor", RoleSensor, actuator},
		{"sensor as actuator", RoleActuator, sensor},
		{"sensor as sampler", RoleSampler, sensor},
		{"procedure as sensor", RoleSensor, proc},
		{"bare ref as sensor", RoleSensor, Ref(identifier.MustExternal("http://example.org/s4"))},
		{"nil", RoleSensor, nil},
		{"unknown role", Role("drone"), sensor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := s.Store().Len()
			err := p.Add(tt.role, tt.n)
			require.ErrorIs(t, err, ErrRoleMismatch)
			assert.Equal(t, before, s.Store().Len())
			for _, r := range Roles() {
				assert.Empty(t, p.Members(r))
			}
		})
	}
}

func TestTypedNilMembers(t *testing.T) {
	s := NewSession()
	p, err := s.NewPlatform("Platform1", "P1")
	require.NoError(t, err)
	before := s.Store().Len()

	assert.ErrorIs(t, p.AddSensor((*Sensor)(nil)), ErrRoleMismatch)
	assert.ErrorIs(t, p.RemoveSensor((*Sensor)(nil)), ErrRoleMismatch)
	assert.ErrorIs(t, p.AddActuator((*Actuator)(nil)), ErrRoleMismatch)
	assert.ErrorIs(t, p.AddSampler((*Sampler)(nil)), ErrRoleMismatch)
	assert.ErrorIs(t, p.AddSensor(nil), ErrRoleMismatch)

	sensor, err := s.NewSensor("S1")
	require.NoError(t, err)
	assert.ErrorIs(t, sensor.Observe((*ObservableProperty)(nil)), ErrInvalidIdentifier)

	assert.Empty(t, p.Sensors())
	assert.Equal(t, before+2, s.Store().Len())
}

func TestRemoveNotAMember(t *testing.T) {
	s := NewSession()
	p, err := s.NewPlatform("c", "P")
	require.NoError(t, err)
	sensor, err := s.NewSensor("s")
	require.NoError(t, err)

	assert.ErrorIs(t, p.RemoveSensor(sensor), ErrNotAMember)

	// hosted as a sensor, removed as an actuator
	require.NoError(t, p.AddSensor(sensor))
	assert.ErrorIs(t, p.RemoveActuator(sensor), ErrRoleMismatch)
	assert.Len(t, p.Sensors(), 1)
}

func TestDuplicateAndForeignHosting(t *testing.T) {
	s := NewSession()
	p1, err := s.NewPlatform("c", "P1")
	require.NoError(t, err)
	p2, err := s.NewPlatform("c", "P2")
	require.NoError(t, err)
	sampler, err := s.NewSampler("c", "sm")
	require.NoError(t, err)

	require.NoError(t, p1.AddSampler(sampler))
	assert.ErrorIs(t, p1.AddSampler(sampler), ErrAlreadyMember)
	assert.ErrorIs(t, p2.AddSampler(sampler), ErrAlreadyHosted)
	assert.Empty(t, p2.Samplers())
	assert.Equal(t, p1.ID(), sampler.Platform())

	require.NoError(t, p1.RemoveSampler(sampler))
	require.NoError(t, p2.AddSampler(sampler))
	assert.Equal(t, p2.ID(), sampler.Platform())
}

func TestMembershipIsPerInstance(t *testing.T) {
	s := NewSession()
	p1, err := s.NewPlatform("c", "P1")
	require.NoError(t, err)
	p2, err := s.NewPlatform("c", "P2")
	require.NoError(t, err)
	sensor, err := s.NewSensor("s")
	require.NoError(t, err)

	require.NoError(t, p1.AddSensor(sensor))
	assert.Len(t, p1.Sensors(), 1)
	assert.Empty(t, p2.Sensors())

	// returned slices are copies
	got := p1.Sensors()
	got[0] = identifier.ID{}
	assert.Equal(t, sensor.ID(), p1.Sensors()[0])
}

func TestHostingFailureLeavesStateUnchanged(t *testing.T) {
	fs := &failingStore{Memory: store.NewMemory()}
	s := NewSession(WithStore(fs))
	p, err := s.NewPlatform("c", "P")
	require.NoError(t, err)
	actuator, err := s.NewActuator("c", "a")
	require.NoError(t, err)

	fs.fail = true
	err = p.AddActuator(actuator)
	require.ErrorIs(t, err, ErrStoreWrite)
	assert.Empty(t, p.Actuators())
	assert.True(t, actuator.Platform().IsZero())

	fs.fail = false
	require.NoError(t, p.AddActuator(actuator))

	fs.fail = true
	require.ErrorIs(t, p.RemoveActuator(actuator), ErrStoreWrite)
	assert.Len(t, p.Actuators(), 1)
	assert.Equal(t, p.ID(), actuator.Platform())
}

func TestObserve(t *testing.T) {
	s := NewSession()
	sensor, err := s.NewSensor("thermometer")
	require.NoError(t, err)
	temp, err := s.NewObservableProperty("http://example.org/op/temperature", "temperature")
	require.NoError(t, err)

	require.NoError(t, sensor.Observe(temp))
	require.NoError(t, sensor.Observe(temp))
	assert.Equal(t, []identifier.ID{temp.ID()}, sensor.Properties())
	assert.True(t, has(t, s, sensor.ID(), ssn.PropObserves, quad.IRI("http://example.org/op/temperature")))

	assert.ErrorIs(t, sensor.Observe(nil), ErrInvalidIdentifier)
	assert.ErrorIs(t, sensor.Observe(Ref(identifier.ID{})), ErrInvalidIdentifier)
}

func TestSensorConstruction(t *testing.T) {
	s := NewSession()
	op, err := s.NewObservableProperty("", "air speed")
	require.NoError(t, err)

	sensor, err := s.NewSensor("S1", op, op)
	require.NoError(t, err)

	assert.True(t, has(t, s, sensor.ID(), ssn.RDFType, quad.IRI(ssn.ClassSensor)))
	assert.True(t, has(t, s, sensor.ID(), ssn.RDFSComment, quad.String("S1")))
	assert.True(t, has(t, s, sensor.ID(), ssn.PropObserves, op.ID().Value()))
	assert.Len(t, sensor.Properties(), 1)
	assert.Equal(t, "S1", sensor.Description())

	before := s.Store().Len()
	_, err = s.NewSensor("bad", Ref(identifier.ID{}))
	require.ErrorIs(t, err, ErrInvalidIdentifier)
	assert.Equal(t, before, s.Store().Len())
}

func TestObservableProperty(t *testing.T) {
	s := NewSession()

	op, err := s.NewObservableProperty("http://example.org/op2", "")
	require.NoError(t, err)
	assert.True(t, has(t, s, op.ID(), ssn.RDFType, quad.IRI(ssn.ClassObservableProperty)))
	assert.Equal(t, 1, s.Store().Len())

	_, err = s.NewObservableProperty("not an iri", "x")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
	assert.Equal(t, 1, s.Store().Len())
}

func TestTurtleRoundTripOfSession(t *testing.T) {
	// IRIs rather than blank nodes so the parsed graph compares exactly
	s := NewSession(WithAllocator(mustAllocator(t, "http://example.org/id/")))
	p, err := s.NewPlatform("roof", "P1")
	require.NoError(t, err)
	sensor, err := s.NewSensor("S1")
	require.NoError(t, err)
	require.NoError(t, p.AddSensor(sensor))

	out, err := s.Serialize(export.FormatTurtle)
	require.NoError(t, err)

	parsed, err := export.Parse(strings.NewReader(out), export.FormatTurtle)
	require.NoError(t, err)

	fresh := store.NewMemory()
	require.NoError(t, fresh.Assert(parsed...))
	assert.Equal(t, s.Store().Len(), fresh.Len())
	for _, q := range s.Store().Triples() {
		assert.True(t, fresh.Has(q), "missing %v", q)
	}
}

func TestJSONLDRoundTripOfSession(t *testing.T) {
	// Default allocator: every minted entity is a blank node
	s := NewSession()
	p, err := s.NewPlatform("Platform1", "P1")
	require.NoError(t, err)
	sensor, err := s.NewSensor("S1")
	require.NoError(t, err)
	require.NoError(t, p.AddSensor(sensor))

	col, err := s.NewObservationCollection("myCol")
	require.NoError(t, err)
	_, err = col.AddObservation(
		identifier.MustExternal("http://example.org/s4"),
		identifier.MustExternal("http://example.org/Sample_2"),
		42.0,
	)
	require.NoError(t, err)

	out, err := s.Serialize(export.FormatJSONLD)
	require.NoError(t, err)

	parsed, err := export.Parse(strings.NewReader(out), export.FormatJSONLD)
	require.NoError(t, err)
	require.Len(t, parsed, s.Store().Len(), out)
	assert.Equal(t, withoutBlanks(s.Store().Triples()), withoutBlanks(parsed))

	fresh := store.NewMemory()
	require.NoError(t, fresh.Assert(parsed...))
	hosts := fresh.Match(nil, quad.IRI(ssn.PropHosts), nil)
	require.Len(t, hosts, 1)
	assert.IsType(t, quad.BNode(""), hosts[0].Subject)
	assert.IsType(t, quad.BNode(""), hosts[0].Object)
	assert.Len(t, fresh.Match(nil, quad.IRI(ssn.PropHasSimpleResult), store.MustLiteral(42.0)), 1)
}

// withoutBlanks renders triples with every blank node erased, sorted, so
// graphs compare equal up to blank node relabeling.
func withoutBlanks(triples []quad.Quad) []string {
	term := func(v quad.Value) string {
		if _, ok := v.(quad.BNode); ok {
			return "_"
		}
		return v.String()
	}
	out := make([]string, 0, len(triples))
	for _, q := range triples {
		out = append(out, term(q.Subject)+" "+term(q.Predicate)+" "+term(q.Object))
	}
	sort.Strings(out)
	return out
}
