package manifest

import (
	"fmt"

	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/sosa"
)

// Network holds the entities built from a manifest, keyed by manifest id.
type Network struct {
	Properties   map[string]*sosa.ObservableProperty
	Features     map[string]*sosa.FeatureOfInterest
	Procedures   map[string]*sosa.Procedure
	Platforms    map[string]*sosa.Platform
	Sensors      map[string]*sosa.Sensor
	Actuators    map[string]*sosa.Actuator
	Samplers     map[string]*sosa.Sampler
	Samplings    map[string]*sosa.Sampling
	Actuations   map[string]*sosa.Actuation
	Collections  map[string]*sosa.ObservationCollection
	Observations map[string][]identifier.ID
}

func newNetwork() *Network {
	return &Network{
		Properties:   make(map[string]*sosa.ObservableProperty),
		Features:     make(map[string]*sosa.FeatureOfInterest),
		Procedures:   make(map[string]*sosa.Procedure),
		Platforms:    make(map[string]*sosa.Platform),
		Sensors:      make(map[string]*sosa.Sensor),
		Actuators:    make(map[string]*sosa.Actuator),
		Samplers:     make(map[string]*sosa.Sampler),
		Samplings:    make(map[string]*sosa.Sampling),
		Actuations:   make(map[string]*sosa.Actuation),
		Collections:  make(map[string]*sosa.ObservationCollection),
		Observations: make(map[string][]identifier.ID),
	}
}

// Apply builds the manifest through s. Entities are created leaves first:
// properties, features, procedures, platforms with their hosted entities,
// then collections and their observations.
func (m *Manifest) Apply(s *sosa.Session) (*Network, error) {
	n := newNetwork()

	for _, p := range m.Properties {
		prop, err := s.NewObservableProperty(p.IRI, p.Label)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.ID, err)
		}
		n.Properties[p.ID] = prop
	}

	for _, f := range m.Features {
		kind := sosa.FeatureProximate
		if f.Ultimate {
			kind = sosa.FeatureUltimate
		}
		var (
			feature *sosa.FeatureOfInterest
			err     error
		)
		switch {
		case f.IRI != "":
			feature, err = s.FeatureOfInterestFromIRI(f.IRI, kind)
		case f.Ultimate:
			feature, err = s.NewUltimateFeatureOfInterest(f.Comment, f.Label)
		default:
			feature, err = s.NewFeatureOfInterest(f.Comment, f.Label)
		}
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", f.ID, err)
		}
		n.Features[f.ID] = feature
	}

	for _, p := range m.Procedures {
		proc, err := s.NewProcedure(p.Comment, p.Label)
		if err != nil {
			return nil, fmt.Errorf("procedure %q: %w", p.ID, err)
		}
		proc.SetIO(p.Input, p.Output)
		n.Procedures[p.ID] = proc
	}

	for _, p := range m.Platforms {
		if err := n.applyPlatform(s, p); err != nil {
			return nil, fmt.Errorf("platform %q: %w", p.ID, err)
		}
	}

	for _, c := range m.Collections {
		if err := n.applyCollection(s, c); err != nil {
			return nil, fmt.Errorf("collection %q: %w", c.ID, err)
		}
	}

	return n, nil
}

func (n *Network) applyPlatform(s *sosa.Session, p Platform) error {
	platform, err := s.NewPlatform(p.Comment, p.Label)
	if err != nil {
		return err
	}
	n.Platforms[p.ID] = platform

	for _, sm := range p.Sensors {
		props := make([]sosa.Node, 0, len(sm.Observes))
		for _, ref := range sm.Observes {
			prop, err := n.property(ref)
			if err != nil {
				return fmt.Errorf("sensor %q: %w", sm.ID, err)
			}
			props = append(props, prop)
		}
		sensor, err := s.NewSensor(sm.Description, props...)
		if err != nil {
			return fmt.Errorf("sensor %q: %w", sm.ID, err)
		}
		if err := platform.AddSensor(sensor); err != nil {
			return err
		}
		n.Sensors[sm.ID] = sensor
	}

	for _, am := range p.Actuators {
		actuator, err := s.NewActuator(am.Comment, am.Label)
		if err != nil {
			return fmt.Errorf("actuator %q: %w", am.ID, err)
		}
		if am.AttachProcedure {
			if err := actuator.AttachProcedure(); err != nil {
				return fmt.Errorf("actuator %q: %w", am.ID, err)
			}
		}
		if am.AttachProperty {
			if err := actuator.AttachActuableProperty(); err != nil {
				return fmt.Errorf("actuator %q: %w", am.ID, err)
			}
		}
		for _, e := range am.Actuations {
			feature, err := n.feature(e.Feature)
			if err != nil {
				return fmt.Errorf("actuation %q: %w", e.ID, err)
			}
			act, err := s.NewActuation(e.Comment, e.Label, feature, e.Result)
			if err != nil {
				return fmt.Errorf("actuation %q: %w", e.ID, err)
			}
			if err := actuator.AddActuation(act); err != nil {
				return err
			}
			n.Actuations[e.ID] = act
		}
		if err := platform.AddActuator(actuator); err != nil {
			return err
		}
		n.Actuators[am.ID] = actuator
	}

	for _, sm := range p.Samplers {
		sampler, err := s.NewSampler(sm.Comment, sm.Label)
		if err != nil {
			return fmt.Errorf("sampler %q: %w", sm.ID, err)
		}
		if sm.AttachProcedure {
			if err := sampler.AttachProcedure(); err != nil {
				return fmt.Errorf("sampler %q: %w", sm.ID, err)
			}
		}
		for _, e := range sm.Samplings {
			feature, err := n.feature(e.Feature)
			if err != nil {
				return fmt.Errorf("sampling %q: %w", e.ID, err)
			}
			sp, err := s.NewSampling(e.Comment, e.Label, feature, e.Result)
			if err != nil {
				return fmt.Errorf("sampling %q: %w", e.ID, err)
			}
			if err := sampler.AddSampling(sp); err != nil {
				return err
			}
			n.Samplings[e.ID] = sp
		}
		if err := platform.AddSampler(sampler); err != nil {
			return err
		}
		n.Samplers[sm.ID] = sampler
	}

	return nil
}

func (n *Network) applyCollection(s *sosa.Session, c Collection) error {
	col, err := s.NewObservationCollection(c.Comment)
	if err != nil {
		return err
	}
	n.Collections[c.ID] = col

	if c.UltimateFeature != "" {
		f, err := n.feature(c.UltimateFeature)
		if err != nil {
			return err
		}
		if err := col.SetUltimateFeatureOfInterest(f); err != nil {
			return err
		}
	}
	if c.ObservedProperty != "" {
		prop, err := n.property(c.ObservedProperty)
		if err != nil {
			return err
		}
		if err := col.SetObservedProperty(prop); err != nil {
			return err
		}
	}
	if c.UsedProcedure != "" {
		proc, ok := n.Procedures[c.UsedProcedure]
		if !ok {
			return fmt.Errorf("unknown procedure reference %q", c.UsedProcedure)
		}
		if err := col.SetUsedProcedure(proc); err != nil {
			return err
		}
	}

	for i, o := range c.Observations {
		sensor, err := n.sensorID(o.Sensor)
		if err != nil {
			return fmt.Errorf("observation %d: %w", i, err)
		}
		feature, err := n.featureID(o.Feature)
		if err != nil {
			return fmt.Errorf("observation %d: %w", i, err)
		}
		id, err := col.AddObservation(sensor, feature, o.Result)
		if err != nil {
			return fmt.Errorf("observation %d: %w", i, err)
		}
		n.Observations[c.ID] = append(n.Observations[c.ID], id)
	}
	return nil
}

// property resolves a manifest id, falling back to an external IRI.
func (n *Network) property(ref string) (sosa.Node, error) {
	if p, ok := n.Properties[ref]; ok {
		return p, nil
	}
	id, err := identifier.External(ref)
	if err != nil {
		return nil, fmt.Errorf("unknown property reference %q", ref)
	}
	return sosa.Ref(id), nil
}

// feature resolves a declared feature. An empty reference yields nil.
func (n *Network) feature(ref string) (*sosa.FeatureOfInterest, error) {
	if ref == "" {
		return nil, nil
	}
	if f, ok := n.Features[ref]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("unknown feature reference %q", ref)
}

func (n *Network) sensorID(ref string) (identifier.ID, error) {
	if s, ok := n.Sensors[ref]; ok {
		return s.ID(), nil
	}
	id, err := identifier.External(ref)
	if err != nil {
		return identifier.ID{}, fmt.Errorf("unknown sensor reference %q", ref)
	}
	return id, nil
}

// featureID resolves a declared feature or an external IRI. An empty
// reference yields the zero ID.
func (n *Network) featureID(ref string) (identifier.ID, error) {
	if ref == "" {
		return identifier.ID{}, nil
	}
	if f, ok := n.Features[ref]; ok {
		return f.ID(), nil
	}
	id, err := identifier.External(ref)
	if err != nil {
		return identifier.ID{}, fmt.Errorf("unknown feature reference %q", ref)
	}
	return id, nil
}
