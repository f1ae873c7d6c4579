package sosa

import (
	"fmt"
	"time"

	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/store"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
	"github.com/cayleygraph/quad"
)

// Observation is the record of one observation minted by a collection.
type Observation struct {
	ID         identifier.ID
	Sensor     identifier.ID
	Collection identifier.ID
	Feature    identifier.ID
	ResultTime time.Time
	Result     any
}

// ObservationCollection groups observations and mints them on demand.
// Its member list only grows.
type ObservationCollection struct {
	node
	s            *Session
	members      []identifier.ID
	observations map[identifier.ID]Observation
	lastResult   time.Time

	ultimateFeature identifier.ID
	property        identifier.ID
	procedure       identifier.ID
}

// NewObservationCollection creates a collection. Only its type and comment
// are asserted.
func (s *Session) NewObservationCollection(comment string) (*ObservationCollection, error) {
	c := &ObservationCollection{
		node:         node{id: s.alloc.Mint(), comment: comment, epoch: s.currentEpoch()},
		s:            s,
		observations: make(map[identifier.ID]Observation),
	}

	var b batch
	b.add(c.id, ssn.RDFType, quad.IRI(ssn.ClassObservationCollection))
	b.add(c.id, ssn.RDFSComment, quad.String(comment))
	if err := s.assert(b); err != nil {
		return nil, fmt.Errorf("create observation collection: %w", err)
	}
	s.logger.Debug("Created observation collection", "id", c.id.String())
	return c, nil
}

// AddObservation mints an observation made by sensor with the given result,
// time-stamped from the session clock, and returns its identifier. Result
// times never decrease within a collection.
func (c *ObservationCollection) AddObservation(sensor, feature identifier.ID, result any) (identifier.ID, error) {
	if sensor.IsZero() {
		return identifier.ID{}, fmt.Errorf("%w: zero sensor identifier", ErrInvalidIdentifier)
	}
	lit, err := store.Literal(result)
	if err != nil {
		return identifier.ID{}, fmt.Errorf("add observation: %w", err)
	}

	resultTime := c.s.now()
	if resultTime.Before(c.lastResult) {
		resultTime = c.lastResult
	}

	obs := c.s.alloc.Mint()
	var b batch
	b.add(obs, ssn.RDFType, quad.IRI(ssn.ClassObservation))
	b.link(obs, ssn.PropMadeBySensor, sensor)
	b.link(c.id, ssn.PropHasMember, obs)
	b.add(obs, ssn.PropResultTime, store.MustLiteral(resultTime))
	b.add(obs, ssn.PropHasSimpleResult, lit)
	// TODO: assert sosa:hasFeatureOfInterest for feature once it is settled
	// whether it belongs on each observation or on the collection.
	if err := c.s.assert(b, c); err != nil {
		return identifier.ID{}, fmt.Errorf("add observation: %w", err)
	}

	c.lastResult = resultTime
	c.members = append(c.members, obs)
	c.observations[obs] = Observation{
		ID:         obs,
		Sensor:     sensor,
		Collection: c.id,
		Feature:    feature,
		ResultTime: resultTime,
		Result:     result,
	}
	c.s.logger.Debug("Added observation", "collection", c.id.String(), "observation", obs.String())
	return obs, nil
}

// Members returns the member observation identifiers in insertion order.
func (c *ObservationCollection) Members() []identifier.ID { return cloneIDs(c.members) }

// Observations returns the member observations in insertion order.
func (c *ObservationCollection) Observations() []Observation {
	out := make([]Observation, 0, len(c.members))
	for _, id := range c.members {
		out = append(out, c.observations[id])
	}
	return out
}

// Observation looks up a member observation.
func (c *ObservationCollection) Observation(id identifier.ID) (Observation, bool) {
	o, ok := c.observations[id]
	return o, ok
}

// SetUltimateFeatureOfInterest sets the feature the whole collection is about.
// The feature must be of the ultimate kind.
func (c *ObservationCollection) SetUltimateFeatureOfInterest(f *FeatureOfInterest) error {
	if f == nil {
		return fmt.Errorf("%w: nil feature", ErrInvalidIdentifier)
	}
	if !f.IsUltimate() {
		return fmt.Errorf("%w: %s is not an ultimate feature of interest", ErrRoleMismatch, f.id)
	}
	return c.replace(&c.ultimateFeature, ssn.PropHasUltimateFeatureOfInterest, f)
}

// SetObservedProperty sets the property observed by every member.
func (c *ObservationCollection) SetObservedProperty(prop Node) error {
	if _, err := propertyID(prop); err != nil {
		return err
	}
	return c.replace(&c.property, ssn.PropObservedProperty, prop)
}

// SetUsedProcedure sets the procedure used by every member.
func (c *ObservationCollection) SetUsedProcedure(p *Procedure) error {
	if p == nil {
		return fmt.Errorf("%w: nil procedure", ErrInvalidIdentifier)
	}
	return c.replace(&c.procedure, ssn.PropUsedProcedure, p)
}

func (c *ObservationCollection) UltimateFeatureOfInterest() identifier.ID { return c.ultimateFeature }
func (c *ObservationCollection) ObservedProperty() identifier.ID          { return c.property }
func (c *ObservationCollection) UsedProcedure() identifier.ID             { return c.procedure }

// replace swaps the single value of a collection-level predicate. If the new
// triple cannot be asserted the old one is restored.
func (c *ObservationCollection) replace(slot *identifier.ID, predicate string, target Node) error {
	if err := c.s.live(c, target); err != nil {
		return err
	}
	id := target.ID()
	if *slot == id {
		return nil
	}

	var old batch
	if !slot.IsZero() {
		old.link(c.id, predicate, *slot)
		if err := c.s.retract(old); err != nil {
			return err
		}
	}

	var b batch
	b.link(c.id, predicate, id)
	if err := c.s.assert(b); err != nil {
		if len(old) > 0 {
			if rerr := c.s.assert(old); rerr != nil {
				c.s.logger.Warn("Failed to restore collection triple", "collection", c.id.String(), "error", rerr)
			}
		}
		return err
	}
	*slot = id
	return nil
}
