package sosa

import (
	"fmt"
	"time"

	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/store"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
)

// event is the shared shape of samplings and actuations: a timestamped act
// on a feature of interest with an optional simple result.
type event struct {
	node
	backRef
	feature identifier.ID
	time    time.Time
	result  any
}

// newEvent queues the triples of an event. The feature and result are
// optional.
func (s *Session) newEvent(b *batch, class, comment, label string, feature *FeatureOfInterest, result any) (event, error) {
	e := event{node: s.newNode(b, class, label, comment), time: s.now(), result: result}
	b.add(e.id, ssn.PropResultTime, store.MustLiteral(e.time))
	if feature != nil {
		e.feature = feature.id
		b.link(e.id, ssn.PropHasFeatureOfInterest, feature.id)
	}
	if result != nil {
		lit, err := store.Literal(result)
		if err != nil {
			return event{}, err
		}
		b.add(e.id, ssn.PropHasSimpleResult, lit)
	}
	return e, nil
}

// Feature returns the feature of interest, or the zero ID.
func (e *event) Feature() identifier.ID { return e.feature }

// Time returns when the event happened.
func (e *event) Time() time.Time { return e.time }

// Result returns the simple result, if any.
func (e *event) Result() any { return e.result }

// Sampling is an act of sampling a feature of interest.
type Sampling struct {
	event
}

// NewSampling creates a sampling timestamped with the session clock.
func (s *Session) NewSampling(comment, label string, feature *FeatureOfInterest, result any) (*Sampling, error) {
	var b batch
	e, err := s.newEvent(&b, ssn.ClassSampling, comment, label, feature, result)
	if err != nil {
		return nil, fmt.Errorf("create sampling: %w", err)
	}
	if err := s.assert(b, feature); err != nil {
		return nil, fmt.Errorf("create sampling: %w", err)
	}
	return &Sampling{event: e}, nil
}

// Sampler returns the sampler that made the sampling, or the zero ID.
func (sp *Sampling) Sampler() identifier.ID { return sp.owner }

// Actuation is an act of changing a feature of interest.
type Actuation struct {
	event
}

// NewActuation creates an actuation timestamped with the session clock.
func (s *Session) NewActuation(comment, label string, feature *FeatureOfInterest, result any) (*Actuation, error) {
	var b batch
	e, err := s.newEvent(&b, ssn.ClassActuation, comment, label, feature, result)
	if err != nil {
		return nil, fmt.Errorf("create actuation: %w", err)
	}
	if err := s.assert(b, feature); err != nil {
		return nil, fmt.Errorf("create actuation: %w", err)
	}
	return &Actuation{event: e}, nil
}

// Actuator returns the actuator that made the actuation, or the zero ID.
func (act *Actuation) Actuator() identifier.ID { return act.owner }
