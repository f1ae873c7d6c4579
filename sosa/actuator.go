package sosa

import (
	"fmt"

	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
)

// Actuator changes the state of the world. It owns an ActuableProperty and a
// Procedure created alongside it; neither is linked in the graph until
// AttachActuableProperty or AttachProcedure is called.
type Actuator struct {
	node
	backRef
	s          *Session
	property   *ActuableProperty
	procedure  *Procedure
	actuations []identifier.ID
}

// NewActuator creates an actuator with its actuable property and procedure
// in a single batch.
func (s *Session) NewActuator(comment, label string) (*Actuator, error) {
	var b batch
	a := &Actuator{
		node: s.newNode(&b, ssn.ClassActuator, label, comment),
		s:    s,
	}
	a.property = s.newActuableProperty(&b, comment, label+" actuable property")
	a.procedure = s.newProcedure(&b, comment, label+" procedure")

	if err := s.assert(b); err != nil {
		return nil, fmt.Errorf("create actuator: %w", err)
	}
	s.logger.Debug("Created actuator", "id", a.id.String(), "label", label)
	return a, nil
}

// ActuatorID implements ActuatorRole.
func (a *Actuator) ActuatorID() identifier.ID { return a.id }

// Platform returns the hosting platform, or the zero ID.
func (a *Actuator) Platform() identifier.ID { return a.owner }

func (a *Actuator) ActuableProperty() *ActuableProperty { return a.property }
func (a *Actuator) Procedure() *Procedure               { return a.procedure }

// AttachProcedure asserts (actuator, ssn:implements, procedure).
func (a *Actuator) AttachProcedure() error {
	var b batch
	b.link(a.id, ssn.PropImplements, a.procedure.id)
	if err := a.s.assert(b, a, a.procedure); err != nil {
		return fmt.Errorf("attach procedure: %w", err)
	}
	return nil
}

// AttachActuableProperty asserts (actuator, sosa:actsOnProperty, property).
func (a *Actuator) AttachActuableProperty() error {
	var b batch
	b.link(a.id, ssn.PropActsOnProperty, a.property.id)
	if err := a.s.assert(b, a, a.property); err != nil {
		return fmt.Errorf("attach actuable property: %w", err)
	}
	return nil
}

// AddActuation records an actuation made by this actuator.
func (a *Actuator) AddActuation(act *Actuation) error {
	if act == nil {
		return fmt.Errorf("%w: nil actuation", ErrInvalidIdentifier)
	}
	if err := a.s.attach(a, &a.actuations, act, actuationRel); err != nil {
		return fmt.Errorf("add actuation %s: %w", act.id, err)
	}
	return nil
}

// RemoveActuation is the inverse of AddActuation.
func (a *Actuator) RemoveActuation(act *Actuation) error {
	if act == nil {
		return fmt.Errorf("%w: nil actuation", ErrInvalidIdentifier)
	}
	if err := a.s.detach(a, &a.actuations, act, actuationRel); err != nil {
		return fmt.Errorf("remove actuation %s: %w", act.id, err)
	}
	return nil
}

// Actuations returns the identifiers of recorded actuations.
func (a *Actuator) Actuations() []identifier.ID { return cloneIDs(a.actuations) }
