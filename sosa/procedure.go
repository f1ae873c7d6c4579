package sosa

import (
	"fmt"

	"github.com/c360studio/sosagraph/vocabulary/ssn"
)

// Procedure is a workflow, protocol or algorithm implemented by a system.
type Procedure struct {
	node
	input  string
	output string
}

// NewProcedure creates a procedure.
func (s *Session) NewProcedure(comment, label string) (*Procedure, error) {
	var b batch
	p := s.newProcedure(&b, comment, label)
	if err := s.assert(b); err != nil {
		return nil, fmt.Errorf("create procedure: %w", err)
	}
	return p, nil
}

func (s *Session) newProcedure(b *batch, comment, label string) *Procedure {
	return &Procedure{node: s.newNode(b, ssn.ClassProcedure, label, comment)}
}

// Input and Output describe the procedure in memory only; they are not
// asserted.
func (p *Procedure) Input() string  { return p.input }
func (p *Procedure) Output() string { return p.output }

// SetIO sets the input and output descriptions.
func (p *Procedure) SetIO(input, output string) {
	p.input = input
	p.output = output
}

// ActuableProperty is a quality that can be acted upon by an actuator.
type ActuableProperty struct {
	node
	value any
}

// NewActuableProperty creates an actuable property.
func (s *Session) NewActuableProperty(comment, label string) (*ActuableProperty, error) {
	var b batch
	ap := s.newActuableProperty(&b, comment, label)
	if err := s.assert(b); err != nil {
		return nil, fmt.Errorf("create actuable property: %w", err)
	}
	return ap, nil
}

func (s *Session) newActuableProperty(b *batch, comment, label string) *ActuableProperty {
	return &ActuableProperty{node: s.newNode(b, ssn.ClassActuableProperty, label, comment)}
}

// Value returns the property value held in memory.
func (ap *ActuableProperty) Value() any { return ap.value }

// SetValue sets the property value. It is not asserted.
func (ap *ActuableProperty) SetValue(v any) { ap.value = v }
