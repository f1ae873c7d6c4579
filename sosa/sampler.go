package sosa

import (
	"fmt"

	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
)

// Sampler is a device that produces samplings. It owns a Procedure created
// alongside it.
type Sampler struct {
	node
	backRef
	s         *Session
	procedure *Procedure
	samplings []identifier.ID
}

// NewSampler creates a sampler and its procedure in a single batch.
func (s *Session) NewSampler(comment, label string) (*Sampler, error) {
	var b batch
	sm := &Sampler{
		node: s.newNode(&b, ssn.ClassSampler, label, comment),
		s:    s,
	}
	sm.procedure = s.newProcedure(&b, comment, label+" procedure")

	if err := s.assert(b); err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	s.logger.Debug("Created sampler", "id", sm.id.String(), "label", label)
	return sm, nil
}

// SamplerID implements SamplerRole.
func (sm *Sampler) SamplerID() identifier.ID { return sm.id }

// Platform returns the hosting platform, or the zero ID.
func (sm *Sampler) Platform() identifier.ID { return sm.owner }

// Procedure returns the procedure created with the sampler.
func (sm *Sampler) Procedure() *Procedure { return sm.procedure }

// AttachProcedure asserts (sampler, ssn:implements, procedure).
func (sm *Sampler) AttachProcedure() error {
	var b batch
	b.link(sm.id, ssn.PropImplements, sm.procedure.id)
	if err := sm.s.assert(b, sm, sm.procedure); err != nil {
		return fmt.Errorf("attach procedure: %w", err)
	}
	return nil
}

// AddSampling records a sampling made by this sampler, asserting
// sosa:madeSampling and sosa:madeBySampler.
func (sm *Sampler) AddSampling(sp *Sampling) error {
	if sp == nil {
		return fmt.Errorf("%w: nil sampling", ErrInvalidIdentifier)
	}
	if err := sm.s.attach(sm, &sm.samplings, sp, samplingRel); err != nil {
		return fmt.Errorf("add sampling %s: %w", sp.id, err)
	}
	return nil
}

// RemoveSampling is the inverse of AddSampling.
func (sm *Sampler) RemoveSampling(sp *Sampling) error {
	if sp == nil {
		return fmt.Errorf("%w: nil sampling", ErrInvalidIdentifier)
	}
	if err := sm.s.detach(sm, &sm.samplings, sp, samplingRel); err != nil {
		return fmt.Errorf("remove sampling %s: %w", sp.id, err)
	}
	return nil
}

// Samplings returns the identifiers of recorded samplings.
func (sm *Sampler) Samplings() []identifier.ID { return cloneIDs(sm.samplings) }
