package sosa

import (
	"fmt"

	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
	"github.com/cayleygraph/quad"
)

// FeatureKind distinguishes proximate features from ultimate ones.
type FeatureKind int

const (
	// FeatureProximate is the thing directly observed or sampled.
	FeatureProximate FeatureKind = iota
	// FeatureUltimate is the feature a collection is ultimately about.
	FeatureUltimate
)

func (k FeatureKind) String() string {
	if k == FeatureUltimate {
		return "ultimate"
	}
	return "proximate"
}

// FeatureOfInterest is the thing whose property is observed, sampled or
// actuated. Both kinds are typed sosa:FeatureOfInterest in the graph.
type FeatureOfInterest struct {
	node
	kind FeatureKind
}

// NewFeatureOfInterest creates a proximate feature of interest.
func (s *Session) NewFeatureOfInterest(comment, label string) (*FeatureOfInterest, error) {
	return s.newFeature(comment, label, FeatureProximate)
}

// NewUltimateFeatureOfInterest creates an ultimate feature of interest.
func (s *Session) NewUltimateFeatureOfInterest(comment, label string) (*FeatureOfInterest, error) {
	return s.newFeature(comment, label, FeatureUltimate)
}

func (s *Session) newFeature(comment, label string, kind FeatureKind) (*FeatureOfInterest, error) {
	var b batch
	f := &FeatureOfInterest{node: s.newNode(&b, ssn.ClassFeatureOfInterest, label, comment), kind: kind}
	if err := s.assert(b); err != nil {
		return nil, fmt.Errorf("create %s feature of interest: %w", kind, err)
	}
	return f, nil
}

// FeatureOfInterestFromIRI wraps an externally defined feature. Only its type
// triple is asserted.
func (s *Session) FeatureOfInterestFromIRI(iri string, kind FeatureKind) (*FeatureOfInterest, error) {
	id, err := identifier.External(iri)
	if err != nil {
		return nil, err
	}

	var b batch
	b.add(id, ssn.RDFType, quad.IRI(ssn.ClassFeatureOfInterest))
	if err := s.assert(b); err != nil {
		return nil, fmt.Errorf("create feature of interest %s: %w", id, err)
	}
	return &FeatureOfInterest{node: node{id: id, epoch: s.currentEpoch()}, kind: kind}, nil
}

// Kind returns the feature kind.
func (f *FeatureOfInterest) Kind() FeatureKind { return f.kind }

// IsUltimate reports whether the feature is an ultimate feature of interest.
func (f *FeatureOfInterest) IsUltimate() bool { return f.kind == FeatureUltimate }
