package sosa

import (
	"fmt"

	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
	"github.com/cayleygraph/quad"
)

// ObservableProperty is an observable quality of a feature of interest.
type ObservableProperty struct {
	node
}

// NewObservableProperty creates an observable property. An empty iri mints a
// fresh identifier; otherwise iri must be absolute. The label is asserted
// only when non-empty.
func (s *Session) NewObservableProperty(iri, label string) (*ObservableProperty, error) {
	var id identifier.ID
	if iri == "" {
		id = s.alloc.Mint()
	} else {
		var err error
		if id, err = identifier.External(iri); err != nil {
			return nil, err
		}
	}

	var b batch
	b.add(id, ssn.RDFType, quad.IRI(ssn.ClassObservableProperty))
	if label != "" {
		b.add(id, ssn.RDFSLabel, quad.String(label))
	}
	if err := s.assert(b); err != nil {
		return nil, fmt.Errorf("create observable property: %w", err)
	}
	return &ObservableProperty{node: node{id: id, label: label, epoch: s.currentEpoch()}}, nil
}
