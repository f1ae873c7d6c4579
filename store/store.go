// Package store holds the triple set shared by the entities of one session.
package store

import (
	"fmt"

	"github.com/cayleygraph/quad"
)

// Store is the triple-store contract consumed by the entity model.
// Assert and Retract apply a whole batch or nothing.
type Store interface {
	Assert(triples ...quad.Quad) error
	Retract(triples ...quad.Quad) error
	Has(t quad.Quad) bool
	Triples() []quad.Quad
	Len() int
}

// Triple builds a quad in the default graph.
func Triple(s, p, o quad.Value) quad.Quad {
	return quad.Quad{Subject: s, Predicate: p, Object: o}
}

// validate checks that a triple is well formed: a node subject, an IRI predicate
// and a non-nil object.
func validate(t quad.Quad) error {
	switch t.Subject.(type) {
	case quad.IRI, quad.BNode:
	default:
		return fmt.Errorf("%w: subject %v is not a node", ErrWrite, t.Subject)
	}
	if _, ok := t.Predicate.(quad.IRI); !ok {
		return fmt.Errorf("%w: predicate %v is not an IRI", ErrWrite, t.Predicate)
	}
	if t.Object == nil {
		return fmt.Errorf("%w: nil object for %v %v", ErrWrite, t.Subject, t.Predicate)
	}
	return nil
}

// key identifies a triple in the default graph. Labels are ignored.
func key(t quad.Quad) string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String()
}
