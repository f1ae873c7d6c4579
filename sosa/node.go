package sosa

import (
	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
	"github.com/cayleygraph/quad"
)

// Node is anything with a graph identifier.
type Node interface {
	ID() identifier.ID
}

// Ref wraps a bare identifier as a Node, e.g. an IRI defined outside the session.
func Ref(id identifier.ID) Node {
	return ref(id)
}

type ref identifier.ID

func (r ref) ID() identifier.ID { return identifier.ID(r) }

// node is the identified core shared by every entity.
type node struct {
	id      identifier.ID
	label   string
	comment string
	epoch   uint64
}

// ID returns the entity's identifier.
func (n *node) ID() identifier.ID { return n.id }

func (n *node) epochOf() uint64 { return n.epoch }

// stamped is implemented by every entity created through a Session.
type stamped interface {
	epochOf() uint64
}

// isNilNode reports whether n is nil or a nil entity pointer. Calling ID on
// a nil entity would panic, as the embedded node has no address.
func isNilNode(n Node) bool {
	switch x := n.(type) {
	case nil:
		return true
	case *Platform:
		return x == nil
	case *Sensor:
		return x == nil
	case *Actuator:
		return x == nil
	case *Sampler:
		return x == nil
	case *ObservationCollection:
		return x == nil
	case *FeatureOfInterest:
		return x == nil
	case *ObservableProperty:
		return x == nil
	case *Procedure:
		return x == nil
	case *ActuableProperty:
		return x == nil
	case *Sampling:
		return x == nil
	case *Actuation:
		return x == nil
	}
	return false
}

// Label returns the human-readable label.
func (n *node) Label() string { return n.label }

// Comment returns the free-text comment.
func (n *node) Comment() string { return n.comment }

// newNode mints an identifier and queues the type, label and comment triples.
func (s *Session) newNode(b *batch, class, label, comment string) node {
	n := node{id: s.alloc.Mint(), label: label, comment: comment, epoch: s.currentEpoch()}
	b.add(n.id, ssn.RDFType, quad.IRI(class))
	b.add(n.id, ssn.RDFSLabel, quad.String(label))
	b.add(n.id, ssn.RDFSComment, quad.String(comment))
	return n
}

// backRef records the single owner an entity is attached to.
type backRef struct {
	owner identifier.ID
}

func (r *backRef) attachedTo() identifier.ID { return r.owner }

func (r *backRef) setOwner(id identifier.ID) { r.owner = id }

type attachable interface {
	Node
	attachedTo() identifier.ID
	setOwner(identifier.ID)
}

// relation describes a dual-recorded link: owner -forward-> target and
// target -reverse-> owner.
type relation struct {
	forward string
	reverse string
}

var (
	hostsRel     = relation{forward: ssn.PropHosts, reverse: ssn.PropIsHostedBy}
	samplingRel  = relation{forward: ssn.PropMadeSampling, reverse: ssn.PropMadeBySampler}
	actuationRel = relation{forward: ssn.PropMadeActuation, reverse: ssn.PropMadeByActuator}
)

// attach asserts both directions of rel, then appends to list and sets the
// target's back-reference. Nothing changes on error.
func (s *Session) attach(from Node, list *[]identifier.ID, target attachable, rel relation) error {
	if err := s.live(from, target); err != nil {
		return err
	}
	owner := from.ID()
	id := target.ID()
	if id.IsZero() {
		return ErrInvalidIdentifier
	}
	if indexOf(*list, id) >= 0 {
		return ErrAlreadyMember
	}
	if current := target.attachedTo(); !current.IsZero() && current != owner {
		return ErrAlreadyHosted
	}

	var b batch
	b.link(owner, rel.forward, id)
	b.link(id, rel.reverse, owner)
	if err := s.assert(b, from, target); err != nil {
		return err
	}

	*list = append(*list, id)
	target.setOwner(owner)
	return nil
}

// detach is the inverse of attach; it also clears the back-reference.
func (s *Session) detach(from Node, list *[]identifier.ID, target attachable, rel relation) error {
	if err := s.live(from, target); err != nil {
		return err
	}
	owner := from.ID()
	id := target.ID()
	i := indexOf(*list, id)
	if i < 0 {
		return ErrNotAMember
	}

	var b batch
	b.link(owner, rel.forward, id)
	b.link(id, rel.reverse, owner)
	if err := s.retract(b, from, target); err != nil {
		return err
	}

	*list = append((*list)[:i:i], (*list)[i+1:]...)
	target.setOwner(identifier.ID{})
	return nil
}

func indexOf(ids []identifier.ID, id identifier.ID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func cloneIDs(ids []identifier.ID) []identifier.ID {
	out := make([]identifier.ID, len(ids))
	copy(out, ids)
	return out
}
