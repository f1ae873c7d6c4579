package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      EntityType.Domain,
		Category:    EntityType.Category,
		Version:     EntityType.Version,
		Description: "SOSA/SSN node with its SOSA class and outgoing triples",
		Factory:     func() any { return &EntityPayload{} },
	})
	if err != nil {
		panic("failed to register EntityPayload: " + err.Error())
	}
}

// EntityType is the message type for SOSA entity payloads.
var EntityType = message.Type{Domain: "sosa", Category: "entity", Version: "v1"}

var (
	// ErrMissingEntityID is returned for a payload without an ID.
	ErrMissingEntityID = errors.New("entity ID is required")
	// ErrInvalidPayload is returned when a payload's triples disagree with it.
	ErrInvalidPayload = errors.New("invalid entity payload")
)

// EntityPayload carries one graph node: its SOSA/SSN class, when the node is
// typed with one, and every triple whose subject it is.
type EntityPayload struct {
	EntityID_  string           `json:"id"`
	Class      string           `json:"class,omitempty"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (e *EntityPayload) EntityID() string          { return e.EntityID_ }
func (e *EntityPayload) Triples() []message.Triple { return e.TripleData }
func (e *EntityPayload) Schema() message.Type      { return EntityType }

// Validate checks that every triple belongs to the entity, that predicates
// with a registered dotted name use it, and that Class is a SOSA/SSN class
// backed by an entity.type triple.
func (e *EntityPayload) Validate() error {
	if e.EntityID_ == "" {
		return ErrMissingEntityID
	}

	typed := false
	for _, t := range e.TripleData {
		if t.Subject != e.EntityID_ {
			return fmt.Errorf("%w: triple subject %q is not %q", ErrInvalidPayload, t.Subject, e.EntityID_)
		}
		if t.Predicate == "" {
			return fmt.Errorf("%w: empty predicate", ErrInvalidPayload)
		}
		if name, ok := ssn.PredicateForIRI(t.Predicate); ok {
			return fmt.Errorf("%w: predicate %s must be named %s", ErrInvalidPayload, t.Predicate, name)
		}
		if t.Predicate == ssn.NodeType && t.Object == e.Class {
			typed = true
		}
	}

	if e.Class == "" {
		return nil
	}
	if !ssn.IsClass(e.Class) {
		return fmt.Errorf("%w: %s is not a SOSA/SSN class", ErrInvalidPayload, e.Class)
	}
	if !typed {
		return fmt.Errorf("%w: no %s triple for class %s", ErrInvalidPayload, ssn.NodeType, e.Class)
	}
	return nil
}

// Kind returns the local name of the entity's class, e.g. "Platform".
func (e *EntityPayload) Kind() string {
	if i := strings.LastIndexAny(e.Class, "/#"); i >= 0 {
		return e.Class[i+1:]
	}
	return e.Class
}

func (e *EntityPayload) MarshalJSON() ([]byte, error) {
	type Alias EntityPayload
	return json.Marshal((*Alias)(e))
}

func (e *EntityPayload) UnmarshalJSON(data []byte) error {
	type Alias EntityPayload
	return json.Unmarshal(data, (*Alias)(e))
}
