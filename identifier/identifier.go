// Package identifier mints and validates node identifiers for graph entities.
package identifier

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/google/uuid"
)

// ErrInvalid is returned for empty or malformed externally supplied identifiers.
var ErrInvalid = errors.New("invalid identifier")

// Kind distinguishes addressable IRIs from anonymous blank nodes.
type Kind uint8

const (
	// KindNone is the kind of the zero ID.
	KindNone Kind = iota
	// KindBlank is a locally scoped, non-dereferenceable node.
	KindBlank
	// KindIRI is a globally addressable resource.
	KindIRI
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindIRI:
		return "iri"
	default:
		return "none"
	}
}

// ID is an immutable node identifier. IDs are comparable and usable as map keys.
type ID struct {
	kind  Kind
	value string
}

// Kind returns the identifier kind.
func (id ID) Kind() Kind { return id.kind }

// IsZero reports whether the ID was never assigned.
func (id ID) IsZero() bool { return id.kind == KindNone }

// IsBlank reports whether the ID is a blank node.
func (id ID) IsBlank() bool { return id.kind == KindBlank }

// Value returns the graph term for the identifier, or nil for the zero ID.
func (id ID) Value() quad.Value {
	switch id.kind {
	case KindBlank:
		return quad.BNode(id.value)
	case KindIRI:
		return quad.IRI(id.value)
	default:
		return nil
	}
}

// String renders the ID in N-Triples form: <iri> or _:label.
func (id ID) String() string {
	switch id.kind {
	case KindBlank:
		return "_:" + id.value
	case KindIRI:
		return "<" + id.value + ">"
	default:
		return ""
	}
}

// Raw returns the bare IRI or blank node label.
func (id ID) Raw() string { return id.value }

// External wraps a caller-supplied IRI. The IRI must be absolute and contain no
// characters that are illegal in an IRIREF.
func External(iri string) (ID, error) {
	if err := validateIRI(iri); err != nil {
		return ID{}, err
	}
	return ID{kind: KindIRI, value: iri}, nil
}

// MustExternal is like External but panics on error. Intended for constants.
func MustExternal(iri string) ID {
	id, err := External(iri)
	if err != nil {
		panic(err)
	}
	return id
}

// Blank wraps an existing blank node label, e.g. one read back from a parsed graph.
func Blank(label string) (ID, error) {
	label = strings.TrimPrefix(label, "_:")
	if label == "" || strings.ContainsAny(label, " \t\r\n") {
		return ID{}, fmt.Errorf("%w: blank node label %q", ErrInvalid, label)
	}
	return ID{kind: KindBlank, value: label}, nil
}

// FromValue converts a subject or object term back to an ID.
func FromValue(v quad.Value) (ID, error) {
	switch t := v.(type) {
	case quad.IRI:
		return External(string(t))
	case quad.BNode:
		return Blank(string(t))
	default:
		return ID{}, fmt.Errorf("%w: %T is not a node term", ErrInvalid, v)
	}
}

func validateIRI(iri string) error {
	if strings.TrimSpace(iri) == "" {
		return fmt.Errorf("%w: empty IRI", ErrInvalid)
	}
	if strings.ContainsAny(iri, " \t\r\n<>\"{}|^`\\") {
		return fmt.Errorf("%w: illegal character in %q", ErrInvalid, iri)
	}
	u, err := url.Parse(iri)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("%w: %q is not absolute", ErrInvalid, iri)
	}
	return nil
}

// DefaultBlankPrefix starts every minted blank node label so labels never begin
// with a digit.
const DefaultBlankPrefix = "n"

// Allocator mints fresh identifiers. The zero value mints blank nodes.
type Allocator struct {
	baseIRI string
	prefix  string
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithBaseIRI makes the allocator mint IRIs under base instead of blank nodes.
func WithBaseIRI(base string) Option {
	return func(a *Allocator) {
		a.baseIRI = base
	}
}

// WithBlankPrefix sets the label prefix for minted blank nodes.
func WithBlankPrefix(prefix string) Option {
	return func(a *Allocator) {
		a.prefix = prefix
	}
}

// NewAllocator creates an allocator. A non-empty base IRI is validated.
func NewAllocator(opts ...Option) (*Allocator, error) {
	a := &Allocator{prefix: DefaultBlankPrefix}
	for _, opt := range opts {
		opt(a)
	}
	if a.baseIRI != "" {
		if err := validateIRI(a.baseIRI); err != nil {
			return nil, fmt.Errorf("base IRI: %w", err)
		}
	}
	if a.prefix == "" {
		a.prefix = DefaultBlankPrefix
	}
	if strings.ContainsAny(a.prefix, " \t\r\n:") {
		return nil, fmt.Errorf("%w: blank prefix %q", ErrInvalid, a.prefix)
	}
	return a, nil
}

// Mint returns a fresh identifier, unique within the process.
func (a *Allocator) Mint() ID {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	if a != nil && a.baseIRI != "" {
		return ID{kind: KindIRI, value: a.baseIRI + token}
	}
	prefix := DefaultBlankPrefix
	if a != nil && a.prefix != "" {
		prefix = a.prefix
	}
	return ID{kind: KindBlank, value: prefix + token}
}
