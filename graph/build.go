// Package graph converts a SOSA graph into semstreams entity payloads for
// graph ingestion.
package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
	"github.com/cayleygraph/quad"
)

// GraphIngestSubject is the subject entity payloads are routed to.
const GraphIngestSubject = "graph.ingest.entity"

// DefaultSource is the provenance recorded on built triples.
const DefaultSource = "sosagraph.build"

// Source lists the triples to convert.
type Source interface {
	Triples() []quad.Quad
}

// BuildPayloads groups the triples of src by subject, in order of first
// appearance, and returns one payload per subject, tagged with the first
// SOSA/SSN class the subject is typed with. Registered predicates are
// named by their dotted form; anything else keeps its IRI.
func BuildPayloads(src Source, source string, now time.Time) []*EntityPayload {
	if source == "" {
		source = DefaultSource
	}

	var payloads []*EntityPayload
	bySubject := make(map[string]*EntityPayload)

	for _, q := range src.Triples() {
		subject := EntityID(q.Subject)
		p, ok := bySubject[subject]
		if !ok {
			p = &EntityPayload{EntityID_: subject, UpdatedAt: now}
			bySubject[subject] = p
			payloads = append(payloads, p)
		}

		if p.Class == "" && q.Predicate == quad.IRI(ssn.RDFType) {
			if class, ok := q.Object.(quad.IRI); ok && ssn.IsClass(string(class)) {
				p.Class = string(class)
			}
		}

		p.TripleData = append(p.TripleData, message.Triple{
			Subject:    subject,
			Predicate:  PredicateName(q.Predicate),
			Object:     Object(q.Object),
			Source:     source,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	return payloads
}

// EntityID renders a node as an entity ID: the IRI itself, or _:label for a
// blank node.
func EntityID(v quad.Value) string {
	switch x := v.(type) {
	case quad.IRI:
		return string(x)
	case quad.BNode:
		return "_:" + string(x)
	default:
		return quad.StringOf(v)
	}
}

// PredicateName maps a predicate IRI to its registered dotted name.
func PredicateName(v quad.Value) string {
	iri, ok := v.(quad.IRI)
	if !ok {
		return quad.StringOf(v)
	}
	if name, ok := ssn.PredicateForIRI(string(iri)); ok {
		return name
	}
	return string(iri)
}

// Object converts an object term to the native value carried in a triple.
// Node references become entity IDs; xsd-typed literals become Go values when
// their lexical form parses.
func Object(v quad.Value) any {
	switch x := v.(type) {
	case quad.IRI, quad.BNode:
		return EntityID(x)
	case quad.String:
		return string(x)
	case quad.LangString:
		return string(x.Value)
	case quad.TypedString:
		return typedObject(string(x.Value), string(x.Type))
	default:
		return quad.NativeOf(v)
	}
}

func typedObject(lexical, datatype string) any {
	switch datatype {
	case ssn.XSDDouble, ssn.XSDDecimal:
		if f, err := strconv.ParseFloat(lexical, 64); err == nil {
			return f
		}
	case ssn.XSDInteger:
		if i, err := strconv.ParseInt(lexical, 10, 64); err == nil {
			return i
		}
	case ssn.XSDBoolean:
		if b, err := strconv.ParseBool(lexical); err == nil {
			return b
		}
	case ssn.XSDDateTime:
		if t, err := time.Parse(time.RFC3339Nano, lexical); err == nil {
			return t
		}
	}
	return lexical
}

// WriteJSONLines writes one JSON payload per line.
func WriteJSONLines(w io.Writer, payloads []*EntityPayload) error {
	enc := json.NewEncoder(w)
	for _, p := range payloads {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("payload %s: %w", p.EntityID_, err)
		}
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode payload %s: %w", p.EntityID_, err)
		}
	}
	return nil
}
