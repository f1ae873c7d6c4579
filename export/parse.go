package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/c360studio/sosagraph/vocabulary/ssn"
	"github.com/cayleygraph/quad"
	"github.com/knakk/rdf"
	"github.com/piprate/json-gold/ld"
)

// Parse reads a serialized graph back into triples.
func Parse(r io.Reader, format Format) ([]quad.Quad, error) {
	switch format {
	case FormatTurtle:
		return decodeTriples(rdf.NewTripleDecoder(r, rdf.Turtle))
	case FormatNTriples:
		return decodeTriples(rdf.NewTripleDecoder(r, rdf.NTriples))
	case FormatJSONLD:
		return parseJSONLD(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func parseJSONLD(r io.Reader) ([]quad.Quad, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse json-ld: %w", err)
	}

	proc := ld.NewJsonLdProcessor()
	res, err := proc.ToRDF(doc, ld.NewJsonLdOptions(""))
	if err != nil {
		return nil, fmt.Errorf("parse json-ld: %w", err)
	}
	ds, ok := res.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("parse json-ld: unexpected result %T", res)
	}

	var out []quad.Quad
	for _, q := range ds.GetQuads("@default") {
		out = append(out, quad.Quad{
			Subject:   fromNode(q.Subject),
			Predicate: fromNode(q.Predicate),
			Object:    fromNode(q.Object),
		})
	}
	return out, nil
}

// fromNode converts a JSON-LD RDF node to a quad value.
func fromNode(n ld.Node) quad.Value {
	switch x := n.(type) {
	case *ld.IRI:
		return quad.IRI(x.Value)
	case *ld.BlankNode:
		return quad.BNode(strings.TrimPrefix(x.Attribute, "_:"))
	case *ld.Literal:
		return literal(x.Value, x.Datatype, x.Language)
	default:
		return quad.String(n.GetValue())
	}
}

func decodeTriples(dec rdf.TripleDecoder) ([]quad.Quad, error) {
	var out []quad.Quad
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		out = append(out, quad.Quad{
			Subject:   fromTerm(t.Subj),
			Predicate: fromTerm(t.Pred),
			Object:    fromTerm(t.Obj),
		})
	}
}

// fromTerm converts a decoded Turtle term to a quad value.
func fromTerm(t rdf.Term) quad.Value {
	switch t.Type() {
	case rdf.TermIRI:
		return quad.IRI(t.String())
	case rdf.TermBlank:
		return quad.BNode(strings.TrimPrefix(t.String(), "_:"))
	default:
		lit, ok := t.(rdf.Literal)
		if !ok {
			return quad.String(t.String())
		}
		return literal(lit.String(), lit.DataType.String(), lit.Lang())
	}
}

func literal(value, datatype, lang string) quad.Value {
	switch {
	case lang != "":
		return quad.LangString{Value: quad.String(value), Lang: lang}
	case datatype != "" && datatype != ssn.XSDString:
		return quad.TypedString{Value: quad.String(value), Type: quad.IRI(datatype)}
	default:
		return quad.String(value)
	}
}
