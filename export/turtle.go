package export

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/c360studio/sosagraph/vocabulary/ssn"
	"github.com/cayleygraph/quad"
)

// localName matches the local parts we are willing to abbreviate as prefixed names.
var localName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// TurtleWriter writes RDF in Turtle format.
type TurtleWriter struct {
	prefixes map[string]string
	// namespaces sorted longest first so ssn-ext wins over ssn
	namespaces []string
	byNS       map[string]string
	sb         strings.Builder
}

// NewTurtleWriter creates a new Turtle writer with the given prefixes.
func NewTurtleWriter(prefixes map[string]string) *TurtleWriter {
	w := &TurtleWriter{prefixes: make(map[string]string, len(prefixes))}
	for k, v := range prefixes {
		w.SetPrefix(k, v)
	}
	return w
}

// SetPrefix sets a namespace prefix.
func (w *TurtleWriter) SetPrefix(prefix, iri string) {
	w.prefixes[prefix] = iri
	w.reindex()
}

func (w *TurtleWriter) reindex() {
	w.byNS = make(map[string]string, len(w.prefixes))
	w.namespaces = w.namespaces[:0]
	for _, p := range sortedKeys(w.prefixes) {
		ns := w.prefixes[p]
		if _, ok := w.byNS[ns]; ok {
			continue
		}
		w.byNS[ns] = p
		w.namespaces = append(w.namespaces, ns)
	}
	sort.SliceStable(w.namespaces, func(i, j int) bool {
		return len(w.namespaces[i]) > len(w.namespaces[j])
	})
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WritePrefixes writes prefix declarations.
func (w *TurtleWriter) WritePrefixes() {
	// Sort prefixes for consistent output
	for _, prefix := range sortedKeys(w.prefixes) {
		w.sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, w.prefixes[prefix]))
	}
	w.sb.WriteString("\n")
}

// WriteTriples writes the prefix block followed by one statement block per
// subject, in order of first appearance.
func (w *TurtleWriter) WriteTriples(triples []quad.Quad) {
	w.WritePrefixes()

	var subjects []string
	groups := make(map[string][]quad.Quad)
	for _, t := range triples {
		k := t.Subject.String()
		if _, ok := groups[k]; !ok {
			subjects = append(subjects, k)
		}
		groups[k] = append(groups[k], t)
	}

	for i, k := range subjects {
		w.writeSubject(groups[k])
		if i < len(subjects)-1 {
			w.sb.WriteString("\n")
		}
	}
}

// writeSubject writes one subject with its predicate-object list. Objects that
// share a predicate are joined with commas.
func (w *TurtleWriter) writeSubject(triples []quad.Quad) {
	var preds []string
	objects := make(map[string][]quad.Value)
	predTerm := make(map[string]quad.Value)
	for _, t := range triples {
		k := t.Predicate.String()
		if _, ok := objects[k]; !ok {
			preds = append(preds, k)
			predTerm[k] = t.Predicate
		}
		objects[k] = append(objects[k], t.Object)
	}

	w.sb.WriteString(w.term(triples[0].Subject))
	w.sb.WriteString("\n")
	for i, k := range preds {
		w.sb.WriteString("    ")
		w.sb.WriteString(w.predicate(predTerm[k]))
		w.sb.WriteString(" ")
		for j, o := range objects[k] {
			if j > 0 {
				w.sb.WriteString(" , ")
			}
			w.sb.WriteString(w.term(o))
		}
		if i < len(preds)-1 {
			w.sb.WriteString(" ;\n")
		} else {
			w.sb.WriteString(" .\n")
		}
	}
}

// WriteBlank writes a blank line for readability.
func (w *TurtleWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

func (w *TurtleWriter) predicate(p quad.Value) string {
	if iri, ok := p.(quad.IRI); ok && string(iri) == ssn.RDFType {
		return "a"
	}
	return w.term(p)
}

// term formats a single term.
func (w *TurtleWriter) term(v quad.Value) string {
	switch x := v.(type) {
	case quad.IRI:
		return w.iri(string(x))
	case quad.BNode:
		return "_:" + string(x)
	case quad.String:
		return fmt.Sprintf("\"%s\"", escapeString(string(x)))
	case quad.LangString:
		return fmt.Sprintf("\"%s\"@%s", escapeString(string(x.Value)), x.Lang)
	case quad.TypedString:
		return fmt.Sprintf("\"%s\"^^%s", escapeString(string(x.Value)), w.iri(string(x.Type)))
	default:
		return v.String()
	}
}

// iri abbreviates an IRI to a prefixed name when a namespace matches.
func (w *TurtleWriter) iri(s string) string {
	for _, ns := range w.namespaces {
		if !strings.HasPrefix(s, ns) {
			continue
		}
		local := strings.TrimPrefix(s, ns)
		if localName.MatchString(local) {
			return w.byNS[ns] + ":" + local
		}
	}
	return "<" + s + ">"
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
