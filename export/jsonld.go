package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/jsonld"
)

// writeJSONLD writes a JSON-LD document compacted against ctx.
func writeJSONLD(w io.Writer, triples []quad.Quad, ctx map[string]any) error {
	jw := jsonld.NewWriter(w)
	if len(ctx) > 0 {
		jw.SetLdContext(ctx)
	}
	for _, t := range triples {
		q := quad.Quad{Subject: ldBlank(t.Subject), Predicate: t.Predicate, Object: ldBlank(t.Object)}
		if err := jw.WriteQuad(q); err != nil {
			return fmt.Errorf("write json-ld: %w", err)
		}
	}
	if err := jw.Close(); err != nil {
		return fmt.Errorf("compact json-ld: %w", err)
	}
	return nil
}

// ldBlank gives blank nodes the "_:" label prefix. The cayley writer hands
// the bare label to json-gold, which would otherwise read it as a relative IRI.
func ldBlank(v quad.Value) quad.Value {
	b, ok := v.(quad.BNode)
	if !ok || strings.HasPrefix(string(b), "_:") {
		return v
	}
	return quad.BNode("_:" + string(b))
}
