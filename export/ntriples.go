package export

import (
	"fmt"
	"io"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
)

// writeNTriples writes one line per triple. Graph labels are dropped.
func writeNTriples(w io.Writer, triples []quad.Quad) error {
	nw := nquads.NewWriter(w)
	for _, t := range triples {
		if err := nw.WriteQuad(quad.Quad{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object}); err != nil {
			return fmt.Errorf("write n-triples: %w", err)
		}
	}
	return nw.Close()
}
