// Package export serializes a triple set to Turtle, N-Triples or JSON-LD and
// parses those formats back.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/c360studio/sosagraph/vocabulary/ssn"
	"github.com/cayleygraph/quad"
)

// ErrUnsupportedFormat is returned for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Source is anything that can list its triples. store.Store satisfies it.
type Source interface {
	Triples() []quad.Quad
}

// Triples adapts a plain slice to Source.
type Triples []quad.Quad

// Triples returns the slice itself.
func (t Triples) Triples() []quad.Quad { return t }

type options struct {
	prefixes map[string]string
	context  map[string]any
}

// Option customizes serialization.
type Option func(*options)

// WithPrefixes adds Turtle prefixes on top of the default namespace table.
func WithPrefixes(prefixes map[string]string) Option {
	return func(o *options) {
		for k, v := range prefixes {
			o.prefixes[k] = v
		}
	}
}

// WithContext replaces the JSON-LD context.
func WithContext(ctx map[string]any) Option {
	return func(o *options) {
		o.context = ctx
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		prefixes: ssn.Prefixes(),
		context:  ssn.Context(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Serialize renders the current triples of src in the requested format.
// src is only read.
func Serialize(src Source, format Format, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, src, format, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write streams the triples of src to w in the requested format.
func Write(w io.Writer, src Source, format Format, opts ...Option) error {
	o := newOptions(opts)
	triples := src.Triples()

	switch format {
	case FormatTurtle:
		tw := NewTurtleWriter(o.prefixes)
		tw.WriteTriples(triples)
		_, err := io.WriteString(w, tw.String())
		return err
	case FormatNTriples:
		return writeNTriples(w, triples)
	case FormatJSONLD:
		return writeJSONLD(w, triples, o.context)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
