package store

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
	"github.com/cayleygraph/quad"
)

// Literal converts a Go value to a graph term.
//
// Strings become plain literals; integers, floats, booleans, times and
// durations become xsd-typed literals. Floats always carry a fractional part
// ("42.0") so they read back as doubles. quad.Value terms and identifiers
// pass through. Any other fmt.Stringer becomes a plain literal.
func Literal(v any) (quad.Value, error) {
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedLiteral)
	case quad.Value:
		return x, nil
	case identifier.ID:
		if x.IsZero() {
			return nil, fmt.Errorf("%w: zero identifier", ErrUnsupportedLiteral)
		}
		return x.Value(), nil
	case string:
		return quad.String(x), nil
	case time.Time:
		return typed(x.Format(time.RFC3339Nano), ssn.XSDDateTime), nil
	case time.Duration:
		return typed(formatDuration(x), ssn.XSDDuration), nil
	case bool:
		return typed(strconv.FormatBool(x), ssn.XSDBoolean), nil
	case int:
		return typed(strconv.FormatInt(int64(x), 10), ssn.XSDInteger), nil
	case int8:
		return typed(strconv.FormatInt(int64(x), 10), ssn.XSDInteger), nil
	case int16:
		return typed(strconv.FormatInt(int64(x), 10), ssn.XSDInteger), nil
	case int32:
		return typed(strconv.FormatInt(int64(x), 10), ssn.XSDInteger), nil
	case int64:
		return typed(strconv.FormatInt(x, 10), ssn.XSDInteger), nil
	case uint:
		return typed(strconv.FormatUint(uint64(x), 10), ssn.XSDInteger), nil
	case uint8:
		return typed(strconv.FormatUint(uint64(x), 10), ssn.XSDInteger), nil
	case uint16:
		return typed(strconv.FormatUint(uint64(x), 10), ssn.XSDInteger), nil
	case uint32:
		return typed(strconv.FormatUint(uint64(x), 10), ssn.XSDInteger), nil
	case uint64:
		return typed(strconv.FormatUint(x, 10), ssn.XSDInteger), nil
	case float32:
		return typed(formatDouble(float64(x), 32), ssn.XSDDouble), nil
	case float64:
		return typed(formatDouble(x, 64), ssn.XSDDouble), nil
	case fmt.Stringer:
		return quad.String(x.String()), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedLiteral, v)
	}
}

// MustLiteral is like Literal but panics on error.
func MustLiteral(v any) quad.Value {
	lit, err := Literal(v)
	if err != nil {
		panic(err)
	}
	return lit
}

func typed(lexical, datatype string) quad.TypedString {
	return quad.TypedString{Value: quad.String(lexical), Type: quad.IRI(datatype)}
}

// formatDuration renders d in the xsd:duration lexical space as seconds,
// e.g. "PT1.5S" or "-PT0.25S".
func formatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	secs := strconv.FormatInt(int64(d/time.Second), 10)
	if frac := d % time.Second; frac != 0 {
		secs += strings.TrimRight(fmt.Sprintf(".%09d", int64(frac)), "0")
	}
	return sign + "PT" + secs + "S"
}

// formatDouble renders f in the xsd:double lexical space.
func formatDouble(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
