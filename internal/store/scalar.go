package store

import (
	"errors"
	"fmt"
	"strconv"
)

// Encoding is the latent numeric form of a Scalar cell.
type Encoding int

const (
	// EncNone marks an empty/absent scalar (only the zero value before
	// a key exists; never the result of parsing a non-empty string).
	EncNone Encoding = iota
	// EncInt is a strict 64-bit signed decimal with no leading zero
	// (other than a lone "0") and no leading sign at all.
	EncInt
	// EncDouble is an IEEE-754 double; sign, scientific notation and
	// leading zeros are all allowed, except that a digit-only string
	// with a leading zero (e.g. "01") is BYTES.
	EncDouble
	// EncBytes is opaque content that parsed as neither.
	EncBytes
)

// ErrNotNumeric is returned by UpdateInt/UpdateFloat when the scalar's
// current encoding can't take the requested kind of delta.
var ErrNotNumeric = errors.New("store: scalar is not numeric enough for this update")

// Scalar is a value cell holding one of {absent, integer, double,
// opaque bytes}. It parses its text once on construction and caches
// both the parsed number and a presentation text, so repeated
// arithmetic updates never need to re-parse. Until the first
// arithmetic update, the cached text is exactly the text the scalar
// was constructed from (so "1.0" reads back as "1.0", not "1"); after
// an update the text is regenerated from the number (spec.md §4.1).
type Scalar struct {
	enc  Encoding
	i    int64
	f    float64
	text string // unquoted content: original input for INT/DOUBLE/BYTES, regenerated after an update
}

// NewScalarEmpty returns a Scalar in the NONE encoding.
func NewScalarEmpty() *Scalar {
	return &Scalar{enc: EncNone}
}

// NewScalar parses text into a Scalar using the rules in spec.md §3:
// a strict decimal integer (no leading sign, no leading zero other
// than a lone "0") is INT; else a value parseable as a float (sign,
// scientific notation and leading zeros allowed, no trailing junk) is
// DOUBLE; else BYTES. A digit-only string with a leading zero (e.g.
// "01") is neither INT nor DOUBLE, so it is BYTES. An empty string is
// NONE.
func NewScalar(text string) *Scalar {
	if text == "" {
		return &Scalar{enc: EncNone}
	}
	if n, ok := parseStrictInt(text); ok {
		return &Scalar{enc: EncInt, i: n, text: text}
	}
	if f, ok := parseStrictFloat(text); ok {
		return &Scalar{enc: EncDouble, f: f, text: text}
	}
	return &Scalar{enc: EncBytes, text: text}
}

// parseStrictInt accepts only the forms spec.md §3 calls INT: no
// leading sign at all, and either a lone "0" or a digit string with no
// leading zero. A negative value (e.g. "-5") deliberately falls through
// to parseStrictFloat instead, matching spec.md §3's examples ("+5" is
// DOUBLE because INT disallows any leading sign).
func parseStrictInt(s string) (int64, bool) {
	if s == "" || s[0] == '-' {
		return 0, false
	}
	if s[0] == '0' && len(s) > 1 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseStrictFloat accepts anything strconv.ParseFloat accepts with no
// trailing junk and no surrounding whitespace (ParseFloat already
// rejects both), except a digit-only string with a leading zero such
// as "01", which is rejected so that NewScalar classifies it as BYTES.
func parseStrictFloat(s string) (float64, bool) {
	if len(s) > 1 && s[0] == '0' {
		digitsOnly := true
		for i := 0; i < len(s); i++ {
			if s[i] < '0' || s[i] > '9' {
				digitsOnly = false
				break
			}
		}
		if digitsOnly {
			return 0, false
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Reset reparses text and replaces the scalar's contents in place, the
// way a fresh SET overwrites a string value outright rather than
// updating the existing one (spec.md §4.5 SET semantics).
func (sc *Scalar) Reset(text string) {
	*sc = *NewScalar(text)
}

// Encoding reports the scalar's current latent encoding.
func (sc *Scalar) Encoding() Encoding {
	return sc.enc
}

// Text renders the scalar's presentation form (spec.md §3): cached
// text for numeric encodings, the raw content surrounded by double
// quotes for BYTES, and the literal "(nil)" for NONE.
func (sc *Scalar) Text() string {
	switch sc.enc {
	case EncInt, EncDouble:
		return sc.text
	case EncBytes:
		return `"` + sc.text + `"`
	default:
		return "(nil)"
	}
}

// UpdateInt applies an integer delta. Only defined from INT; applying
// an int delta to a DOUBLE or BYTES scalar is a usage error.
func (sc *Scalar) UpdateInt(delta int64) error {
	if sc.enc != EncInt {
		return ErrNotNumeric
	}
	sc.i += delta
	sc.text = strconv.FormatInt(sc.i, 10)
	return nil
}

// UpdateFloat applies a float delta. Defined from INT or DOUBLE. After
// the update, if the result is exactly representable as an integer the
// scalar downgrades to INT, else it becomes DOUBLE (spec.md §4.1). The
// regenerated text matches a fixed six-decimal rendering for DOUBLE,
// the format the source's std::to_string(double) produces.
func (sc *Scalar) UpdateFloat(delta float64) error {
	switch sc.enc {
	case EncInt:
		sc.f = float64(sc.i) + delta
	case EncDouble:
		sc.f += delta
	default:
		return ErrNotNumeric
	}
	if asInt := int64(sc.f); float64(asInt) == sc.f {
		sc.enc = EncInt
		sc.i = asInt
		sc.text = strconv.FormatInt(sc.i, 10)
		return nil
	}
	sc.enc = EncDouble
	sc.text = fmt.Sprintf("%f", sc.f)
	return nil
}
