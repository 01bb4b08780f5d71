package minyaml

import (
	"iter"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind identifies the type of a [Scalar].
type Kind int8

// The kinds of scalar produced by [Coerce], in coercion order.
const (
	Null = Kind(iota)
	Bool
	Int
	Float
	String
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	default:
		panic("Unknown Kind")
	}
}

func (k Kind) GoString() string {
	return k.String()
}

// A Node is either a [Scalar] or a [*Mapping].
type Node interface {
	node()
}

// Scalar is a typed leaf value. The zero Scalar is null.
//
// Integers that do not fit in an int64 keep their decimal digits in s, so
// that Scalars stay comparable with ==.
type Scalar struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

func (Scalar) node() {}

// NewNull returns the null scalar.
func NewNull() Scalar { return Scalar{kind: Null} }

// NewBool returns a boolean scalar.
func NewBool(b bool) Scalar { return Scalar{kind: Bool, b: b} }

// NewInt returns an integer scalar.
func NewInt(i int64) Scalar { return Scalar{kind: Int, i: i} }

// NewBigInt returns an integer scalar of any size.
func NewBigInt(n *big.Int) Scalar {
	if n.IsInt64() {
		return NewInt(n.Int64())
	}
	return Scalar{kind: Int, s: n.String()}
}

// NewFloat returns a floating point scalar.
func NewFloat(f float64) Scalar { return Scalar{kind: Float, f: f} }

// NewString returns a string scalar.
func NewString(s string) Scalar { return Scalar{kind: String, s: s} }

// Kind reports which of the typed values the scalar holds.
func (s Scalar) Kind() Kind { return s.kind }

func (s Scalar) Bool() bool { return s.b }

// Int returns the value of an integer scalar. It is only meaningful when
// [Scalar.IsInt64] reports true; use [Scalar.BigInt] otherwise.
func (s Scalar) Int() int64 { return s.i }

// IsInt64 reports whether s is an integer that fits in an int64.
func (s Scalar) IsInt64() bool { return s.kind == Int && s.s == "" }

// BigInt returns the value of an integer scalar, or nil for other kinds.
func (s Scalar) BigInt() *big.Int {
	if s.kind != Int {
		return nil
	}
	if s.s == "" {
		return big.NewInt(s.i)
	}
	n, _ := new(big.Int).SetString(s.s, 10)
	return n
}

func (s Scalar) Float() float64 { return s.f }
func (s Scalar) Str() string { return s.s }
func (s Scalar) IsNull() bool { return s.kind == Null }
func (s Scalar) Equal(o Scalar) bool { return s == o }

// Any returns the scalar as a plain Go value: nil, bool, int64, float64 or
// string. Integers too large for an int64 are returned as a *big.Int.
func (s Scalar) Any() any {
	switch s.kind {
	case Bool:
		return s.b
	case Int:
		if !s.IsInt64() {
			return s.BigInt()
		}
		return s.i
	case Float:
		return s.f
	case String:
		return s.s
	default:
		return nil
	}
}

// String returns the natural textual form of the value: true, false, null,
// the decimal digits of a number, or the string itself (unquoted).
func (s Scalar) String() string {
	switch s.kind {
	case Bool:
		return strconv.FormatBool(s.b)
	case Int:
		if !s.IsInt64() {
			return s.s
		}
		return strconv.FormatInt(s.i, 10)
	case Float:
		return formatFloat(s.f)
	case String:
		return s.s
	default:
		return "null"
	}
}

func formatFloat(f float64) string {
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	str := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(str, ".") {
		str += ".0"
	}
	return str
}

// Coerce converts a raw value string into a typed scalar. The checks are
// applied in a fixed order: booleans, null, unsigned integers (of any size),
// floats, and finally strings (with one enclosing quote removed from each
// end).
func Coerce(raw string) Scalar {
	switch strings.ToLower(raw) {
	case "true":
		return NewBool(true)
	case "false":
		return NewBool(false)
	case "null":
		return NewNull()
	}
	if isDigits(raw) {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return NewInt(i)
		}
		n, _ := new(big.Int).SetString(raw, 10)
		return NewBigInt(n)
	}
	if f, ok := parseFloat(raw); ok {
		return NewFloat(f)
	}
	return NewString(unquote(raw))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// strconv also accepts hex floats, infinities and NaN, none of which can be
// written as JSON numbers. Underscores are allowed only between two digits,
// and only in decimal form.
func parseFloat(s string) (float64, bool) {
	if strings.ContainsAny(s, "xX") {
		return 0, false
	}
	if strings.Contains(s, "_") {
		if !validSeparators(s) {
			return 0, false
		}
		s = strings.ReplaceAll(s, "_", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func validSeparators(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && (i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1])) {
			return false
		}
	}
	return true
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

func unquote(s string) string {
	if len(s) > 0 && isQuote(s[0]) {
		s = s[1:]
	}
	if len(s) > 0 && isQuote(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}

// Entry is a single key/value pair in a [Mapping].
type Entry struct {
	Key   string
	Value Node
}

// Mapping is an insertion-ordered map from string keys to nodes.
// The zero value is an empty mapping ready to use.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

func (*Mapping) node() {}

// NewMapping returns a mapping containing entries in order. Later entries
// replace earlier ones with the same key.
func NewMapping(entries ...Entry) *Mapping {
	m := &Mapping{}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	return len(m.entries)
}

// Set adds key to the end of the mapping, or replaces its value in place if
// it is already present.
func (m *Mapping) Set(key string, value Node) {
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return
	}
	if m.index == nil {
		m.index = map[string]int{}
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Get returns the value for key.
func (m *Mapping) Get(key string) (Node, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// All iterates over the entries in insertion order.
func (m *Mapping) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Any returns a plain Go view of the mapping, with nested mappings as
// map[string]any and scalars converted by [Scalar.Any].
func (m *Mapping) Any() map[string]any {
	out := make(map[string]any, len(m.entries))
	for _, e := range m.entries {
		switch v := e.Value.(type) {
		case *Mapping:
			out[e.Key] = v.Any()
		case Scalar:
			out[e.Key] = v.Any()
		default:
			out[e.Key] = nil
		}
	}
	return out
}

// Equal reports whether both mappings hold the same keys in the same order
// with equal values.
func (m *Mapping) Equal(o *Mapping) bool {
	if m.Len() != o.Len() {
		return false
	}
	for i, e := range m.entries {
		oe := o.entries[i]
		if e.Key != oe.Key {
			return false
		}
		switch v := e.Value.(type) {
		case *Mapping:
			ov, ok := oe.Value.(*Mapping)
			if !ok || !v.Equal(ov) {
				return false
			}
		case Scalar:
			ov, ok := oe.Value.(Scalar)
			if !ok || !v.Equal(ov) {
				return false
			}
		case nil:
			if oe.Value != nil {
				return false
			}
		}
	}
	return true
}
