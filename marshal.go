package minyaml

import (
	"encoding"
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"unicode"
)

func isSpaceAround(s string) bool {
	return s != "" && (unicode.IsSpace(rune(s[0])) || unicode.IsSpace(rune(s[len(s)-1])))
}

func marshalKey(key string) (string, error) {
	if strings.Contains(key, ": ") || strings.ContainsAny(key, "\r\n") ||
		strings.HasPrefix(key, "#") || isSpaceAround(key) {
		return "", fmt.Errorf("key %q cannot be represented", key)
	}
	return key, nil
}

// quoteString wraps s in double quotes when it would otherwise be read back
// as a different value.
func quoteString(s string) string {
	if s == "" || isSpaceAround(s) || Coerce(s) != NewString(s) {
		return `"` + s + `"`
	}
	return s
}

func marshalScalar(s Scalar) (string, error) {
	switch s.Kind() {
	case String:
		if strings.ContainsAny(s.Str(), "\r\n") {
			return "", fmt.Errorf("string %q spans multiple lines", s.Str())
		}
		return quoteString(s.Str()), nil
	case Int:
		if s.BigInt().Sign() < 0 {
			return "", fmt.Errorf("negative integer %s cannot be represented", s)
		}
	}
	return s.String(), nil
}

func marshalSection(b *strings.Builder, m *Mapping, indent string) error {
	for key, value := range m.All() {
		k, err := marshalKey(key)
		if err != nil {
			return err
		}
		switch v := value.(type) {
		case *Mapping:
			b.WriteString(indent + k + ":\n")
			if err := marshalSection(b, v, indent+strings.Repeat(" ", DefaultIndentWidth)); err != nil {
				return err
			}
		case Scalar:
			text, err := marshalScalar(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			b.WriteString(indent + k + ": " + text + "\n")
		default:
			return fmt.Errorf("%s: unsupported value %T", key, value)
		}
	}
	return nil
}

// Marshal writes m as a document that [Parse] reads back into an equal
// mapping. Strings are quoted only when needed.
//
// It returns an error for values that cannot be written in this format,
// such as keys containing ": ", multi-line strings, or negative integers.
func Marshal(m *Mapping) ([]byte, error) {
	var b strings.Builder
	if err := marshalSection(&b, m, ""); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// Unmarshal parses data and stores the result in the value pointed to by v,
// in the same way as json.Unmarshal.
//
// For struct fields, Unmarshal will first look for the name in a
// `minyaml:"name"` tag, then in a `json:"name"` tag, and finally use the
// field name itself or its snake_case version.
//
// When unmarshalling into an interface, mappings become map[string]any and
// scalars become nil, bool, int64, float64 or string. A null scalar leaves
// the target at its zero value.
func Unmarshal(data []byte, v any) error {
	value := reflect.ValueOf(v)
	if value.Kind() != reflect.Pointer || value.IsNil() {
		return fmt.Errorf("invalid target, must be a non-nil pointer")
	}
	doc, err := Parse(string(data))
	if err != nil {
		return err
	}
	return unmarshalValue("", doc, value.Elem())
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func describe(node Node) string {
	if s, ok := node.(Scalar); ok {
		return strings.ToLower(s.Kind().String())
	}
	return "mapping"
}

func unmarshalValue(path string, node Node, v reflect.Value) error {
	if s, ok := node.(Scalar); ok && s.IsNull() {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}

	if v.CanAddr() {
		if tu, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
			s, ok := node.(Scalar)
			if !ok {
				return fmt.Errorf("%s: cannot unmarshal mapping into %v", path, v.Type())
			}
			if err := tu.UnmarshalText([]byte(s.String())); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		}
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return unmarshalValue(path, node, v.Elem())
	case reflect.Interface:
		if v.NumMethod() != 0 {
			break
		}
		switch n := node.(type) {
		case *Mapping:
			v.Set(reflect.ValueOf(n.Any()))
		case Scalar:
			v.Set(reflect.ValueOf(n.Any()))
		}
		return nil
	case reflect.Struct:
		if m, ok := node.(*Mapping); ok {
			return unmarshalStruct(path, m, v)
		}
	case reflect.Map:
		if m, ok := node.(*Mapping); ok {
			return unmarshalMap(path, m, v)
		}
	default:
		if s, ok := node.(Scalar); ok {
			return setBasicValue(path, s, v)
		}
	}
	return fmt.Errorf("%s: cannot unmarshal %s into %v", path, describe(node), v.Type())
}

// fieldNames returns the keys a struct field is read from, or nil if the
// field is skipped. An explicit name in a minyaml or json tag is the only key;
// otherwise both the Go name and its snake_case form are accepted.
func fieldNames(f reflect.StructField) []string {
	if !f.IsExported() {
		return nil
	}
	for _, tagName := range []string{"minyaml", "json"} {
		tag, ok := f.Tag.Lookup(tagName)
		if !ok {
			continue
		}
		if tag == "-" {
			return nil
		}
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return []string{name}
		}
	}
	return []string{f.Name, snakeCase(f.Name)}
}

func unmarshalStruct(path string, m *Mapping, v reflect.Value) error {
	fields := map[string]reflect.Value{}
	for _, f := range reflect.VisibleFields(v.Type()) {
		if len(f.Index) > 1 {
			continue
		}
		for _, name := range fieldNames(f) {
			fields[name] = v.Field(f.Index[0])
		}
	}

	for key, value := range m.All() {
		field, ok := fields[key]
		if !ok {
			return fmt.Errorf("%s: unknown field", joinPath(path, key))
		}
		if err := unmarshalValue(joinPath(path, key), value, field); err != nil {
			return err
		}
	}
	return nil
}

// snakeCase splits name into lower case words at each upper case letter that
// follows a lower case letter or digit, or that starts a word after an
// acronym, so RoomID becomes room_id and HTTPPort becomes http_port.
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !unicode.IsUpper(prev) || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func unmarshalMap(path string, m *Mapping, v reflect.Value) error {
	keyType := v.Type().Key()
	if keyType.Kind() != reflect.String {
		return fmt.Errorf("%s: unsupported map key type %v", path, keyType)
	}
	if v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}

	for key, value := range m.All() {
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := unmarshalValue(joinPath(path, key), value, elem); err != nil {
			return err
		}
		v.SetMapIndex(reflect.ValueOf(key).Convert(keyType), elem)
	}
	return nil
}

func setBasicValue(path string, s Scalar, v reflect.Value) error {
	mismatch := func() error {
		return fmt.Errorf("%s: cannot unmarshal %s into %v", path, describe(s), v.Type())
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(s.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s.Kind() != Int {
			return mismatch()
		}
		if !s.IsInt64() || v.OverflowInt(s.Int()) {
			return fmt.Errorf("%s: invalid %s: %v", path, v.Type(), s)
		}
		v.SetInt(s.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if s.Kind() != Int {
			return mismatch()
		}
		n := s.BigInt()
		if n.Sign() < 0 || !n.IsUint64() || v.OverflowUint(n.Uint64()) {
			return fmt.Errorf("%s: invalid %s: %v", path, v.Type(), s)
		}
		v.SetUint(n.Uint64())
	case reflect.Float32, reflect.Float64:
		var f float64
		switch s.Kind() {
		case Int:
			f, _ = new(big.Float).SetInt(s.BigInt()).Float64()
		case Float:
			f = s.Float()
		default:
			return mismatch()
		}
		if v.OverflowFloat(f) {
			return fmt.Errorf("%s: invalid %s: %v", path, v.Type(), f)
		}
		v.SetFloat(f)
	case reflect.Bool:
		if s.Kind() != Bool {
			return mismatch()
		}
		v.SetBool(s.Bool())
	default:
		return fmt.Errorf("%s: unsupported type %s", path, v.Type())
	}
	return nil
}
