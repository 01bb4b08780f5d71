package minyaml

import "strings"

// Encoder renders nodes as pretty-printed JSON. The zero Encoder indents by
// [DefaultIndentWidth] spaces per level.
type Encoder struct {
	Indent int
}

// Encode returns the JSON text for node. Keys and strings are written between
// double quotes exactly as they are, with no escaping.
func (e Encoder) Encode(node Node) string {
	indent := e.Indent
	if indent <= 0 {
		indent = DefaultIndentWidth
	}
	var b strings.Builder
	writeJSON(&b, node, 0, indent)
	return b.String()
}

// JSON returns node as JSON indented by four spaces per level.
func JSON(node Node) string {
	return Encoder{}.Encode(node)
}

func writeJSON(b *strings.Builder, node Node, depth, indent int) {
	switch v := node.(type) {
	case *Mapping:
		if v.Len() == 0 {
			b.WriteString("{}")
			return
		}
		inner := strings.Repeat(" ", indent*(depth+1))
		b.WriteString("{\n")
		for i, e := range v.entries {
			if i > 0 {
				b.WriteString(",\n")
			}
			b.WriteString(inner)
			b.WriteString(`"` + e.Key + `": `)
			writeJSON(b, e.Value, depth+1, indent)
		}
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", indent*depth))
		b.WriteString("}")
	case Scalar:
		if v.Kind() == String {
			b.WriteString(`"` + v.Str() + `"`)
		} else {
			b.WriteString(v.String())
		}
	case nil:
		b.WriteString("null")
	}
}
