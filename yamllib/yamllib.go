// Package yamllib reads documents with [gopkg.in/yaml.v3] into the same
// [minyaml.Mapping] model produced by the hand-written parser, so that the
// two can be compared.
//
// Scalars are typed by the tags yaml.v3 resolves (!!null, !!bool, !!int,
// !!float), and integers of any size are kept exact. Anything else,
// including infinities and NaN, becomes a string.
// Unlike [minyaml.Parse], a key with nothing under it is null rather than
// an empty mapping, because that is what YAML says it is.
//
// Sequences and aliases are outside the supported subset and are reported
// as an [*UnsupportedError].
package yamllib

import (
	"fmt"
	"math"
	"math/big"

	"gopkg.in/yaml.v3"

	"github.com/ConradIrwin/minyaml"
)

// An UnsupportedError reports a YAML construct that has no equivalent in
// the minyaml document model.
type UnsupportedError struct {
	Line int
	Kind string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("line %d: unsupported %s", e.Line, e.Kind)
}

// Parse decodes input with yaml.v3 and converts the result.
// An empty document is an empty mapping.
func Parse(input string) (*minyaml.Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &minyaml.Mapping{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return &minyaml.Mapping{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, unsupported(root)
	}
	return convertMapping(root)
}

func unsupported(n *yaml.Node) error {
	kind := "node"
	switch n.Kind {
	case yaml.SequenceNode:
		kind = "sequence"
	case yaml.AliasNode:
		kind = "alias"
	case yaml.ScalarNode:
		kind = "scalar document"
	case yaml.DocumentNode:
		kind = "document"
	}
	return &UnsupportedError{Line: n.Line, Kind: kind}
}

func convertMapping(n *yaml.Node) (*minyaml.Mapping, error) {
	m := &minyaml.Mapping{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, &UnsupportedError{Line: key.Line, Kind: "complex key"}
		}

		switch value.Kind {
		case yaml.MappingNode:
			child, err := convertMapping(value)
			if err != nil {
				return nil, err
			}
			m.Set(key.Value, child)
		case yaml.ScalarNode:
			scalar, err := convertScalar(value)
			if err != nil {
				return nil, err
			}
			m.Set(key.Value, scalar)
		default:
			return nil, unsupported(value)
		}
	}
	return m, nil
}

func convertScalar(n *yaml.Node) (minyaml.Scalar, error) {
	switch n.ShortTag() {
	case "!!null":
		return minyaml.NewNull(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return minyaml.Scalar{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return minyaml.NewBool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return minyaml.NewInt(i), nil
		}
		if b, ok := new(big.Int).SetString(n.Value, 0); ok {
			return minyaml.NewBigInt(b), nil
		}
		fallthrough
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return minyaml.NewFloat(f), nil
		}
	}
	return minyaml.NewString(n.Value), nil
}
