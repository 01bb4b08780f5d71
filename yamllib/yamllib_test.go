package yamllib_test

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ConradIrwin/minyaml"
	"github.com/ConradIrwin/minyaml/yamllib"
)

func readSchedule(tb testing.TB) string {
	tb.Helper()
	data, err := os.ReadFile("../testdata/schedule.yaml")
	require.NoError(tb, err)
	return string(data)
}

func TestMatchesHandWrittenParser(t *testing.T) {
	input := readSchedule(t)

	hand, err := minyaml.Parse(input)
	require.NoError(t, err)
	lib, err := yamllib.Parse(input)
	require.NoError(t, err)

	if diff := cmp.Diff(hand.Any(), lib.Any()); diff != "" {
		t.Fatalf("parsers disagree (-hand +yaml.v3):\n%s", diff)
	}
	assert.True(t, hand.Equal(lib), "key order differs")
	assert.Equal(t, minyaml.JSON(hand), minyaml.JSON(lib))
}

func TestParse(t *testing.T) {
	doc, err := yamllib.Parse("b: 1\na:\n    x: 2.5\n    y: \"quoted\"\n    z: ~\n    t: True\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, doc.Keys())
	assert.Equal(t, map[string]any{
		"b": int64(1),
		"a": map[string]any{"x": 2.5, "y": "quoted", "z": nil, "t": true},
	}, doc.Any())
}

func TestParseDifferences(t *testing.T) {
	doc, err := yamllib.Parse("empty:\nnegative: -3\ninfinite: .inf\n")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"empty":    nil,
		"negative": int64(-3),
		"infinite": ".inf",
	}, doc.Any())
}

func TestParseLargeInteger(t *testing.T) {
	input := "id: 12345678901234567891\nsmall: 7\n"

	lib, err := yamllib.Parse(input)
	require.NoError(t, err)
	hand, err := minyaml.Parse(input)
	require.NoError(t, err)

	assert.True(t, hand.Equal(lib), "hand:\n%s\nyaml:\n%s", minyaml.JSON(hand), minyaml.JSON(lib))
	assert.Equal(t, "{\n    \"id\": 12345678901234567891,\n    \"small\": 7\n}", minyaml.JSON(lib))
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "# just a comment\n", "~"} {
		doc, err := yamllib.Parse(input)
		require.NoError(t, err)
		assert.Equal(t, 0, doc.Len())
	}
}

func TestUnsupported(t *testing.T) {
	for name, test := range map[string]struct {
		input string
		kind  string
		line  int
	}{
		"sequence":    {"a:\n    b:\n        - 1\n        - 2\n", "sequence", 3},
		"alias":       {"a: &x 1\nb: *x\n", "alias", 2},
		"root scalar": {"hello\n", "scalar document", 1},
		"root list":   {"- 1\n", "sequence", 1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := yamllib.Parse(test.input)
			var unsupported *yamllib.UnsupportedError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, test.kind, unsupported.Kind)
			assert.Equal(t, test.line, unsupported.Line)
		})
	}
}

func TestInvalidYAML(t *testing.T) {
	_, err := yamllib.Parse("a: [1, 2\n")
	assert.Error(t, err)
}

func BenchmarkParse(b *testing.B) {
	input := readSchedule(b)

	b.Run("hand-written", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if _, err := minyaml.Parse(input); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("yaml.v3", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if _, err := yamllib.Parse(input); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkConvert(b *testing.B) {
	input := readSchedule(b)

	b.Run("json", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := minyaml.Convert(input, minyaml.FormatJSON); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("csv", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := minyaml.Convert(input, minyaml.FormatCSV); err != nil {
				b.Fatal(err)
			}
		}
	})
}
