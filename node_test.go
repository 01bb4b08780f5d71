package minyaml_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ConradIrwin/minyaml"
)

func TestCoerce(t *testing.T) {
	for _, test := range []struct {
		raw  string
		want minyaml.Scalar
	}{
		{"true", minyaml.NewBool(true)},
		{"False", minyaml.NewBool(false)},
		{"TRUE", minyaml.NewBool(true)},
		{"null", minyaml.NewNull()},
		{"NULL", minyaml.NewNull()},
		{"3", minyaml.NewInt(3)},
		{"007", minyaml.NewInt(7)},
		{"3.5", minyaml.NewFloat(3.5)},
		{"-2", minyaml.NewFloat(-2)},
		{"+1", minyaml.NewFloat(1)},
		{"1e3", minyaml.NewFloat(1000)},
		{".5", minyaml.NewFloat(0.5)},
		{"99999999999999999999", minyaml.NewBigInt(bigInt("99999999999999999999"))},
		{"0099999999999999999999", minyaml.NewBigInt(bigInt("99999999999999999999"))},
		{"'hi'", minyaml.NewString("hi")},
		{`"hi"`, minyaml.NewString("hi")},
		{"hi", minyaml.NewString("hi")},
		{`'mixed"`, minyaml.NewString("mixed")},
		{`"only-left`, minyaml.NewString("only-left")},
		{`''twice''`, minyaml.NewString("'twice'")},
		{`"3"`, minyaml.NewString("3")},
		{`"true"`, minyaml.NewString("true")},
		{"1.2.3", minyaml.NewString("1.2.3")},
		{"inf", minyaml.NewString("inf")},
		{"NaN", minyaml.NewString("NaN")},
		{"0x10", minyaml.NewString("0x10")},
		{"1_000", minyaml.NewFloat(1000)},
		{"1_000.2_5", minyaml.NewFloat(1000.25)},
		{"1__000", minyaml.NewString("1__000")},
		{"_1", minyaml.NewString("_1")},
		{"1_", minyaml.NewString("1_")},
		{"1_.5", minyaml.NewString("1_.5")},
		{"yes", minyaml.NewString("yes")},
		{"", minyaml.NewString("")},
	} {
		t.Run(test.raw, func(t *testing.T) {
			got := minyaml.Coerce(test.raw)
			assert.Equal(t, test.want.Kind(), got.Kind())
			assert.True(t, test.want.Equal(got), "want %#v, got %#v", test.want, got)
		})
	}
}

func bigInt(digits string) *big.Int {
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		panic("bad digits " + digits)
	}
	return n
}

func TestLargeInteger(t *testing.T) {
	digits := "12345678901234567891"

	doc, err := minyaml.Parse("r:\n    id: " + digits + "\n")
	require.NoError(t, err)
	record, _ := doc.Get("r")
	id, _ := record.(*minyaml.Mapping).Get("id")
	scalar := id.(minyaml.Scalar)

	assert.Equal(t, minyaml.Int, scalar.Kind())
	assert.False(t, scalar.IsInt64())
	assert.Equal(t, digits, scalar.String())
	assert.Equal(t, 0, bigInt(digits).Cmp(scalar.BigInt()))
	assert.Equal(t, digits, scalar.Any().(*big.Int).String())

	assert.Equal(t, "{\n    \"r\": {\n        \"id\": "+digits+"\n    }\n}", minyaml.JSON(doc))
	table, err := minyaml.CSV(doc)
	require.NoError(t, err)
	assert.Equal(t, "number,id\nr,\""+digits+"\"", table)

	small := minyaml.NewBigInt(big.NewInt(42))
	assert.True(t, small.IsInt64())
	assert.Equal(t, minyaml.NewInt(42), small)
	assert.Nil(t, minyaml.NewString("1").BigInt())
}

func TestScalarString(t *testing.T) {
	for want, scalar := range map[string]minyaml.Scalar{
		"true":   minyaml.NewBool(true),
		"false":  minyaml.NewBool(false),
		"null":   minyaml.Scalar{},
		"42":     minyaml.NewInt(42),
		"3.5":    minyaml.NewFloat(3.5),
		"2.0":    minyaml.NewFloat(2),
		"-0.25":  minyaml.NewFloat(-0.25),
		"1e+16":  minyaml.NewFloat(1e16),
		"1e-05":  minyaml.NewFloat(0.00001),
		"0.0001": minyaml.NewFloat(0.0001),
		"0.0":    minyaml.NewFloat(0),
		"text":   minyaml.NewString("text"),
	} {
		assert.Equal(t, want, scalar.String())
	}
}

func TestScalarAny(t *testing.T) {
	assert.Nil(t, minyaml.NewNull().Any())
	assert.Equal(t, true, minyaml.NewBool(true).Any())
	assert.Equal(t, int64(1), minyaml.NewInt(1).Any())
	assert.Equal(t, 1.5, minyaml.NewFloat(1.5).Any())
	assert.Equal(t, "s", minyaml.NewString("s").Any())
	assert.True(t, minyaml.Scalar{}.IsNull())
	assert.Equal(t, "Float", minyaml.Float.String())
}

func TestMappingOrder(t *testing.T) {
	m := &minyaml.Mapping{}
	m.Set("b", minyaml.NewInt(1))
	m.Set("a", minyaml.NewInt(2))
	m.Set("c", minyaml.NewInt(3))
	m.Set("a", minyaml.NewString("replaced"))

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
	assert.Equal(t, 3, m.Len())

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, minyaml.NewString("replaced"), v)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	var keys []string
	for key := range m.All() {
		keys = append(keys, key)
		if key == "a" {
			break
		}
	}
	assert.Equal(t, []string{"b", "a"}, keys)
}

func TestMappingEqual(t *testing.T) {
	a := minyaml.NewMapping(
		minyaml.Entry{Key: "x", Value: minyaml.NewInt(1)},
		minyaml.Entry{Key: "y", Value: &minyaml.Mapping{}},
	)
	b := minyaml.NewMapping(
		minyaml.Entry{Key: "x", Value: minyaml.NewInt(1)},
		minyaml.Entry{Key: "y", Value: &minyaml.Mapping{}},
	)
	assert.True(t, a.Equal(b))

	b.Set("y", minyaml.NewNull())
	assert.False(t, a.Equal(b))

	reordered := minyaml.NewMapping(
		minyaml.Entry{Key: "y", Value: &minyaml.Mapping{}},
		minyaml.Entry{Key: "x", Value: minyaml.NewInt(1)},
	)
	assert.False(t, a.Equal(reordered))
	assert.False(t, minyaml.NewInt(1).Equal(minyaml.NewFloat(1)))
}

func TestMappingEqualNilValue(t *testing.T) {
	withNil := &minyaml.Mapping{}
	withNil.Set("x", nil)

	for _, other := range []minyaml.Node{minyaml.NewNull(), minyaml.NewInt(1), &minyaml.Mapping{}} {
		m := minyaml.NewMapping(minyaml.Entry{Key: "x", Value: other})
		assert.False(t, withNil.Equal(m), "nil against %#v", other)
		assert.False(t, m.Equal(withNil), "%#v against nil", other)
	}

	alsoNil := &minyaml.Mapping{}
	alsoNil.Set("x", nil)
	assert.True(t, withNil.Equal(alsoNil))
	assert.Equal(t, map[string]any{"x": nil}, withNil.Any())
	assert.Equal(t, "{\n    \"x\": null\n}", minyaml.JSON(withNil))
}
