package nconf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliranbenishai/nconf"
)

func mustDecode(t *testing.T, text string) *nconf.Value {
	t.Helper()
	v, err := nconf.Decode(text)
	require.NoError(t, err)
	return v
}

func TestDecodeEmptyInput(t *testing.T) {
	v := mustDecode(t, "")
	assert.Equal(t, nconf.KindObject, v.Kind)
	assert.Equal(t, 0, v.Object.Len())
}

func TestDecodeBlankAndCommentLinesSkipped(t *testing.T) {
	v := mustDecode(t, "\n# a comment\n\nname Ada\n# trailing\n")
	name, ok := v.Object.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Ada", name.Str)
}

func TestDecodeHashWithoutSpaceIsNotAComment(t *testing.T) {
	v := mustDecode(t, "tag #winner")
	tag, ok := v.Object.Get("tag")
	require.True(t, ok)
	assert.Equal(t, "#winner", tag.Str)
}

func TestDecodeBasicScalars(t *testing.T) {
	v := mustDecode(t, strjoin(
		"name Ada",
		"age 36",
		"active true",
		"nickname null",
		"role undefined",
	))
	name, _ := v.Object.Get("name")
	age, _ := v.Object.Get("age")
	active, _ := v.Object.Get("active")
	nickname, _ := v.Object.Get("nickname")
	role, _ := v.Object.Get("role")

	assert.Equal(t, "Ada", name.Str)
	assert.Equal(t, float64(36), age.Number)
	assert.True(t, active.Bool)
	assert.True(t, nickname.IsNull())
	assert.True(t, role.IsUndefined())
}

func TestDecodeNestedObjectAndBlockString(t *testing.T) {
	v := mustDecode(t, strjoin(
		`person`,
		`  name Ada`,
		`  bio """`,
		`    line one`,
		`    line two`,
		`  """`,
	))
	person, ok := v.Object.Get("person")
	require.True(t, ok)
	require.Equal(t, nconf.KindObject, person.Kind)

	name, _ := person.Object.Get("name")
	assert.Equal(t, "Ada", name.Str)

	bio, _ := person.Object.Get("bio")
	assert.Equal(t, "line one\nline two", bio.Str)
}

func TestDecodeRepeatedKeyBecomesArray(t *testing.T) {
	v := mustDecode(t, strjoin(
		`tag a`,
		`tag b`,
		`tag c`,
	))
	tag, ok := v.Object.Get("tag")
	require.True(t, ok)
	require.Equal(t, nconf.KindArray, tag.Kind)
	require.Len(t, tag.Array, 3)
	assert.Equal(t, "a", tag.Array[0].Str)
	assert.Equal(t, "b", tag.Array[1].Str)
	assert.Equal(t, "c", tag.Array[2].Str)
}

func TestDecodeForcedSingletonArray(t *testing.T) {
	v := mustDecode(t, `[]tag solo`)
	tag, ok := v.Object.Get("tag")
	require.True(t, ok)
	require.Equal(t, nconf.KindArray, tag.Kind)
	require.Len(t, tag.Array, 1)
	assert.Equal(t, "solo", tag.Array[0].Str)
}

func TestDecodeMultilineArrayWithBlockStringItem(t *testing.T) {
	v := mustDecode(t, strjoin(
		`items [`,
		`  1`,
		`  """`,
		`    block content`,
		`  """`,
		`  "plain"`,
		`]`,
	))
	items, ok := v.Object.Get("items")
	require.True(t, ok)
	require.Len(t, items.Array, 3)
	assert.Equal(t, float64(1), items.Array[0].Number)
	assert.Equal(t, "block content", items.Array[1].Str)
	assert.Equal(t, "plain", items.Array[2].Str)
}

func TestDecodeInlineArrayVariants(t *testing.T) {
	v := mustDecode(t, strjoin(
		`empty []`,
		`single [1]`,
		`many [1, 2, 3]`,
	))
	empty, _ := v.Object.Get("empty")
	single, _ := v.Object.Get("single")
	many, _ := v.Object.Get("many")
	assert.Empty(t, empty.Array)
	assert.Len(t, single.Array, 1)
	assert.Len(t, many.Array, 3)
}

func TestDecodeInvalidKeyReportsPosition(t *testing.T) {
	_, err := nconf.Decode(strjoin(
		`name Ada`,
		`bad@key here`,
	))
	require.Error(t, err)
	de, ok := err.(*nconf.DecodeError)
	require.True(t, ok)
	assert.Equal(t, nconf.ReasonInvalidKey, de.Reason)
	assert.Equal(t, 2, de.Line)
	assert.Equal(t, "bad@key here", de.RawLine)
}

func TestDecodeUnclosedMultilineArrayFails(t *testing.T) {
	_, err := nconf.Decode(strjoin(
		`items [`,
		`  1`,
	))
	require.Error(t, err)
	de, ok := err.(*nconf.DecodeError)
	require.True(t, ok)
	assert.Equal(t, nconf.ReasonUnclosedArray, de.Reason)
}

func TestDecodeAnyRejectsNonStringInput(t *testing.T) {
	_, err := nconf.DecodeAny(42)
	require.Error(t, err)
	de, ok := err.(*nconf.DecodeError)
	require.True(t, ok)
	assert.Equal(t, nconf.ReasonInputType, de.Reason)
}

func strjoin(lines ...string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
