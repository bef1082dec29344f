package nconf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eliranbenishai/nconf"
)

func TestEncodeNullAndUndefinedAreEmpty(t *testing.T) {
	assert.Equal(t, "", nconf.Encode(nconf.Null()))
	assert.Equal(t, "", nconf.Encode(nconf.Undefined()))
}

func TestEncodeScalarOnly(t *testing.T) {
	assert.Equal(t, "true", nconf.Encode(nconf.Bool(true)))
	assert.Equal(t, "42", nconf.Encode(nconf.Number(42)))
	assert.Equal(t, "hello", nconf.Encode(nconf.String("hello")))
}

func TestEncodeObjectBasic(t *testing.T) {
	root := nconf.NewObject()
	root.Object.Set("name", nconf.String("Ada"))
	root.Object.Set("age", nconf.Number(36))

	got := nconf.Encode(root)
	assert.Equal(t, "name Ada\nage 36\n", got)
}

func TestEncodeQuotesReservedLookingStrings(t *testing.T) {
	root := nconf.NewObject()
	root.Object.Set("a", nconf.String("true"))
	root.Object.Set("b", nconf.String("has space"))
	root.Object.Set("c", nconf.String("123abc"))
	root.Object.Set("d", nconf.String(""))

	got := nconf.Encode(root)
	assert.Equal(t, "a \"true\"\nb \"has space\"\nc \"123abc\"\nd \"\"\n", got)
}

func TestEncodeForceArraySingleton(t *testing.T) {
	root := nconf.NewObject()
	root.Object.Set("tag", nconf.NewArray(nconf.String("solo")))

	got := nconf.Encode(root)
	assert.Equal(t, "[]tag solo\n", got)
}

func TestEncodeInlineArrayShortScalarList(t *testing.T) {
	root := nconf.NewObject()
	root.Object.Set("nums", nconf.NewArray(nconf.Number(1), nconf.Number(2), nconf.Number(3)))

	got := nconf.Encode(root)
	assert.Equal(t, "nums [1, 2, 3]\n", got)
}

func TestEncodeMultilineArrayWhenLong(t *testing.T) {
	root := nconf.NewObject()
	root.Object.Set("nums", nconf.NewArray(
		nconf.Number(1), nconf.Number(2), nconf.Number(3), nconf.Number(4),
	))

	got := nconf.Encode(root)
	assert.Equal(t, "nums [\n  1\n  2\n  3\n  4\n]\n", got)
}

func TestEncodeArrayOfPlainObjectsUsesRepeatedKey(t *testing.T) {
	one := nconf.NewObject()
	one.Object.Set("x", nconf.Number(1))
	two := nconf.NewObject()
	two.Object.Set("x", nconf.Number(2))

	root := nconf.NewObject()
	root.Object.Set("item", nconf.NewArray(one, two))

	got := nconf.Encode(root)
	assert.Equal(t, "item\n  x 1\nitem\n  x 2\n", got)
}

func TestEncodeNestedObject(t *testing.T) {
	child := nconf.NewObject()
	child.Object.Set("name", nconf.String("Ada"))

	root := nconf.NewObject()
	root.Object.Set("person", child)

	got := nconf.Encode(root)
	assert.Equal(t, "person\n  name Ada\n", got)
}

func TestEncodeBlockStringForMultilineValue(t *testing.T) {
	root := nconf.NewObject()
	root.Object.Set("bio", nconf.String("line one\nline two"))

	got := nconf.Encode(root)
	assert.Equal(t, "bio \"\"\"\n  line one\n  line two\n\"\"\"\n", got)
}

func TestEncodeQuotesSentinelPrefixedStrings(t *testing.T) {
	root := nconf.NewObject()
	root.Object.Set("a", nconf.String("@foo"))
	root.Object.Set("b", nconf.String("[x]"))
	root.Object.Set("c", nconf.String(`"""x`))

	got := nconf.Encode(root)
	assert.Equal(t, "a \"@foo\"\nb \"[x]\"\nc \"\\\"\\\"\\\"x\"\n", got)
}

func TestEncodeQuotesArrayElementsContainingCommaOrBracket(t *testing.T) {
	root := nconf.NewObject()
	root.Object.Set("inline", nconf.NewArray(nconf.String("a,"), nconf.String("b]c")))

	got := nconf.Encode(root)
	assert.Equal(t, "inline [\"a,\", \"b]c\"]\n", got)
}

func TestEncodeQuotesLeadingNewlineStringInsteadOfBlockForm(t *testing.T) {
	root := nconf.NewObject()
	root.Object.Set("v", nconf.String("\nfoo"))

	got := nconf.Encode(root)
	assert.Equal(t, "v \"\\nfoo\"\n", got)
}

func TestEncodeDateUsesISO8601(t *testing.T) {
	root := nconf.NewObject()
	v, err := nconf.Decode("when 2024-03-15T10:30:00Z")
	assert.NoError(t, err)
	when, _ := v.Object.Get("when")
	root.Object.Set("when", when)

	got := nconf.Encode(root)
	assert.Equal(t, "when 2024-03-15T10:30:00.000Z\n", got)
}
