package nconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexInlineArraySimple(t *testing.T) {
	ctx := &decodeCtx{}
	items := lexInlineArray("1, 2, 3", ctx, 1, "items [1, 2, 3]")
	if assert.Len(t, items, 3) {
		assert.Equal(t, float64(1), items[0].Number)
		assert.Equal(t, float64(2), items[1].Number)
		assert.Equal(t, float64(3), items[2].Number)
	}
}

func TestLexInlineArrayMixedAndQuoted(t *testing.T) {
	ctx := &decodeCtx{}
	items := lexInlineArray(`1, "two, still two", true`, ctx, 1, "")
	if assert.Len(t, items, 3) {
		assert.Equal(t, KindNumber, items[0].Kind)
		assert.Equal(t, "two, still two", items[1].Str)
		assert.True(t, items[2].Bool)
	}
}

func TestLexInlineArrayNested(t *testing.T) {
	ctx := &decodeCtx{}
	items := lexInlineArray("1, [2, 3], 4", ctx, 1, "")
	if assert.Len(t, items, 3) {
		assert.Equal(t, KindArray, items[1].Kind)
		assert.Len(t, items[1].Array, 2)
	}
}

func TestLexInlineArrayEmpty(t *testing.T) {
	ctx := &decodeCtx{}
	items := lexInlineArray("", ctx, 1, "")
	assert.Empty(t, items)
}

func TestSplitInlineArrayUnclosedString(t *testing.T) {
	ctx := &decodeCtx{}
	defer func() {
		r := recover()
		if c, ok := r.(decodeErrorCarrier); ok {
			de, ok := c.err.(*DecodeError)
			assert.True(t, ok)
			assert.Equal(t, ReasonUnclosedString, de.Reason)
			return
		}
		t.Fatalf("expected a decodeErrorCarrier panic, got %v", r)
	}()
	lexInlineArray(`"unterminated`, ctx, 1, "")
}

func TestSplitInlineArrayUnexpectedCloseBracket(t *testing.T) {
	defer func() {
		r := recover()
		if c, ok := r.(decodeErrorCarrier); ok {
			de, ok := c.err.(*DecodeError)
			assert.True(t, ok)
			assert.Equal(t, ReasonUnexpectedCloseBracket, de.Reason)
			return
		}
		t.Fatalf("expected a decodeErrorCarrier panic, got %v", r)
	}()
	splitInlineArray("1]", 1, "items [1]]")
}
