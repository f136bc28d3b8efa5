package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplifyFlattensNestedChains(t *testing.T) {
	inner := New(And(New(Single(ids(1))), New(Single(ids(2)))))
	outer := New(And(inner, New(Single(ids(3)))))

	simplified := Simplify(outer)
	assert.Equal(t, ItemAnd, simplified.Item.Kind)
	assert.Len(t, simplified.Item.Items, 3)
}

func TestSimplifyDoesNotFlattenInvertedNestedChain(t *testing.T) {
	inner := Not(New(And(New(Single(ids(1))), New(Single(ids(2))))))
	outer := New(And(inner, New(Single(ids(3)))))

	simplified := Simplify(outer)
	assert.Len(t, simplified.Item.Items, 2)
}

func TestSimplifyCollapsesSingleChildChain(t *testing.T) {
	q := New(And(New(Single(ids(1)))))
	simplified := Simplify(q)
	assert.Equal(t, ItemSingle, simplified.Item.Kind)
}

func TestSimplifyCollapseFoldsInverse(t *testing.T) {
	inner := Not(New(Single(ids(1))))
	q := New(And(inner))
	simplified := Simplify(q)
	assert.Equal(t, ItemSingle, simplified.Item.Kind)
	assert.True(t, simplified.Inverse)
}

func TestSimplifyDoubleNegationCancels(t *testing.T) {
	q := Not(Not(New(Single(ids(1)))))
	assert.False(t, q.Inverse)
}
