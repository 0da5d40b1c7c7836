package value

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell(t *testing.T) {
	assert.True(t, ParseCell("").IsNull())

	n := ParseCell("42.5")
	require.Equal(t, Number, n.Kind)
	assert.True(t, n.Num.Equal(decimal.NewFromFloat(42.5)))

	s := ParseCell("hello")
	require.Equal(t, String, s.Kind)
	assert.Equal(t, "hello", s.Str)
}

func TestTruthy(t *testing.T) {
	assert.True(t, BoolOf(true).Truthy())
	assert.False(t, BoolOf(false).Truthy())
	assert.False(t, NullValue.Truthy())
	assert.False(t, StringOf("true").Truthy())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(IntOf(3), NumberOf(decimal.NewFromInt(3))))
	assert.False(t, Equal(IntOf(3), StringOf("3")))
	assert.True(t, Equal(NullValue, NullValue))
	assert.False(t, Equal(NullValue, IntOf(0)))
}

func TestCompareNullsLast(t *testing.T) {
	assert.Equal(t, 1, Compare(NullValue, IntOf(1)))
	assert.Equal(t, -1, Compare(IntOf(1), NullValue))
	assert.Equal(t, 0, Compare(NullValue, NullValue))
	assert.True(t, Compare(IntOf(1), IntOf(2)) < 0)
	assert.True(t, Compare(StringOf("a"), StringOf("b")) < 0)
}

func TestPartitionKeyDistinguishesKinds(t *testing.T) {
	assert.NotEqual(t, IntOf(1).PartitionKey(), StringOf("1").PartitionKey())
	assert.Equal(t, NullValue.PartitionKey(), NullValue.PartitionKey())
}
