package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/parser"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/rowset"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/value"
)

func newRowSet(t *testing.T, cols map[string][]value.Value, n int) *rowset.RowSet {
	t.Helper()
	rs := rowset.New(n)
	for name, vals := range cols {
		require.NoError(t, rs.AppendColumn(name, vals))
	}
	return rs
}

func TestAppendExpressionArithmetic(t *testing.T) {
	rs := newRowSet(t, map[string][]value.Value{
		"A": {value.IntOf(1), value.IntOf(2)},
		"B": {value.IntOf(10), value.IntOf(0)},
	}, 2)

	expr, err := parser.ParseExpr("A + B")
	require.NoError(t, err)
	e := New(rs)
	require.NoError(t, e.AppendExpression("C", expr))

	col, err := rs.Column("C")
	require.NoError(t, err)
	assert.True(t, value.Equal(col[0], value.IntOf(11)))
	assert.True(t, value.Equal(col[1], value.IntOf(2)))
}

func TestDivideByZeroYieldsNull(t *testing.T) {
	rs := newRowSet(t, map[string][]value.Value{
		"A": {value.IntOf(10)},
		"B": {value.IntOf(0)},
	}, 1)

	expr, err := parser.ParseExpr("A / B")
	require.NoError(t, err)
	e := New(rs)
	require.NoError(t, e.AppendExpression("C", expr))

	col, err := rs.Column("C")
	require.NoError(t, err)
	assert.True(t, col[0].IsNull())
}

func TestThreeValuedAndOr(t *testing.T) {
	rs := newRowSet(t, map[string][]value.Value{
		"A": {value.NullValue, value.BoolOf(false), value.BoolOf(true)},
	}, 3)

	andExpr, err := parser.ParseExpr("A AND true")
	require.NoError(t, err)
	e := New(rs)
	require.NoError(t, e.AppendExpression("AND_RES", andExpr))
	andCol, err := rs.Column("AND_RES")
	require.NoError(t, err)
	assert.True(t, andCol[0].IsNull())

	orExpr, err := parser.ParseExpr("A OR false")
	require.NoError(t, err)
	require.NoError(t, e.AppendExpression("OR_RES", orExpr))
	orCol, err := rs.Column("OR_RES")
	require.NoError(t, err)
	assert.True(t, orCol[0].IsNull())
	assert.True(t, value.Equal(orCol[2], value.BoolOf(true)))
}

func TestAppendMaskTreatsNullAsFalse(t *testing.T) {
	rs := newRowSet(t, map[string][]value.Value{
		"A": {value.NullValue, value.IntOf(5)},
	}, 2)

	expr, err := parser.ParseExpr("A > 1")
	require.NoError(t, err)
	e := New(rs)
	require.NoError(t, e.AppendMask("M", expr))

	col, err := rs.Column("M")
	require.NoError(t, err)
	assert.False(t, col[0].Truthy())
	assert.True(t, col[1].Truthy())
}

func TestLikeMatch(t *testing.T) {
	assert.True(t, likeMatch("hello world", "hello%"))
	assert.True(t, likeMatch("abc", "a_c"))
	assert.False(t, likeMatch("abc", "a_d"))
}
