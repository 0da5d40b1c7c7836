package rowset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/value"
)

func TestAppendAndGet(t *testing.T) {
	rs := New(2)
	require.NoError(t, rs.AppendColumn("A", []value.Value{value.IntOf(1), value.IntOf(2)}))

	v, err := rs.Get("A", 1)
	require.NoError(t, err)
	assert.True(t, value.Equal(v, value.IntOf(2)))

	_, err = rs.Get("A", 5)
	assert.Error(t, err)

	_, err = rs.Get("MISSING", 0)
	assert.Error(t, err)
}

func TestAppendColumnWrongLength(t *testing.T) {
	rs := New(2)
	err := rs.AppendColumn("A", []value.Value{value.IntOf(1)})
	assert.Error(t, err)
}

func TestAppendColumnIdempotent(t *testing.T) {
	rs := New(1)
	vals := []value.Value{value.IntOf(1)}
	require.NoError(t, rs.AppendColumn("A", vals))
	require.NoError(t, rs.AppendColumn("A", []value.Value{value.IntOf(1)}))

	err := rs.AppendColumn("A", []value.Value{value.IntOf(2)})
	assert.Error(t, err)
}

func TestCloneSharesColumnsByReference(t *testing.T) {
	rs := New(1)
	require.NoError(t, rs.AppendColumn("A", []value.Value{value.IntOf(1)}))

	clone := rs.Clone()
	require.NoError(t, clone.AppendColumn("B", []value.Value{value.IntOf(2)}))

	assert.True(t, rs.Has("A"))
	assert.False(t, rs.Has("B"))
	assert.True(t, clone.Has("A"))
	assert.True(t, clone.Has("B"))
}

func TestColumnOrderPreservesAppendOrder(t *testing.T) {
	rs := New(1)
	require.NoError(t, rs.AppendColumn("B", []value.Value{value.IntOf(1)}))
	require.NoError(t, rs.AppendColumn("A", []value.Value{value.IntOf(2)}))
	assert.Equal(t, []string{"B", "A"}, rs.ColumnOrder())
}
