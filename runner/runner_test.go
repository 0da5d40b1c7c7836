package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/parser"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/rowset"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/selection"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/universe"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/value"
)

func buildUniverse(t *testing.T) *universe.Universe {
	t.Helper()
	totalExpr, err := parser.ParseExpr("PRICE * QTY")
	require.NoError(t, err)

	u, err := universe.New("ID", []*universe.Attribute{
		{Code: "ID", Kind: universe.KindInput},
		{Code: "PRICE", Kind: universe.KindInput},
		{Code: "QTY", Kind: universe.KindInput},
		{Code: "REGION", Kind: universe.KindInput},
		{Code: "TOTAL", Kind: universe.KindExpression, Expr: totalExpr},
		{Code: "TOTAL_RANK", Kind: universe.KindRank, RankKeys: []universe.RankKey{{RefCode: "TOTAL", Direction: universe.Desc, Order: 0}}, PartitionBy: "REGION"},
		{Code: "REGION_SUM", Kind: universe.KindAggregate, SourceCode: "TOTAL", Func: universe.Sum, PartitionBy: "REGION"},
	})
	require.NoError(t, err)
	return u
}

func buildRowSet(t *testing.T) *rowset.RowSet {
	t.Helper()
	rs := rowset.New(4)
	require.NoError(t, rs.AppendColumn("ID", []value.Value{value.IntOf(1), value.IntOf(2), value.IntOf(3), value.IntOf(4)}))
	require.NoError(t, rs.AppendColumn("PRICE", []value.Value{value.IntOf(10), value.IntOf(20), value.IntOf(5), value.IntOf(7)}))
	require.NoError(t, rs.AppendColumn("QTY", []value.Value{value.IntOf(2), value.IntOf(1), value.IntOf(4), value.IntOf(3)}))
	require.NoError(t, rs.AppendColumn("REGION", []value.Value{value.StringOf("east"), value.StringOf("east"), value.StringOf("west"), value.StringOf("west")}))
	return rs
}

func TestRunAllProducesOneResultPerSelection(t *testing.T) {
	uni := buildUniverse(t)
	rs := buildRowSet(t)

	filter, err := parser.ParseExpr("TOTAL_RANK = 1")
	require.NoError(t, err)
	sel := selection.New(1, []selection.Filter{
		{FilterID: 1, Expr: filter, ApplicationLevel: 0},
	}, []selection.OutputAttr{
		{AttrCode: "TOTAL", ApplicationLevel: 0},
		{AttrCode: "REGION_SUM", ApplicationLevel: 0},
	}, selection.OutputSettings{AddAttributes: true})

	results := RunAll(context.Background(), uni, rs, []*selection.Selection{sel}, "ID", 0)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	var keyCol []value.Value
	for _, c := range results[0].Columns {
		if c.Name == "ID" {
			keyCol = c.Values
		}
	}
	require.NotNil(t, keyCol)
	// one TOTAL_RANK winner per region survives.
	assert.Len(t, keyCol, 2)
}

func TestRunAllIsolatesSelectionFailures(t *testing.T) {
	uni := buildUniverse(t)
	rs := buildRowSet(t)

	goodFilter, err := parser.ParseExpr("PRICE > 0")
	require.NoError(t, err)
	badFilter, err := parser.ParseExpr("NOPE > 0")
	require.NoError(t, err)

	good := selection.New(1, []selection.Filter{{FilterID: 1, Expr: goodFilter, ApplicationLevel: 0}}, nil, selection.OutputSettings{ShowAll: true})
	bad := selection.New(2, []selection.Filter{{FilterID: 1, Expr: badFilter, ApplicationLevel: 0}}, nil, selection.OutputSettings{ShowAll: true})

	results := RunAll(context.Background(), uni, rs, []*selection.Selection{good, bad}, "ID", 2)
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
}
