package universe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/parser"
)

func mustParse(t *testing.T, src string) *Attribute {
	t.Helper()
	expr, err := parser.ParseExpr(src)
	require.NoError(t, err)
	return &Attribute{Kind: KindExpression, Expr: expr}
}

func TestNewRejectsDuplicateCode(t *testing.T) {
	_, err := New("A", []*Attribute{
		{Code: "A", Kind: KindInput},
		{Code: "A", Kind: KindInput},
	})
	require.Error(t, err)
}

func TestNewRejectsUnknownKeyColumn(t *testing.T) {
	_, err := New("MISSING", []*Attribute{{Code: "A", Kind: KindInput}})
	require.Error(t, err)
}

func TestDependenciesOrdersTransitiveClosure(t *testing.T) {
	cExpr := mustParse(t, "A + B")
	cExpr.Code = "C"
	dExpr := mustParse(t, "C * 2")
	dExpr.Code = "D"

	u, err := New("A", []*Attribute{
		{Code: "A", Kind: KindInput},
		{Code: "B", Kind: KindInput},
		cExpr,
		dExpr,
	})
	require.NoError(t, err)

	deps, err := u.Dependencies("D")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, deps)
}

func TestDependenciesDetectsCycle(t *testing.T) {
	aExpr := mustParse(t, "B + 1")
	aExpr.Code = "A"
	bExpr := mustParse(t, "A + 1")
	bExpr.Code = "B"

	_, err := New("A", []*Attribute{aExpr, bExpr})
	require.Error(t, err)
}

func TestGetUnknownAttribute(t *testing.T) {
	u, err := New("A", []*Attribute{{Code: "A", Kind: KindInput}})
	require.NoError(t, err)

	_, err = u.Get("NOPE")
	require.Error(t, err)
}

func TestRankAttributeDependencies(t *testing.T) {
	u, err := New("A", []*Attribute{
		{Code: "A", Kind: KindInput},
		{Code: "B", Kind: KindInput},
		{Code: "P", Kind: KindInput},
		{Code: "R", Kind: KindRank, RankKeys: []RankKey{{RefCode: "A", Direction: Desc, Order: 0}, {RefCode: "B", Direction: Asc, Order: 1}}, PartitionBy: "P"},
	})
	require.NoError(t, err)

	deps, err := u.Dependencies("R")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"A", "B", "P"}, deps)
}

func TestAggregateAttributeDependencies(t *testing.T) {
	u, err := New("A", []*Attribute{
		{Code: "A", Kind: KindInput},
		{Code: "V", Kind: KindInput},
		{Code: "K", Kind: KindInput},
		{Code: "S", Kind: KindAggregate, SourceCode: "V", Func: Sum, PartitionBy: "K"},
	})
	require.NoError(t, err)

	deps, err := u.Dependencies("S")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"V", "K"}, deps)
}

func TestLoadJSONScenario(t *testing.T) {
	doc := []byte(`{
		"key": "A",
		"attributes": [
			{"attr_code": "A", "attr_type": "INPUT", "attr_data_type": "FLOAT"},
			{"attr_code": "B", "attr_type": "INPUT", "attr_data_type": "STRING"},
			{"attr_code": "R", "attr_type": "RANK", "attr_data_type": "INTEGER",
			 "rank_attrs": [{"attr_code": "A", "direction": "DESC", "order": 0}]}
		]
	}`)
	u, err := LoadJSON(doc)
	require.NoError(t, err)
	require.Equal(t, "A", u.Key())

	r, err := u.Get("R")
	require.NoError(t, err)
	require.Equal(t, KindRank, r.Kind)
	require.Len(t, r.RankKeys, 1)
	require.Equal(t, Desc, r.RankKeys[0].Direction)
}
