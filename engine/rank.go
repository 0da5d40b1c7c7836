package engine

import (
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/universe"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/value"
)

// AppendRank assigns a 1-based, tie-broken-by-original-row-index rank
// per partition (spec.md §3, §4.4). The effective ordering keys are the
// gating mask columns — each always DESC so surviving rows rank first —
// concatenated with the attribute's declared rank_keys in their own
// direction (spec.md §4.4 "Ordering of multiple rank keys").
func (e *Engine) AppendRank(col string, attr *universe.Attribute, gatingMaskCols []string) error {
	n := e.rs.Len()

	gating, err := loadColumns(e.rs, gatingMaskCols)
	if err != nil {
		return err
	}
	keyCols := make([][]value.Value, len(attr.RankKeys))
	for i, k := range attr.RankKeys {
		c, err := e.rs.Column(k.RefCode)
		if err != nil {
			return err
		}
		keyCols[i] = c
	}

	groups, groupOrder, err := partitionOf(e.rs, attr.PartitionBy, n)
	if err != nil {
		return err
	}

	less := func(a, b int) bool {
		for _, g := range gating {
			ag, bg := boolRank(g[a]), boolRank(g[b])
			if ag != bg {
				return ag > bg // DESC: true (survivor) before false
			}
		}
		for i, k := range attr.RankKeys {
			c := orderCompare(keyCols[i][a], keyCols[i][b], k.Direction == universe.Desc)
			if c != 0 {
				return c < 0
			}
		}
		return a < b // stable tie-break by original row index
	}

	vals := make([]value.Value, n)
	for _, pk := range groupOrder {
		idx := append([]int(nil), groups[pk]...)
		stableSortInts(idx, less)
		for rank, rowIdx := range idx {
			vals[rowIdx] = value.IntOf(rank + 1)
		}
	}
	return e.rs.AppendColumn(col, vals)
}

func boolRank(v value.Value) int {
	if v.Truthy() {
		return 1
	}
	return 0
}

// orderCompare orders a relative to b for a single key: nulls always
// sort last regardless of direction (spec.md §4.4 "Nulls").
func orderCompare(a, b value.Value, desc bool) int {
	if a.IsNull() && b.IsNull() {
		return 0
	}
	if a.IsNull() {
		return 1
	}
	if b.IsNull() {
		return -1
	}
	c := value.Compare(a, b)
	if desc {
		return -c
	}
	return c
}
