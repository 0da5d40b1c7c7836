package engine

import (
	"sort"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/ast"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/planner"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/rowset"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/value"
)

// Engine evaluates a compiled Plan over a row set. It holds no state of
// its own beyond the row set it mutates by appending columns: it is safe
// to construct one Engine per selection worker, each bound to its own
// rowset.RowSet.Clone() (spec.md §5).
type Engine struct {
	rs *rowset.RowSet
}

// New binds an Engine to the row set it will append columns to.
func New(rs *rowset.RowSet) *Engine {
	return &Engine{rs: rs}
}

// Execute runs every step of plan against the engine's row set, in
// order, appending one column per step.
func (e *Engine) Execute(plan *planner.Plan) error {
	for _, step := range plan.Steps {
		if err := e.executeStep(step); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) executeStep(step planner.Step) error {
	switch step.Kind {
	case planner.StepRank:
		return e.AppendRank(step.Column, step.Attr, step.GatingMasks)
	case planner.StepAggregate:
		return e.AppendAggregate(step.Column, step.Attr, step.GatingMasks)
	case planner.StepExpression:
		return e.AppendExpression(step.Column, step.Attr.Expr)
	case planner.StepFilter:
		return e.AppendMask(step.Column, step.FilterExpr)
	case planner.StepLevelMask, planner.StepFinal:
		return e.appendConjunction(step.Column, step.InputColumns)
	case planner.StepFailedFilters:
		return e.appendFailedFilters(step.Column, step.InputColumns)
	default:
		return nil
	}
}

// AppendExpression evaluates expr per row and appends the result
// verbatim (spec.md §4.5).
func (e *Engine) AppendExpression(col string, expr ast.Expr) error {
	n := e.rs.Len()
	vals := make([]value.Value, n)
	for i := 0; i < n; i++ {
		vals[i] = (evalContext{rs: e.rs, row: i}).eval(expr)
	}
	return e.rs.AppendColumn(col, vals)
}

// AppendMask is equivalent to AppendExpression, yielding a Boolean
// column; null evaluates to false (spec.md §4.6/§4.7).
func (e *Engine) AppendMask(col string, expr ast.Expr) error {
	n := e.rs.Len()
	vals := make([]value.Value, n)
	for i := 0; i < n; i++ {
		v := (evalContext{rs: e.rs, row: i}).eval(expr)
		vals[i] = value.BoolOf(v.Truthy())
	}
	return e.rs.AppendColumn(col, vals)
}

func (e *Engine) appendConjunction(col string, inputs []string) error {
	n := e.rs.Len()
	vals := make([]value.Value, n)
	cols, err := loadColumns(e.rs, inputs)
	if err != nil {
		return err
	}
	for row := 0; row < n; row++ {
		ok := true
		for _, c := range cols {
			if !c[row].Truthy() {
				ok = false
				break
			}
		}
		vals[row] = value.BoolOf(ok)
	}
	return e.rs.AppendColumn(col, vals)
}

func (e *Engine) appendFailedFilters(col string, filterCols []string) error {
	n := e.rs.Len()
	vals := make([]value.Value, n)
	cols, err := loadColumns(e.rs, filterCols)
	if err != nil {
		return err
	}
	for row := 0; row < n; row++ {
		var failed []string
		for i, c := range cols {
			if !c[row].Truthy() {
				failed = append(failed, filterCols[i])
			}
		}
		vals[row] = value.StringOf(joinSemicolon(failed))
	}
	return e.rs.AppendColumn(col, vals)
}

func joinSemicolon(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ";"
		}
		out += s
	}
	return out
}

func loadColumns(rs *rowset.RowSet, names []string) ([][]value.Value, error) {
	cols := make([][]value.Value, len(names))
	for i, name := range names {
		c, err := rs.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return cols, nil
}

// gatingMasksAllTrue reports whether every gating mask column holds for
// the given row (spec.md §4.4's "preceding_masks" conjunction used to
// derive a masked source value for ranks and aggregates).
func gatingMasksAllTrue(gating [][]value.Value, row int) bool {
	for _, g := range gating {
		if !g[row].Truthy() {
			return false
		}
	}
	return true
}

// partitionOf groups row indices by the partition_by column's value, or
// a single partition covering every row when no partition_by is set
// (spec.md §4.4). A missing partition key is its own partition (spec.md
// §4.7: "null is its own partition").
func partitionOf(rs *rowset.RowSet, partitionBy string, n int) (map[string][]int, []string, error) {
	if partitionBy == "" {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return map[string][]int{"": idx}, []string{""}, nil
	}
	col, err := rs.Column(partitionBy)
	if err != nil {
		return nil, nil, err
	}
	groups := make(map[string][]int)
	var groupOrder []string
	for i := 0; i < n; i++ {
		k := col[i].PartitionKey()
		if _, ok := groups[k]; !ok {
			groupOrder = append(groupOrder, k)
		}
		groups[k] = append(groups[k], i)
	}
	return groups, groupOrder, nil
}

func stableSortInts(idx []int, less func(a, b int) bool) {
	sort.SliceStable(idx, func(i, j int) bool { return less(idx[i], idx[j]) })
}
