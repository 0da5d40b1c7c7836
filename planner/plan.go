// Package planner compiles a Selection over a Universe into an ordered
// list of materialization steps (spec.md §4.4, C5): per level, it orders
// derived-attribute materialization, emits filter masks, combines them,
// and propagates a "survivor" mask to subsequent levels.
package planner

import (
	"fmt"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/ast"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/universe"
)

// StepKind discriminates the kinds of materialization step a Plan emits.
type StepKind int

const (
	StepRank StepKind = iota
	StepAggregate
	StepExpression
	StepFilter
	StepLevelMask
	StepFinal
	StepFailedFilters
)

// Step is one materialization instruction (spec.md's "materialization
// step"): it appends exactly one column to the row set.
type Step struct {
	Kind   StepKind
	Column string

	// StepRank, StepAggregate, StepExpression: the attribute being
	// materialized.
	Attr *universe.Attribute

	// StepRank, StepAggregate: the preceding-level survivor masks in
	// effect when this step was planned (spec.md §4.4 "gating context").
	GatingMasks []string

	// StepFilter: the filter expression to evaluate.
	FilterExpr ast.Expr

	// StepLevelMask: the filter columns at this level to conjoin.
	// StepFinal: the per-level mask columns to conjoin into is_selected.
	InputColumns []string
}

// Plan is the compiled, ordered materialization plan for one selection.
type Plan struct {
	SelectionID      int
	Steps            []Step
	FilterColumns    []string // every filter_<sel>_<id> column, ascending by level, declaration order within a level
	LevelMaskColumns []string // every filters_level_<L> column, ascending by level
	FinalColumn      string   // "is_selected"
	FailedFilters    string   // "failed_filters"
}

// filterColumnName and levelMaskColumnName are the column-naming
// conventions of spec.md §4.4 steps 4-5.
func filterColumnName(selectionID, filterID int) string {
	return fmt.Sprintf("filter_%d_%d", selectionID, filterID)
}

func levelMaskColumnName(level int) string {
	return fmt.Sprintf("filters_level_%d", level)
}
