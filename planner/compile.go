package planner

import (
	"strings"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/errs"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/visitor"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/ordered"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/selection"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/universe"
)

// Compile produces the materialization plan for one selection over a
// universe, following the six numbered steps of spec.md §4.4.
func Compile(uni *universe.Universe, sel *selection.Selection) (*Plan, error) {
	c := &compiler{uni: uni, sel: sel, materialized: make(map[string]bool)}
	return c.compile()
}

type compiler struct {
	uni            *universe.Universe
	sel            *selection.Selection
	materialized   map[string]bool // attrs already emitted by an earlier (or this) level
	steps          []Step
	precedingMasks []string
	filterColumns  []string
	levelMaskCols  []string
}

func (c *compiler) compile() (*Plan, error) {
	for _, level := range c.sel.Levels() {
		if err := c.compileLevel(level); err != nil {
			return nil, err
		}
	}

	c.steps = append(c.steps, Step{
		Kind:         StepFinal,
		Column:       "is_selected",
		InputColumns: append([]string(nil), c.levelMaskCols...),
	})
	c.steps = append(c.steps, Step{
		Kind:         StepFailedFilters,
		Column:       "failed_filters",
		InputColumns: append([]string(nil), c.filterColumns...),
	})

	return &Plan{
		SelectionID:      c.sel.ID(),
		Steps:            c.steps,
		FilterColumns:    c.filterColumns,
		LevelMaskColumns: c.levelMaskCols,
		FinalColumn:      "is_selected",
		FailedFilters:    "failed_filters",
	}, nil
}

// compileLevel implements steps 1-6 of spec.md §4.4 for a single level.
func (c *compiler) compileLevel(level int) error {
	filters := c.sel.Filters(level)

	// Step 1: needed_L.
	needed := make(map[string]bool)
	for _, f := range filters {
		for id := range visitor.Identifiers(f.Expr) {
			needed[id] = true
		}
	}
	for _, code := range c.sel.OutputAttrs(level) {
		needed[code] = true
	}
	neededList := ordered.UniqueSorted(needed)

	// Step 2+3: closure_L, topologically ordered, minus inputs and
	// already-materialized attrs.
	closure, err := closureOrder(c.uni, neededList)
	if err != nil {
		return err
	}
	for _, code := range closure {
		if c.materialized[code] {
			continue
		}
		attr, err := c.uni.Get(code)
		if err != nil {
			return err
		}
		if attr.Kind == universe.KindInput {
			c.materialized[code] = true
			continue
		}
		c.emitMaterializationStep(attr)
		c.materialized[code] = true
	}

	// Step 4: filter steps.
	var levelFilterCols []string
	for _, f := range filters {
		col := filterColumnName(c.sel.ID(), f.FilterID)
		c.steps = append(c.steps, Step{Kind: StepFilter, Column: col, FilterExpr: f.Expr})
		levelFilterCols = append(levelFilterCols, col)
		c.filterColumns = append(c.filterColumns, col)
	}

	// Step 5: level-mask step.
	maskCol := levelMaskColumnName(level)
	c.steps = append(c.steps, Step{Kind: StepLevelMask, Column: maskCol, InputColumns: levelFilterCols})
	c.levelMaskCols = append(c.levelMaskCols, maskCol)

	// Step 6: propagate to subsequent levels.
	c.precedingMasks = append(c.precedingMasks, maskCol)
	return nil
}

func (c *compiler) emitMaterializationStep(attr *universe.Attribute) {
	switch attr.Kind {
	case universe.KindRank, universe.KindAggregate:
		c.steps = append(c.steps, Step{
			Kind:        stepKindFor(attr.Kind),
			Column:      attr.Code,
			Attr:        attr,
			GatingMasks: append([]string(nil), c.precedingMasks...),
		})
	case universe.KindExpression:
		// preceding_masks are not injected into expression steps
		// (spec.md §4.4 step 3: "expressions are assumed pure functions
		// of their referents; gating only affects ranks and aggregates").
		c.steps = append(c.steps, Step{Kind: StepExpression, Column: attr.Code, Attr: attr})
	}
}

func stepKindFor(k universe.AttrKind) StepKind {
	if k == universe.KindRank {
		return StepRank
	}
	return StepAggregate
}

// closureOrder returns the transitive closure of the given codes
// (including the codes themselves), topologically ordered so each
// attribute appears after all of its own dependencies. This is the plan
// compiler's own DFS over Universe.DirectDependencies — distinct from
// Universe.Dependencies, which excludes its root and answers a
// per-attribute closure query rather than an ordering over an arbitrary
// working set.
func closureOrder(uni *universe.Universe, codes []string) ([]string, error) {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)
	var path []string
	var order []string

	var visit func(c string) error
	visit = func(c string) error {
		if visited[c] {
			return nil
		}
		if visiting[c] {
			cyclePath := append(append([]string{}, path...), c)
			return errs.CyclicUniverse.New(strings.Join(cyclePath, " -> "))
		}
		attr, err := uni.Get(c)
		if err != nil {
			return err
		}
		visiting[c] = true
		path = append(path, c)
		for _, dep := range attr.DirectDependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		visiting[c] = false
		visited[c] = true
		order = append(order, c)
		return nil
	}

	for _, code := range codes {
		if err := visit(code); err != nil {
			return nil, err
		}
	}
	return order, nil
}
