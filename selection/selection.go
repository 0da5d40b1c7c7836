// Package selection models a selection (spec.md §3, §4.2): a named
// Boolean program over a universe, grouped into sequential application
// levels, with output shaping preferences.
package selection

import (
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/ast"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/ordered"
)

// Filter is one (filter_id, expression, application_level) triple.
type Filter struct {
	FilterID         int
	Expr             ast.Expr
	ApplicationLevel int
}

// OutputAttr is one requested output column, scoped to the level at
// which it becomes available.
type OutputAttr struct {
	AttrCode         string
	ApplicationLevel int
}

// OutputSettings controls what the output shaper includes (spec.md §4.6).
type OutputSettings struct {
	ShowAll          bool
	AddAttributes    bool
	AddFilters       bool
	AddFailedFilters bool
}

// Selection is a read-only-after-load typed view over one selection's
// filters, levels, and output preferences.
type Selection struct {
	id          int
	filters     []Filter
	outputAttrs []OutputAttr
	settings    OutputSettings
	levels      []int
}

// New builds a Selection, computing its ascending distinct level set.
func New(id int, filters []Filter, outputAttrs []OutputAttr, settings OutputSettings) *Selection {
	s := &Selection{id: id, filters: filters, outputAttrs: outputAttrs, settings: settings}
	seen := make(map[int]bool)
	for _, f := range filters {
		seen[f.ApplicationLevel] = true
	}
	for _, oa := range outputAttrs {
		seen[oa.ApplicationLevel] = true
	}
	s.levels = ordered.UniqueSorted(seen)
	return s
}

// ID returns the selection_id.
func (s *Selection) ID() int { return s.id }

// Levels returns the ascending set of distinct application levels that
// appear across this selection's filters and output_attrs.
func (s *Selection) Levels() []int {
	out := make([]int, len(s.levels))
	copy(out, s.levels)
	return out
}

// Filters returns the filters declared at the given application level,
// in declaration order.
func (s *Selection) Filters(level int) []Filter {
	var out []Filter
	for _, f := range s.filters {
		if f.ApplicationLevel == level {
			out = append(out, f)
		}
	}
	return out
}

// AllFilters returns every filter across every level, in declaration
// order; filters are not regrouped by level.
func (s *Selection) AllFilters() []Filter {
	out := make([]Filter, len(s.filters))
	copy(out, s.filters)
	return out
}

// OutputAttrs returns the output attribute codes requested at the given
// level.
func (s *Selection) OutputAttrs(level int) []string {
	var out []string
	for _, oa := range s.outputAttrs {
		if oa.ApplicationLevel == level {
			out = append(out, oa.AttrCode)
		}
	}
	return out
}

// OutputSettings returns the selection's output preferences.
func (s *Selection) OutputSettings() OutputSettings { return s.settings }
