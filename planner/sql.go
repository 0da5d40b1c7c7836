package planner

import (
	"fmt"
	"strings"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/format"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/universe"
)

// SQL renders the plan's equivalent nested-SELECT form (spec.md §4.4
// "Equivalent SQL emission"): each materialization step becomes
// `SELECT d.*, <expr> AS <code> FROM (<previous>) d`. This is not backed
// by a SQL engine in this module — it exists as an alternative
// re-emission target for the round-trip testable property (spec.md §8)
// and for parity-testing against the native engine package, not as a
// second execution path.
func (p *Plan) SQL(source string) string {
	query := source
	for _, step := range p.Steps {
		query = sqlForStep(step, query)
	}
	return query
}

func sqlForStep(step Step, source string) string {
	switch step.Kind {
	case StepExpression:
		return wrap(source, format.String(step.Attr.Expr), step.Column)
	case StepFilter:
		return wrap(source, format.String(step.FilterExpr), step.Column)
	case StepRank:
		return wrap(source, rankWindowSQL(step), step.Column)
	case StepAggregate:
		return wrap(source, aggregateWindowSQL(step), step.Column)
	case StepLevelMask, StepFinal:
		cond := "TRUE"
		if len(step.InputColumns) > 0 {
			cond = strings.Join(step.InputColumns, " AND ")
		}
		return wrap(source, cond, step.Column)
	case StepFailedFilters:
		return wrap(source, failedFiltersCaseSQL(step.InputColumns), step.Column)
	default:
		return source
	}
}

func wrap(source, expr, alias string) string {
	return fmt.Sprintf("(SELECT d.*, %s AS %s FROM (%s) d)", expr, alias, source)
}

// rankWindowSQL renders `rank() OVER (PARTITION BY p ORDER BY k1 d1, k2
// d2, … NULLS LAST)`, inserting the synthetic gating keys (each DESC)
// before the declared rank_keys (spec.md §4.4).
func rankWindowSQL(step Step) string {
	var b strings.Builder
	b.WriteString("RANK() OVER (")
	if step.Attr.HasPartition() {
		b.WriteString("PARTITION BY ")
		b.WriteString(step.Attr.PartitionBy)
		b.WriteString(" ")
	}
	b.WriteString("ORDER BY ")
	first := true
	for _, gate := range step.GatingMasks {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(gate)
		b.WriteString(" DESC NULLS LAST")
	}
	for _, k := range step.Attr.RankKeys {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(k.RefCode)
		if k.Direction == universe.Desc {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
		b.WriteString(" NULLS LAST")
	}
	b.WriteString(")")
	return b.String()
}

// aggregateWindowSQL renders `f(CASE WHEN <gate> THEN source END) OVER
// (PARTITION BY p [ORDER BY source direction])` (spec.md §4.4).
func aggregateWindowSQL(step Step) string {
	fn := aggFuncSQL(step.Attr.Func)
	source := step.Attr.SourceCode
	caseExpr := source
	if len(step.GatingMasks) > 0 {
		caseExpr = fmt.Sprintf("CASE WHEN %s THEN %s END", strings.Join(step.GatingMasks, " AND "), source)
	}
	var b strings.Builder
	b.WriteString(fn)
	b.WriteString("(")
	b.WriteString(caseExpr)
	b.WriteString(") OVER (")
	parts := []string{}
	if step.Attr.HasPartition() {
		parts = append(parts, "PARTITION BY "+step.Attr.PartitionBy)
	}
	if step.Attr.AggDirection != nil {
		dir := "ASC"
		if *step.Attr.AggDirection == universe.Desc {
			dir = "DESC"
		}
		parts = append(parts, fmt.Sprintf("ORDER BY %s %s", source, dir))
	}
	b.WriteString(strings.Join(parts, " "))
	b.WriteString(")")
	return b.String()
}

func aggFuncSQL(fn universe.AggFunc) string {
	switch fn {
	case universe.Sum:
		return "SUM"
	case universe.Min:
		return "MIN"
	case universe.Max:
		return "MAX"
	case universe.Avg:
		return "AVG"
	case universe.Count:
		return "COUNT"
	default:
		return "SUM"
	}
}

// failedFiltersCaseSQL renders a semicolon-joined list of filter column
// names where the value is false, via CONCAT_WS over one CASE per filter
// (spec.md §4.4 "Optionally emit failed_filters").
func failedFiltersCaseSQL(filterCols []string) string {
	if len(filterCols) == 0 {
		return "''"
	}
	parts := make([]string, len(filterCols))
	for i, col := range filterCols {
		parts[i] = fmt.Sprintf("CASE WHEN NOT %s THEN '%s' END", col, col)
	}
	return "CONCAT_WS(';', " + strings.Join(parts, ", ") + ")"
}
