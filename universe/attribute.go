// Package universe models the universe of named attributes a selection
// is authored against (spec.md §3, §4.2) as a tagged variant rather than
// a class hierarchy (Design Notes §9: "Reimplement as a tagged variant
// dispatched by a single function that pattern-matches on the variant").
package universe

import "github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/ast"

// DataType is the declared type of an attribute, used for informational
// typing only: CSV cells are not coerced by it, and filter and arithmetic
// semantics remain dynamically typed over the row's runtime value
// (SPEC_FULL.md §3, following original_source/attribute.py's richer type
// enum).
type DataType int

const (
	DataTypeInteger DataType = iota
	DataTypeFloat
	DataTypeString
	DataTypeBoolean
	DataTypeDate
)

// ParseDataType maps a universe.json attr_data_type string to a DataType,
// defaulting to DataTypeString for anything unrecognized.
func ParseDataType(s string) DataType {
	switch s {
	case "INTEGER":
		return DataTypeInteger
	case "FLOAT":
		return DataTypeFloat
	case "BOOLEAN":
		return DataTypeBoolean
	case "DATE":
		return DataTypeDate
	default:
		return DataTypeString
	}
}

// AttrKind discriminates the four attribute variants of spec.md §3.
type AttrKind int

const (
	KindInput AttrKind = iota
	KindExpression
	KindRank
	KindAggregate
)

// Direction is a rank-key or running-aggregate ordering direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// ParseDirection maps "ASC"/"DESC" to a Direction, defaulting to Asc.
func ParseDirection(s string) Direction {
	if s == "DESC" {
		return Desc
	}
	return Asc
}

// RankKey is one (ref_code, direction) pair of a RANK attribute's
// ordered rank_keys, carrying its declared order for sorting.
type RankKey struct {
	RefCode   string
	Direction Direction
	Order     int
}

// AggFunc is one of the fixed windowed reduction functions (spec.md
// §3). Non-goals explicitly exclude user-defined extensions beyond
// this set.
type AggFunc int

const (
	Sum AggFunc = iota
	Min
	Max
	Avg
	Count
)

// ParseAggFunc maps a universe.json aggregate_function string to an
// AggFunc.
func ParseAggFunc(s string) (AggFunc, bool) {
	switch s {
	case "SUM":
		return Sum, true
	case "MIN":
		return Min, true
	case "MAX":
		return Max, true
	case "AVG":
		return Avg, true
	case "COUNT":
		return Count, true
	default:
		return 0, false
	}
}

// Attribute is one entry of the universe: a raw input column or a
// derived attribute, carrying only the fields its Kind needs.
type Attribute struct {
	Code     string
	Kind     AttrKind
	DataType DataType

	// Expression-only.
	Expr ast.Expr

	// Rank-only.
	RankKeys []RankKey

	// Aggregate-only.
	SourceCode   string
	Func         AggFunc
	AggDirection *Direction // nil when unset (non-running aggregate)

	// Rank and Aggregate.
	PartitionBy string // "" when absent
}

// HasPartition reports whether a Rank or Aggregate attribute restricts
// its window to a partition.
func (a *Attribute) HasPartition() bool { return a.PartitionBy != "" }

// DirectDependencies returns the attribute codes a references directly,
// per the variant-specific rule of spec.md §3 (not the transitive
// closure; see Universe.Dependencies for that).
func (a *Attribute) DirectDependencies() []string {
	switch a.Kind {
	case KindInput:
		return nil
	case KindExpression:
		return identifiersOf(a.Expr)
	case KindRank:
		deps := make([]string, 0, len(a.RankKeys)+1)
		for _, k := range a.RankKeys {
			deps = append(deps, k.RefCode)
		}
		if a.HasPartition() {
			deps = append(deps, a.PartitionBy)
		}
		return deps
	case KindAggregate:
		deps := []string{a.SourceCode}
		if a.HasPartition() {
			deps = append(deps, a.PartitionBy)
		}
		return deps
	default:
		return nil
	}
}
