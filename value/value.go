// Package value defines the runtime value representation shared by the
// row set, expression evaluator, and execution engine: a dynamically
// typed cell that is either null, a number, a string, or a boolean
// (spec.md §3, §4.1). Numbers use github.com/shopspring/decimal rather
// than float64 so that SUM/AVG over currency-like columns do not
// accumulate binary floating-point error across thousands of rows.
package value

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind discriminates the runtime type of a Value.
type Kind int

const (
	Null Kind = iota
	Number
	String
	Bool
)

// Value is a single cell in a row set: the result of evaluating an input
// column, an expression, a rank, or an aggregate for one row.
type Value struct {
	Kind Kind
	Num  decimal.Decimal
	Str  string
	B    bool
}

// NullValue is the canonical null cell.
var NullValue = Value{Kind: Null}

// NumberOf wraps a decimal as a number Value.
func NumberOf(d decimal.Decimal) Value { return Value{Kind: Number, Num: d} }

// IntOf wraps an int as a number Value, used for synthesized columns
// such as rank and COUNT.
func IntOf(n int) Value { return Value{Kind: Number, Num: decimal.NewFromInt(int64(n))} }

// StringOf wraps a string Value.
func StringOf(s string) Value { return Value{Kind: String, Str: s} }

// BoolOf wraps a boolean Value.
func BoolOf(b bool) Value { return Value{Kind: Bool, B: b} }

// ParseCell infers a Value from a raw CSV cell: empty is null, a cell
// that parses as a decimal is a number, everything else is a string.
func ParseCell(raw string) Value {
	if raw == "" {
		return NullValue
	}
	if d, err := decimal.NewFromString(raw); err == nil {
		return NumberOf(d)
	}
	return StringOf(raw)
}

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.Kind == Null }

// Truthy coerces v to a Boolean for use as a filter mask. A null value,
// per spec.md §4.7, is treated as false; a non-null, non-Bool value is
// never produced by a well-typed filter expression, but is also treated
// as false rather than panicking.
func (v Value) Truthy() bool {
	return v.Kind == Bool && v.B
}

// String renders v for CSV output and string concatenation.
func (v Value) String() string {
	switch v.Kind {
	case Null:
		return ""
	case Number:
		return v.Num.String()
	case String:
		return v.Str
	case Bool:
		if v.B {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Equal reports whether two values are equal: same kind and same
// underlying content. Two values of differing kind are never equal,
// including a number that happens to format the same as a string.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Null:
		return true
	case Number:
		return a.Num.Equal(b.Num)
	case String:
		return a.Str == b.Str
	case Bool:
		return a.B == b.B
	default:
		return false
	}
}

// PartitionKey returns a canonical string usable as a map key for
// grouping rows by partition value (spec.md §4.7: "null is its own
// partition").
func (v Value) PartitionKey() string {
	switch v.Kind {
	case Null:
		return "\x00null"
	case Number:
		return "n:" + v.Num.String()
	case String:
		return "s:" + v.Str
	case Bool:
		if v.B {
			return "b:true"
		}
		return "b:false"
	default:
		return "?"
	}
}

// Compare orders two values for ranking and running aggregates: numbers
// and strings compare within their own kind; a null value always sorts
// last regardless of requested direction (spec.md §4.4 "Nulls"); mixed
// non-null kinds fall back to lexicographic comparison of their string
// form, since the grammar never type-checks across kinds at parse time.
func Compare(a, b Value) int {
	if a.IsNull() && b.IsNull() {
		return 0
	}
	if a.IsNull() {
		return 1
	}
	if b.IsNull() {
		return -1
	}
	if a.Kind == Number && b.Kind == Number {
		return a.Num.Cmp(b.Num)
	}
	if a.Kind == Bool && b.Kind == Bool {
		if a.B == b.B {
			return 0
		}
		if !a.B {
			return -1
		}
		return 1
	}
	return strings.Compare(a.String(), b.String())
}

// GoString supports %#v debugging output.
func (v Value) GoString() string {
	return fmt.Sprintf("value.Value{Kind:%d,%s}", v.Kind, v.String())
}
