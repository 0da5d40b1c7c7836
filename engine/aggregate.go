package engine

import (
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/universe"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/value"
	"github.com/shopspring/decimal"
)

// AppendAggregate computes a windowed reduction of source_code over the
// partition, or the whole row set if no partition_by is set (spec.md
// §3, §4.4). A row whose gating masks do not all hold contributes the
// identity element of func rather than its actual source value. If
// attr.AggDirection is set, the result is a running aggregate ordered by
// source_code in that direction (spec.md's resolved Open Question:
// "running aggregate with default frame up to current value").
func (e *Engine) AppendAggregate(col string, attr *universe.Attribute, gatingMaskCols []string) error {
	n := e.rs.Len()

	gating, err := loadColumns(e.rs, gatingMaskCols)
	if err != nil {
		return err
	}
	source, err := e.rs.Column(attr.SourceCode)
	if err != nil {
		return err
	}
	groups, groupOrder, err := partitionOf(e.rs, attr.PartitionBy, n)
	if err != nil {
		return err
	}

	vals := make([]value.Value, n)
	for _, pk := range groupOrder {
		idx := groups[pk]
		if attr.AggDirection == nil {
			result := reduceWhole(attr.Func, idx, source, gating)
			for _, row := range idx {
				vals[row] = result
			}
		} else {
			assignRunning(attr, idx, source, gating, vals)
		}
	}
	return e.rs.AppendColumn(col, vals)
}

// reduceWhole folds source over a partition's rows, counting only rows
// whose gating masks all hold, and (for SUM/MIN/MAX/AVG) skipping a null
// source value (spec.md §4.4 "Nulls": "Aggregates skip nulls in the
// source column but still count the row for COUNT's denominator-less
// form").
func reduceWhole(fn universe.AggFunc, idx []int, source []value.Value, gating [][]value.Value) value.Value {
	switch fn {
	case universe.Sum:
		sum := decimal.Zero
		for _, row := range idx {
			if !gatingMasksAllTrue(gating, row) {
				continue
			}
			v := source[row]
			if v.IsNull() || v.Kind != value.Number {
				continue
			}
			sum = sum.Add(v.Num)
		}
		return value.NumberOf(sum)
	case universe.Count:
		count := 0
		for _, row := range idx {
			if gatingMasksAllTrue(gating, row) {
				count++
			}
		}
		return value.IntOf(count)
	case universe.Min, universe.Max:
		var best decimal.Decimal
		found := false
		for _, row := range idx {
			if !gatingMasksAllTrue(gating, row) {
				continue
			}
			v := source[row]
			if v.IsNull() || v.Kind != value.Number {
				continue
			}
			if !found {
				best = v.Num
				found = true
				continue
			}
			if fn == universe.Min && v.Num.LessThan(best) {
				best = v.Num
			}
			if fn == universe.Max && v.Num.GreaterThan(best) {
				best = v.Num
			}
		}
		if !found {
			return value.NullValue
		}
		return value.NumberOf(best)
	case universe.Avg:
		sum := decimal.Zero
		count := 0
		for _, row := range idx {
			if !gatingMasksAllTrue(gating, row) {
				continue
			}
			v := source[row]
			if v.IsNull() || v.Kind != value.Number {
				continue
			}
			sum = sum.Add(v.Num)
			count++
		}
		if count == 0 {
			return value.NullValue
		}
		return value.NumberOf(sum.Div(decimal.NewFromInt(int64(count))))
	default:
		return value.NullValue
	}
}

// assignRunning orders a partition's rows by source value in the
// attribute's declared direction (nulls last) and assigns each row the
// aggregate over every row whose source value precedes or equals its
// own — a value-based (not positional) cumulative window, so tied
// values all receive the same result (spec.md §4.4).
func assignRunning(attr *universe.Attribute, idx []int, source []value.Value, gating [][]value.Value, vals []value.Value) {
	desc := *attr.AggDirection == universe.Desc
	ordered := append([]int(nil), idx...)
	stableSortInts(ordered, func(a, b int) bool {
		c := orderCompare(source[a], source[b], desc)
		if c != 0 {
			return c < 0
		}
		return a < b
	})

	sum := decimal.Zero
	nonNullCount := 0
	rowCount := 0
	var min, max decimal.Decimal
	haveMinMax := false

	i := 0
	for i < len(ordered) {
		j := i
		for j < len(ordered) && value.Equal(source[ordered[j]], source[ordered[i]]) {
			j++
		}
		batch := ordered[i:j]
		for _, row := range batch {
			if !gatingMasksAllTrue(gating, row) {
				continue
			}
			rowCount++
			v := source[row]
			if v.IsNull() || v.Kind != value.Number {
				continue
			}
			sum = sum.Add(v.Num)
			nonNullCount++
			if !haveMinMax {
				min, max = v.Num, v.Num
				haveMinMax = true
			} else {
				if v.Num.LessThan(min) {
					min = v.Num
				}
				if v.Num.GreaterThan(max) {
					max = v.Num
				}
			}
		}

		result := runningResult(attr.Func, sum, nonNullCount, rowCount, min, max, haveMinMax)
		for _, row := range batch {
			vals[row] = result
		}
		i = j
	}
}

func runningResult(fn universe.AggFunc, sum decimal.Decimal, nonNullCount, rowCount int, min, max decimal.Decimal, haveMinMax bool) value.Value {
	switch fn {
	case universe.Sum:
		return value.NumberOf(sum)
	case universe.Count:
		return value.IntOf(rowCount)
	case universe.Min:
		if !haveMinMax {
			return value.NullValue
		}
		return value.NumberOf(min)
	case universe.Max:
		if !haveMinMax {
			return value.NullValue
		}
		return value.NumberOf(max)
	case universe.Avg:
		if nonNullCount == 0 {
			return value.NullValue
		}
		return value.NumberOf(sum.Div(decimal.NewFromInt(int64(nonNullCount))))
	default:
		return value.NullValue
	}
}
