package universe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/errs"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/parser"
)

// rankAttrJSON is one entry of a RANK attribute's rank_attrs list
// (spec.md §6).
type rankAttrJSON struct {
	AttrCode  string `json:"attr_code"`
	Direction string `json:"direction"`
	Order     int    `json:"order"`
}

// attributeJSON mirrors the universe.json attribute shape of spec.md §6.
type attributeJSON struct {
	AttrCode     string         `json:"attr_code"`
	AttrType     string         `json:"attr_type"`
	AttrDataType string         `json:"attr_data_type"`
	RankAttrs    []rankAttrJSON `json:"rank_attrs"`

	AggregateAttrCode  string  `json:"aggregate_attr_code"`
	AggregateFunction  string  `json:"aggregate_function"`
	AggregateDirection *string `json:"aggregate_direction"`

	Expression string `json:"expression"`

	PartitionBy string `json:"partition_by"`
}

// universeJSON mirrors the top-level universe.json document (spec.md §6).
type universeJSON struct {
	Key        string          `json:"key"`
	Attributes []attributeJSON `json:"attributes"`
}

// LoadJSON parses a universe.json document into a validated, ready-to-use
// Universe. Malformed JSON or unknown attribute types are a ConfigError,
// unparseable expressions a ParseError, and an invalid dependency graph
// an UnknownAttribute or CyclicUniverse error; all are fatal for the run
// per spec.md §4.7.
func LoadJSON(data []byte) (*Universe, error) {
	var doc universeJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.ConfigError.New("invalid universe.json: " + err.Error())
	}

	attrs := make([]*Attribute, 0, len(doc.Attributes))
	for _, raw := range doc.Attributes {
		a, err := attributeFromJSON(raw)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return New(strings.ToUpper(doc.Key), attrs)
}

// attributeFromJSON builds an Attribute from its JSON shape. Every
// attribute-code-shaped field is folded to uppercase here, the same way
// ioadapters upper-cases CSV headers and the expression parser upper-cases
// unquoted identifiers, so all three agree on how a code resolves against
// the universe (spec.md §4.1/§6).
func attributeFromJSON(raw attributeJSON) (*Attribute, error) {
	if raw.AttrCode == "" {
		return nil, errs.ConfigError.New("attribute missing attr_code")
	}
	a := &Attribute{
		Code:        strings.ToUpper(raw.AttrCode),
		DataType:    ParseDataType(raw.AttrDataType),
		PartitionBy: strings.ToUpper(raw.PartitionBy),
	}

	switch raw.AttrType {
	case "INPUT":
		a.Kind = KindInput
	case "EXPRESSION":
		a.Kind = KindExpression
		expr, err := parser.ParseExpr(raw.Expression)
		if err != nil {
			return nil, errs.ParseError.New(raw.AttrCode, err.Error())
		}
		a.Expr = expr
	case "RANK":
		a.Kind = KindRank
		if len(raw.RankAttrs) == 0 {
			return nil, errs.ConfigError.New(fmt.Sprintf("RANK attribute %s has no rank_attrs", raw.AttrCode))
		}
		keys := make([]RankKey, len(raw.RankAttrs))
		for i, k := range raw.RankAttrs {
			keys[i] = RankKey{RefCode: strings.ToUpper(k.AttrCode), Direction: ParseDirection(k.Direction), Order: k.Order}
		}
		sortRankKeys(keys)
		a.RankKeys = keys
	case "AGGREGATE":
		a.Kind = KindAggregate
		if raw.AggregateAttrCode == "" {
			return nil, errs.ConfigError.New(fmt.Sprintf("AGGREGATE attribute %s missing aggregate_attr_code", raw.AttrCode))
		}
		fn, ok := ParseAggFunc(raw.AggregateFunction)
		if !ok {
			return nil, errs.ConfigError.New(fmt.Sprintf("AGGREGATE attribute %s has unknown aggregate_function %q", raw.AttrCode, raw.AggregateFunction))
		}
		a.SourceCode = strings.ToUpper(raw.AggregateAttrCode)
		a.Func = fn
		if raw.AggregateDirection != nil && *raw.AggregateDirection != "" {
			dir := ParseDirection(*raw.AggregateDirection)
			a.AggDirection = &dir
		}
	default:
		return nil, errs.ConfigError.New(fmt.Sprintf("attribute %s has unknown attr_type %q", raw.AttrCode, raw.AttrType))
	}

	return a, nil
}

// sortRankKeys orders rank_attrs ascending by their declared order field
// (spec.md §4.4: "Rank keys are applied in ascending order field").
func sortRankKeys(keys []RankKey) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j].Order < keys[j-1].Order; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}
