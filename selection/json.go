package selection

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/errs"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/parser"
)

type filterJSON struct {
	FilterID         int    `json:"filter_id"`
	Expression       string `json:"expression"`
	ApplicationLevel int    `json:"application_level"`
}

type outputAttrJSON struct {
	AttrCode         string `json:"attr_code"`
	ApplicationLevel int    `json:"application_level"`
}

type outputSettingsJSON struct {
	ShowAll          bool `json:"show_all"`
	AddAttributes    bool `json:"add_attributes"`
	AddFilters       bool `json:"add_filters"`
	AddFailedFilters bool `json:"add_failed_filters"`
}

type selectionJSON struct {
	SelectionID    int                `json:"selection_id"`
	Filters        []filterJSON       `json:"filters"`
	OutputAttrs    []outputAttrJSON   `json:"output_attrs"`
	OutputSettings outputSettingsJSON `json:"output_settings"`
}

type selectionsDocJSON struct {
	Selections []selectionJSON `json:"selections"`
}

// LoadJSON parses a selection.json document into a list of validated
// Selections (spec.md §6). Malformed JSON or a duplicate filter_id
// within one selection is a ConfigError, fatal for the run per spec.md
// §4.7; expression syntax errors are a ParseError.
func LoadJSON(data []byte) ([]*Selection, error) {
	var doc selectionsDocJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.ConfigError.New("invalid selection.json: " + err.Error())
	}

	out := make([]*Selection, 0, len(doc.Selections))
	for _, raw := range doc.Selections {
		sel, err := selectionFromJSON(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

func selectionFromJSON(raw selectionJSON) (*Selection, error) {
	seen := make(map[int]bool, len(raw.Filters))
	filters := make([]Filter, 0, len(raw.Filters))
	for _, f := range raw.Filters {
		if seen[f.FilterID] {
			return nil, errs.ConfigError.New(fmt.Sprintf("selection %d has duplicate filter_id %d", raw.SelectionID, f.FilterID))
		}
		seen[f.FilterID] = true
		expr, err := parser.ParseExpr(f.Expression)
		if err != nil {
			return nil, errs.ParseError.New(fmt.Sprintf("selection %d filter %d", raw.SelectionID, f.FilterID), err.Error())
		}
		filters = append(filters, Filter{FilterID: f.FilterID, Expr: expr, ApplicationLevel: f.ApplicationLevel})
	}

	outputAttrs := make([]OutputAttr, len(raw.OutputAttrs))
	for i, oa := range raw.OutputAttrs {
		// Folded to uppercase so it resolves against the universe the same
		// way expression identifiers and CSV headers do (spec.md §4.1/§6).
		outputAttrs[i] = OutputAttr{AttrCode: strings.ToUpper(oa.AttrCode), ApplicationLevel: oa.ApplicationLevel}
	}

	settings := OutputSettings{
		ShowAll:          raw.OutputSettings.ShowAll,
		AddAttributes:    raw.OutputSettings.AddAttributes,
		AddFilters:       raw.OutputSettings.AddFilters,
		AddFailedFilters: raw.OutputSettings.AddFailedFilters,
	}

	return New(raw.SelectionID, filters, outputAttrs, settings), nil
}
