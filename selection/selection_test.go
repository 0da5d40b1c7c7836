package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelsAreSortedAndDeduplicated(t *testing.T) {
	sel := New(1, []Filter{
		{FilterID: 1, ApplicationLevel: 2},
		{FilterID: 2, ApplicationLevel: 0},
		{FilterID: 3, ApplicationLevel: 2},
	}, []OutputAttr{{AttrCode: "A", ApplicationLevel: 1}}, OutputSettings{})

	assert.Equal(t, []int{0, 1, 2}, sel.Levels())
}

func TestFiltersScopedByLevel(t *testing.T) {
	sel := New(1, []Filter{
		{FilterID: 1, ApplicationLevel: 0},
		{FilterID: 2, ApplicationLevel: 1},
	}, nil, OutputSettings{})

	assert.Len(t, sel.Filters(0), 1)
	assert.Len(t, sel.Filters(1), 1)
	assert.Empty(t, sel.Filters(2))
	assert.Len(t, sel.AllFilters(), 2)
}

func TestOutputAttrsScopedByLevel(t *testing.T) {
	sel := New(1, nil, []OutputAttr{
		{AttrCode: "A", ApplicationLevel: 0},
		{AttrCode: "B", ApplicationLevel: 1},
	}, OutputSettings{})

	assert.Equal(t, []string{"A"}, sel.OutputAttrs(0))
	assert.Equal(t, []string{"B"}, sel.OutputAttrs(1))
}

func TestLoadJSONRejectsDuplicateFilterID(t *testing.T) {
	doc := []byte(`{"selections":[{"selection_id":1,"filters":[
		{"filter_id":1,"expression":"A > 1","application_level":0},
		{"filter_id":1,"expression":"A < 10","application_level":0}
	]}]}`)
	_, err := LoadJSON(doc)
	require.Error(t, err)
}

func TestLoadJSONScenario(t *testing.T) {
	doc := []byte(`{"selections":[{
		"selection_id":7,
		"filters":[{"filter_id":1,"expression":"A > 10","application_level":0}],
		"output_attrs":[{"attr_code":"A","application_level":0}],
		"output_settings":{"show_all":true,"add_attributes":true,"add_filters":false,"add_failed_filters":true}
	}]}`)
	sels, err := LoadJSON(doc)
	require.NoError(t, err)
	require.Len(t, sels, 1)

	sel := sels[0]
	assert.Equal(t, 7, sel.ID())
	assert.True(t, sel.OutputSettings().ShowAll)
	assert.True(t, sel.OutputSettings().AddFailedFilters)
	assert.False(t, sel.OutputSettings().AddFilters)
}
