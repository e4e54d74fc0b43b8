package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{name: "native number", input: `150`, want: floatPtr(150)},
		{name: "native float", input: `2.5`, want: floatPtr(2.5)},
		{name: "unit suffix", input: `"20 g"`, want: floatPtr(20)},
		{name: "unit suffix kcal", input: `"150 kcal"`, want: floatPtr(150)},
		{name: "number inside text", input: `"about 3.5 grams"`, want: floatPtr(3.5)},
		{name: "empty string", input: `""`, want: nil},
		{name: "no digits", input: `"trace"`, want: nil},
		{name: "null", input: `null`, want: nil},
		{name: "too many dots", input: `"1.2.3"`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseNumber(json.RawMessage(tt.input))
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestParseNumberAbsent(t *testing.T) {
	assert.Nil(t, parseNumber(nil))
}

func TestNutritionInfoUnmarshalTolerant(t *testing.T) {
	data := []byte(`{
		"servingSize": "1 bowl",
		"calories": "250 kcal",
		"fatContent": 12.5,
		"proteinContent": "8 g",
		"sodiumContent": "unknown"
	}`)

	var n NutritionInfo
	require.NoError(t, json.Unmarshal(data, &n))

	assert.Equal(t, "1 bowl", n.ServingSize)
	require.NotNil(t, n.Calories)
	assert.Equal(t, 250, *n.Calories)
	require.NotNil(t, n.Fat)
	assert.Equal(t, 12.5, *n.Fat)
	require.NotNil(t, n.Protein)
	assert.Equal(t, 8.0, *n.Protein)
	assert.Nil(t, n.Sodium)
	assert.Nil(t, n.Carbohydrate)
}

func TestNutritionInfoAllNullFields(t *testing.T) {
	data := []byte(`{
		"calories": null,
		"fatContent": null,
		"carbohydrateContent": null,
		"proteinContent": null
	}`)

	var n NutritionInfo
	require.NoError(t, json.Unmarshal(data, &n))

	assert.Nil(t, n.Calories)
	assert.Nil(t, n.Fat)
	assert.Nil(t, n.Carbohydrate)
	assert.Nil(t, n.Protein)
	assert.False(t, n.HasData())
}

func TestNutritionInfoHasData(t *testing.T) {
	var nilInfo *NutritionInfo
	assert.False(t, nilInfo.HasData())
	assert.False(t, (&NutritionInfo{ServingSize: "1 cup"}).HasData())
	assert.False(t, (&NutritionInfo{Fiber: floatPtr(3)}).HasData())

	assert.True(t, (&NutritionInfo{Calories: intPtr(100)}).HasData())
	assert.True(t, (&NutritionInfo{Fat: floatPtr(1)}).HasData())
	assert.True(t, (&NutritionInfo{Carbohydrate: floatPtr(1)}).HasData())
	assert.True(t, (&NutritionInfo{Protein: floatPtr(1)}).HasData())
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
