package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"regexp"
	"strconv"
)

// NutritionInfo holds the optional per-serving nutrition facts of a recipe.
// At most one exists per recipe and it is stored embedded in its parent.
// Units follow convention per field (kcal, grams, milligrams) and are not
// stored explicitly.
type NutritionInfo struct {
	ServingSize  string   `json:"servingSize,omitempty"`
	Calories     *int     `json:"calories,omitempty"`
	Fat          *float64 `json:"fatContent,omitempty"`
	SaturatedFat *float64 `json:"saturatedFatContent,omitempty"`
	TransFat     *float64 `json:"transFatContent,omitempty"`
	Cholesterol  *float64 `json:"cholesterolContent,omitempty"`
	Sodium       *float64 `json:"sodiumContent,omitempty"`
	Carbohydrate *float64 `json:"carbohydrateContent,omitempty"`
	Fiber        *float64 `json:"fiberContent,omitempty"`
	Sugar        *float64 `json:"sugarContent,omitempty"`
	Protein      *float64 `json:"proteinContent,omitempty"`
}

// HasData reports whether any of the headline values is present.
func (n *NutritionInfo) HasData() bool {
	if n == nil {
		return false
	}
	return n.Calories != nil || n.Fat != nil || n.Carbohydrate != nil || n.Protein != nil
}

// numberRun matches the first contiguous numeric run in free text, e.g. the
// "20" in "20 g" or "150" in "150 kcal".
var numberRun = regexp.MustCompile(`[0-9.]+`)

// parseNumber accepts a JSON number or a string with a number embedded in unit
// text and extracts its value. Nutrition data scraped from the web is messy, so
// anything unparsable yields nil rather than an error.
func parseNumber(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	// Unmarshal of a JSON null into a float64 is a no-op that reports success,
	// so null has to be ruled out before the numeric path.
	if string(bytes.TrimSpace(raw)) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	run := numberRun.FindString(s)
	if run == "" {
		return nil
	}
	f, err := strconv.ParseFloat(run, 64)
	if err != nil {
		return nil
	}
	return &f
}

// UnmarshalJSON decodes nutrition facts, tolerating string-typed numbers with
// unit suffixes in every numeric field.
func (n *NutritionInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		ServingSize  string          `json:"servingSize"`
		Calories     json.RawMessage `json:"calories"`
		Fat          json.RawMessage `json:"fatContent"`
		SaturatedFat json.RawMessage `json:"saturatedFatContent"`
		TransFat     json.RawMessage `json:"transFatContent"`
		Cholesterol  json.RawMessage `json:"cholesterolContent"`
		Sodium       json.RawMessage `json:"sodiumContent"`
		Carbohydrate json.RawMessage `json:"carbohydrateContent"`
		Fiber        json.RawMessage `json:"fiberContent"`
		Sugar        json.RawMessage `json:"sugarContent"`
		Protein      json.RawMessage `json:"proteinContent"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.ServingSize = raw.ServingSize
	if f := parseNumber(raw.Calories); f != nil {
		calories := int(*f)
		n.Calories = &calories
	}
	n.Fat = parseNumber(raw.Fat)
	n.SaturatedFat = parseNumber(raw.SaturatedFat)
	n.TransFat = parseNumber(raw.TransFat)
	n.Cholesterol = parseNumber(raw.Cholesterol)
	n.Sodium = parseNumber(raw.Sodium)
	n.Carbohydrate = parseNumber(raw.Carbohydrate)
	n.Fiber = parseNumber(raw.Fiber)
	n.Sugar = parseNumber(raw.Sugar)
	n.Protein = parseNumber(raw.Protein)
	return nil
}

// Value implements the driver.Valuer interface
func (n *NutritionInfo) Value() (driver.Value, error) {
	if n == nil {
		return nil, nil
	}
	return json.Marshal(n)
}

// Scan implements the sql.Scanner interface
func (n *NutritionInfo) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, n)
}
