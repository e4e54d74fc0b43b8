package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// StepImageMap associates direction steps with entries in a recipe's step-image
// list. Internally it is a real map (at most one image per step); on the wire it
// keeps the app's historical "stepIndex:imageIndex" string-list encoding so that
// previously exported recipe files stay importable.
type StepImageMap map[int]int

// Get returns the image index associated with a step.
func (m StepImageMap) Get(step int) (int, bool) {
	idx, ok := m[step]
	return idx, ok
}

// Set associates a step with an image index, replacing any existing association
// for that step.
func (m *StepImageMap) Set(step, image int) {
	if *m == nil {
		*m = StepImageMap{}
	}
	(*m)[step] = image
}

// Remove drops the association for a step, if any.
func (m *StepImageMap) Remove(step int) {
	delete(*m, step)
}

// MarshalJSON encodes the map as a list of "step:image" pairs, ordered by step.
func (m StepImageMap) MarshalJSON() ([]byte, error) {
	steps := make([]int, 0, len(m))
	for step := range m {
		steps = append(steps, step)
	}
	sort.Ints(steps)

	pairs := make([]string, 0, len(steps))
	for _, step := range steps {
		pairs = append(pairs, fmt.Sprintf("%d:%d", step, m[step]))
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes the "step:image" pair list. Malformed entries (wrong
// segment count, non-integer halves) are skipped; when a step appears more than
// once the first entry wins.
func (m *StepImageMap) UnmarshalJSON(data []byte) error {
	var pairs []string
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}

	out := StepImageMap{}
	for _, pair := range pairs {
		halves := strings.Split(pair, ":")
		if len(halves) != 2 {
			continue
		}
		step, err := strconv.Atoi(halves[0])
		if err != nil {
			continue
		}
		image, err := strconv.Atoi(halves[1])
		if err != nil {
			continue
		}
		if _, exists := out[step]; exists {
			continue
		}
		out[step] = image
	}
	*m = out
	return nil
}

// Value implements the driver.Valuer interface
func (m StepImageMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	return m.MarshalJSON()
}

// Scan implements the sql.Scanner interface
func (m *StepImageMap) Scan(value interface{}) error {
	if value == nil {
		*m = StepImageMap{}
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

	return m.UnmarshalJSON(bytes)
}
