package model

// Ingredient is one line of a recipe's ingredient list. It has no identity of
// its own and is stored embedded in its parent recipe.
type Ingredient struct {
	Name         string `json:"name"`
	Amount       string `json:"amount,omitempty"`
	Unit         string `json:"unit,omitempty"`
	Preparation  string `json:"preparation,omitempty"`
	Alternative  string `json:"alternative,omitempty"`
	IsOptional   bool   `json:"isOptional"`
	Section      string `json:"section,omitempty"`
	BakerPercent string `json:"bakerPercent,omitempty"`
}

// DisplayAmount formats the quantity segment: amount plus unit, unit omitted
// when absent, empty when there is no amount at all.
func (i Ingredient) DisplayAmount() string {
	if i.Amount == "" {
		return ""
	}
	if i.Unit == "" {
		return i.Amount
	}
	return i.Amount + " " + i.Unit
}

// DisplayText formats the ingredient as a single line, e.g. "2 tbsp sugar".
// Preparation, alternative and optionality are rendered separately by the UI
// and are deliberately left out here.
func (i Ingredient) DisplayText() string {
	amount := i.DisplayAmount()
	if amount == "" {
		return i.Name
	}
	return amount + " " + i.Name
}
