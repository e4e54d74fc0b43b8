package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Placeholder strings a known-bad recipe feed emits inside list fields.
const (
	pairsWithPlaceholder  = "Pairs With"
	directionsPlaceholder = "Directions"
)

// recipeJSON is the wire form of an exported recipe file. It exists so that
// import can accept legacy keys and tolerate sloppy data before anything
// reaches the Recipe struct.
type recipeJSON struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Course      string `json:"course"`
	Cuisine     string `json:"cuisine"`
	Subcategory string `json:"subcategory"`
	Continent   string `json:"continent"`
	Country     string `json:"country"`

	Serves string `json:"serves"`
	Time   string `json:"time"`

	// comments is the current key; notes is the legacy one. First non-null
	// wins.
	Comments *string `json:"comments"`
	Notes    *string `json:"notes"`

	Tags            StringList `json:"tags"`
	PairsWith       StringList `json:"pairsWith"`
	PairedRecipeIDs StringList `json:"pairedRecipeIds"`

	Ingredients IngredientList `json:"ingredients"`
	Directions  StringList     `json:"directions"`

	ImageURL     string       `json:"imageUrl"`
	ImageURLs    StringList   `json:"imageUrls"`
	HeaderImage  string       `json:"headerImage"`
	StepImages   StringList   `json:"stepImages"`
	StepImageMap StepImageMap `json:"stepImageMap"`

	Source    string `json:"source"`
	SourceURL string `json:"sourceUrl"`

	ColorValue *int64 `json:"colorValue"`

	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
	IsFavorite   bool   `json:"isFavorite"`
	Rating       int    `json:"rating"`
	CookCount    int    `json:"cookCount"`
	LastCookedAt string `json:"lastCookedAt"`
	EditCount    int    `json:"editCount"`
	FirstEditAt  string `json:"firstEditAt"`
	LastEditAt   string `json:"lastEditAt"`

	Glass         string     `json:"glass"`
	Garnish       StringList `json:"garnish"`
	PickleMethod  string     `json:"pickleMethod"`
	ModernistType string     `json:"modernistType"`
	SmokingType   string     `json:"smokingType"`

	Nutrition *NutritionInfo `json:"nutrition"`
	Version   int            `json:"version"`
}

// RecipeFromJSON deserializes an exported recipe file into a Recipe.
//
// Required fields are uuid, name and course; no placeholder is safe for
// identity or classification, so their absence is an error. Everything else
// degrades locally: list fields default to empty, unrecognized sources fall
// back to the official collection, timestamps default to the current time, and
// the feed's placeholder entries in pairsWith/directions are dropped.
func RecipeFromJSON(data []byte) (*Recipe, error) {
	var doc recipeJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode recipe: %w", err)
	}

	for field, value := range map[string]string{
		"uuid":   doc.UUID,
		"name":   doc.Name,
		"course": doc.Course,
	} {
		if value == "" {
			return nil, fmt.Errorf("decode recipe: missing required field %q", field)
		}
	}

	comments := ""
	if doc.Comments != nil {
		comments = *doc.Comments
	} else if doc.Notes != nil {
		comments = *doc.Notes
	}

	now := nowFunc()
	r := &Recipe{
		UUID:        doc.UUID,
		Name:        doc.Name,
		Course:      NormalizeCourse(doc.Course),
		Cuisine:     doc.Cuisine,
		Subcategory: doc.Subcategory,
		Continent:   doc.Continent,
		Country:     doc.Country,

		Serves:   doc.Serves,
		Time:     doc.Time,
		Comments: comments,
		Tags:     emptyIfNil(doc.Tags),

		PairsWith:       dropPlaceholders(doc.PairsWith, pairsWithPlaceholder),
		PairedRecipeIDs: emptyIfNil(doc.PairedRecipeIDs),

		Ingredients: doc.Ingredients,
		Directions:  dropPlaceholders(doc.Directions, directionsPlaceholder),

		ImageURL:     doc.ImageURL,
		ImageURLs:    emptyIfNil(doc.ImageURLs),
		HeaderImage:  doc.HeaderImage,
		StepImages:   emptyIfNil(doc.StepImages),
		StepImageMap: doc.StepImageMap,

		Source:    ParseSource(doc.Source),
		SourceURL: doc.SourceURL,

		ColorValue: doc.ColorValue,

		CreatedAt:  now,
		UpdatedAt:  now,
		IsFavorite: doc.IsFavorite,
		Rating:     doc.Rating,
		CookCount:  doc.CookCount,
		EditCount:  doc.EditCount,

		Glass:         doc.Glass,
		Garnish:       emptyIfNil(doc.Garnish),
		PickleMethod:  doc.PickleMethod,
		ModernistType: doc.ModernistType,
		SmokingType:   doc.SmokingType,

		Nutrition: doc.Nutrition,
		Version:   doc.Version,
	}
	if r.Ingredients == nil {
		r.Ingredients = IngredientList{}
	}
	if r.StepImageMap == nil {
		r.StepImageMap = StepImageMap{}
	}

	if t, err := time.Parse(time.RFC3339, doc.CreatedAt); err == nil {
		r.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, doc.UpdatedAt); err == nil {
		r.UpdatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, doc.LastCookedAt); err == nil {
		r.LastCookedAt = &t
	}
	if t, err := time.Parse(time.RFC3339, doc.FirstEditAt); err == nil {
		r.FirstEditAt = &t
	}
	if t, err := time.Parse(time.RFC3339, doc.LastEditAt); err == nil {
		r.LastEditAt = &t
	}

	return r, nil
}

// ExportJSON serializes the full recipe, personal state included. The field
// names are the wire contract shared with existing exported recipe files.
func (r *Recipe) ExportJSON() ([]byte, error) {
	return json.Marshal(r)
}

// shareableRecipe is the portable projection of a recipe: identity, content,
// media and the origin URL, without the owner's engagement state or local
// provenance. Any personal-state field added to Recipe must be audited against
// this struct.
type shareableRecipe struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Course      string `json:"course"`
	Cuisine     string `json:"cuisine,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	Continent   string `json:"continent,omitempty"`
	Country     string `json:"country,omitempty"`

	Serves   string     `json:"serves,omitempty"`
	Time     string     `json:"time,omitempty"`
	Comments string     `json:"notes,omitempty"`
	Tags     StringList `json:"tags"`

	PairsWith       StringList `json:"pairsWith"`
	PairedRecipeIDs StringList `json:"pairedRecipeIds"`

	Ingredients IngredientList `json:"ingredients"`
	Directions  StringList     `json:"directions"`

	ImageURL     string       `json:"imageUrl,omitempty"`
	ImageURLs    StringList   `json:"imageUrls"`
	HeaderImage  string       `json:"headerImage,omitempty"`
	StepImages   StringList   `json:"stepImages"`
	StepImageMap StepImageMap `json:"stepImageMap"`

	SourceURL string `json:"sourceUrl,omitempty"`

	Glass         string     `json:"glass,omitempty"`
	Garnish       StringList `json:"garnish,omitempty"`
	PickleMethod  string     `json:"pickleMethod,omitempty"`
	ModernistType string     `json:"modernistType,omitempty"`
	SmokingType   string     `json:"smokingType,omitempty"`

	Nutrition *NutritionInfo `json:"nutrition,omitempty"`
	Version   int            `json:"version"`
}

// ShareableJSON serializes the recipe for handing to another user: the same
// shape as ExportJSON minus isFavorite, rating, cookCount, lastCookedAt,
// edit history, createdAt/updatedAt, source and colorValue.
func (r *Recipe) ShareableJSON() ([]byte, error) {
	return json.Marshal(shareableRecipe{
		UUID:        r.UUID,
		Name:        r.Name,
		Course:      r.Course,
		Cuisine:     r.Cuisine,
		Subcategory: r.Subcategory,
		Continent:   r.Continent,
		Country:     r.Country,

		Serves:   r.Serves,
		Time:     r.Time,
		Comments: r.Comments,
		Tags:     r.Tags,

		PairsWith:       r.PairsWith,
		PairedRecipeIDs: r.PairedRecipeIDs,

		Ingredients: r.Ingredients,
		Directions:  r.Directions,

		ImageURL:     r.ImageURL,
		ImageURLs:    r.ImageURLs,
		HeaderImage:  r.HeaderImage,
		StepImages:   r.StepImages,
		StepImageMap: r.StepImageMap,

		SourceURL: r.SourceURL,

		Glass:         r.Glass,
		Garnish:       r.Garnish,
		PickleMethod:  r.PickleMethod,
		ModernistType: r.ModernistType,
		SmokingType:   r.SmokingType,

		Nutrition: r.Nutrition,
		Version:   r.Version,
	})
}

// dropPlaceholders removes empty entries and the given placeholder literal.
// Already-filtered lists pass through unchanged, so filtering is idempotent.
func dropPlaceholders(entries StringList, placeholder string) StringList {
	out := StringList{}
	for _, entry := range entries {
		if entry == "" || entry == placeholder {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func emptyIfNil(l StringList) StringList {
	if l == nil {
		return StringList{}
	}
	return l
}
