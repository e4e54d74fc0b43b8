package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// nowFunc supplies construction-time timestamps; tests override it to pin the
// clock.
var nowFunc = time.Now

// pairingExcludedCourses lists the courses whose recipes never take part in the
// pairing UI.
var pairingExcludedCourses = map[string]struct{}{
	"pizzas":     {},
	"sandwiches": {},
	"cellar":     {},
	"cheese":     {},
}

// Recipe is one cooking recipe: classification, ingredients, directions,
// images, provenance and the user's engagement state. The numeric ID is local
// to one database; UUID is the portable identity used by export, import,
// sharing and pairing.
type Recipe struct {
	ID   uint   `gorm:"primarykey" json:"-"`
	UUID string `gorm:"size:36;uniqueIndex;not null" json:"uuid"`

	Name        string `gorm:"size:255;not null;index" json:"name"`
	Course      string `gorm:"size:50;not null;index" json:"course"`
	Cuisine     string `gorm:"size:50;index" json:"cuisine,omitempty"`
	Subcategory string `gorm:"size:50" json:"subcategory,omitempty"`
	Continent   string `gorm:"size:50" json:"continent,omitempty"`
	Country     string `gorm:"size:50" json:"country,omitempty"`

	Serves   string     `gorm:"size:100" json:"serves,omitempty"`
	Time     string     `gorm:"size:100" json:"time,omitempty"`
	Comments string     `gorm:"type:text" json:"notes,omitempty"`
	Tags     StringList `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`

	// PairsWith is the legacy free-text pairing list; PairedRecipeIDs (by
	// uuid) is authoritative. The two are never reconciled.
	PairsWith       StringList `gorm:"type:jsonb;not null;default:'[]'" json:"pairsWith"`
	PairedRecipeIDs StringList `gorm:"type:jsonb;not null;default:'[]'" json:"pairedRecipeIds"`

	Ingredients IngredientList `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Directions  StringList     `gorm:"type:jsonb;not null;default:'[]'" json:"directions"`

	// Three generations of image fields: HeaderImage wins, then ImageURLs,
	// then the legacy single ImageURL.
	ImageURL     string       `gorm:"size:255" json:"imageUrl,omitempty"`
	ImageURLs    StringList   `gorm:"type:jsonb;not null;default:'[]'" json:"imageUrls"`
	HeaderImage  string       `gorm:"size:255" json:"headerImage,omitempty"`
	StepImages   StringList   `gorm:"type:jsonb;not null;default:'[]'" json:"stepImages"`
	StepImageMap StepImageMap `gorm:"type:jsonb;not null;default:'[]'" json:"stepImageMap"`

	Source    Source `gorm:"size:20;not null;default:'memoix'" json:"source"`
	SourceURL string `gorm:"size:255" json:"sourceUrl,omitempty"`

	ColorValue *int64 `json:"colorValue,omitempty"`

	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	IsFavorite   bool       `gorm:"index" json:"isFavorite"`
	Rating       int        `json:"rating"`
	CookCount    int        `json:"cookCount"`
	LastCookedAt *time.Time `json:"lastCookedAt,omitempty"`
	EditCount    int        `json:"editCount,omitempty"`
	FirstEditAt  *time.Time `json:"firstEditAt,omitempty"`
	LastEditAt   *time.Time `json:"lastEditAt,omitempty"`

	// Fields for special recipe types (drinks, pickles, modernist, smoking).
	Glass         string     `gorm:"size:50" json:"glass,omitempty"`
	Garnish       StringList `gorm:"type:jsonb;not null;default:'[]'" json:"garnish,omitempty"`
	PickleMethod  string     `gorm:"size:50" json:"pickleMethod,omitempty"`
	ModernistType string     `gorm:"size:50" json:"modernistType,omitempty"`
	SmokingType   string     `gorm:"size:50" json:"smokingType,omitempty"`

	Nutrition *NutritionInfo `gorm:"type:jsonb" json:"nutrition,omitempty"`

	// Version is carried for sync conflict resolution; no merge logic is
	// applied here.
	Version int `json:"version"`
}

// NewRecipe constructs a user-authored recipe with a fresh uuid and
// construction-time timestamps. The course is normalized to its slug form.
func NewRecipe(name, course string) *Recipe {
	now := nowFunc()
	return &Recipe{
		UUID:      uuid.New().String(),
		Name:      name,
		Course:    NormalizeCourse(course),
		Source:    SourcePersonal,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SupportsPairing reports whether this recipe may appear in the pairing UI.
// Derived from the course only; it does not constrain PairedRecipeIDs.
func (r *Recipe) SupportsPairing() bool {
	_, excluded := pairingExcludedCourses[strings.ToLower(r.Course)]
	return !excluded
}

// StepImageIndex returns the step-image list index associated with a direction
// step, if any.
func (r *Recipe) StepImageIndex(step int) (int, bool) {
	return r.StepImageMap.Get(step)
}

// StepImage resolves the photo for a direction step. Associations pointing
// outside the step-image list report no image rather than an error.
func (r *Recipe) StepImage(step int) (string, bool) {
	idx, ok := r.StepImageMap.Get(step)
	if !ok || idx < 0 || idx >= len(r.StepImages) {
		return "", false
	}
	return r.StepImages[idx], true
}

// SetStepImage associates a direction step with a step-image index. A step
// holds at most one association; the last write wins.
func (r *Recipe) SetStepImage(step, image int) {
	r.StepImageMap.Set(step, image)
}

// RemoveStepImage drops the association for a direction step.
func (r *Recipe) RemoveStepImage(step int) {
	r.StepImageMap.Remove(step)
}

// FirstImage returns the recipe's primary image: the header image when set,
// else the first of the new multi-image list, else the legacy single image.
// Empty means the recipe has no primary image.
func (r *Recipe) FirstImage() string {
	if r.HeaderImage != "" {
		return r.HeaderImage
	}
	if len(r.ImageURLs) > 0 {
		return r.ImageURLs[0]
	}
	return r.ImageURL
}

// AllImages returns every image of the recipe: exactly one of the three
// primary sources (header image, multi-image list, legacy single image)
// followed by the step photos.
func (r *Recipe) AllImages() []string {
	var images []string
	switch {
	case r.HeaderImage != "":
		images = append(images, r.HeaderImage)
	case len(r.ImageURLs) > 0:
		images = append(images, r.ImageURLs...)
	case r.ImageURL != "":
		images = append(images, r.ImageURL)
	}
	return append(images, r.StepImages...)
}

// HasImages reports whether the recipe has any image at all.
func (r *Recipe) HasImages() bool {
	return len(r.AllImages()) > 0
}
