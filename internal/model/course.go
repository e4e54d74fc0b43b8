package model

import (
	"regexp"
	"strings"
)

// coursePrefix matches a leading "recipes" token left over from the source feed's
// sheet names (e.g. "Recipes Mains").
var coursePrefix = regexp.MustCompile(`(?i)^recipes\b\s*`)

// courseSynonyms folds feed spellings into the canonical course slugs.
var courseSynonyms = map[string]string{
	"soups":      "soup",
	"salads":     "salad",
	"not meat":   "vegn",
	"not-meat":   "vegn",
	"vegetarian": "vegn",
}

// NormalizeCourse converts a raw course name into the stable slug used for
// indexing and filtering: strips a leading "recipes" token, lowercases, then
// applies the synonym table. The result is idempotent.
func NormalizeCourse(raw string) string {
	s := strings.TrimSpace(raw)
	s = coursePrefix.ReplaceAllString(s, "")
	s = strings.ToLower(strings.TrimSpace(s))
	if slug, ok := courseSynonyms[s]; ok {
		return slug
	}
	return s
}
