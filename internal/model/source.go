package model

// Source is the provenance of a recipe.
type Source string

const (
	// SourceMemoix marks recipes from the official Memoix collection.
	SourceMemoix Source = "memoix"
	// SourcePersonal marks recipes authored by the user.
	SourcePersonal Source = "personal"
	// SourceImported marks recipes imported from another user's export.
	SourceImported Source = "imported"
	// SourceOCR marks recipes scanned from paper.
	SourceOCR Source = "ocr"
	// SourceURL marks recipes pulled from a web page.
	SourceURL Source = "url"
)

// ParseSource resolves a source name from the wire, falling back to the
// official collection for unrecognized or absent values.
func ParseSource(s string) Source {
	switch Source(s) {
	case SourceMemoix, SourcePersonal, SourceImported, SourceOCR, SourceURL:
		return Source(s)
	default:
		return SourceMemoix
	}
}
