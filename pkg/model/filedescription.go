package model

import (
	"strings"

	"golang.org/x/text/language"
)

// FileDescription identifies a single file within a project: the language it
// belongs to and its logical, forward-slash path relative to that language's
// root, without a .dlb/.json extension. It is immutable and comparable, so
// it can be used directly as a map key.
type FileDescription struct {
	LanguageCode string
	FilePath     string
}

// NewFileDescription canonicalizes languageCode via golang.org/x/text/language
// (so "EN" and "en" collide) and normalizes filePath to use forward slashes
// with no leading slash and no .dlb/.json extension.
func NewFileDescription(languageCode, filePath string) FileDescription {
	return FileDescription{
		LanguageCode: CanonicalLanguageCode(languageCode),
		FilePath:     normalizeLogicalPath(filePath),
	}
}

// CanonicalLanguageCode normalizes a language code the way the project
// linker must so that declared codes and directory-inferred codes compare
// equal regardless of casing or tag formatting. Codes that golang.org/x/text
// cannot parse as a BCP 47 tag are lower-cased verbatim instead of being
// rejected, since DialogueBranch projects are free to use non-standard
// short codes (e.g. "rp" for a constructed language).
func CanonicalLanguageCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return code
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}
	return tag.String()
}

func normalizeLogicalPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "/")
	p = strings.TrimSuffix(p, ".dlb")
	p = strings.TrimSuffix(p, ".json")
	return p
}
