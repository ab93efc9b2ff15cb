package model

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SanitizeName makes a metadata string safe to use as a file or folder
// name component.
//
// The following transformations are applied:
//   - Unicode is normalized to NFC so composed and decomposed forms of
//     the same title produce the same path
//   - Characters invalid on Windows (<>:"/\|?*) are replaced with " -"
//   - Surrounding whitespace is removed
//   - An empty result becomes "Unknown"
//
// Example:
//
//	SanitizeName("Face/Off")      // "Face -Off"
//	SanitizeName("Alien: Romulus") // "Alien - Romulus"
func SanitizeName(name string) string {
	sanitized := norm.NFC.String(name)
	for _, ch := range []string{"<", ">", ":", `"`, "/", `\`, "|", "?", "*"} {
		sanitized = strings.ReplaceAll(sanitized, ch, " -")
	}
	sanitized = strings.TrimSpace(sanitized)
	if sanitized == "" {
		return "Unknown"
	}
	return sanitized
}

// TMDB collection names usually carry a localized "collection" suffix,
// sometimes with an article ("la colección"). We strip it and re-append
// the suffix for the configured language so folder names stay uniform.
const collectionDesignator = `(?:collection|colecci[oó]n|sammlung|collezione|cole[cç][aã]o)`
const collectionArticle = `(?:the|a|an|la|el|los|las|le|les|il|lo|i|gli|die|der|das|o|os|as)`

var (
	collectionSuffixParens = regexp.MustCompile(`(?i)\s*[\(\[]\s*(?:` + collectionArticle + `\s+)?` + collectionDesignator + `\s*[\)\]]\s*$`)
	collectionSuffixTail   = regexp.MustCompile(`(?i)(?:\s*[-–—:]+\s*|\s+)(?:` + collectionArticle + `\s+)?` + collectionDesignator + `\s*$`)
)

// StripCollectionDesignator removes a trailing "Collection"/"Colección"/
// "Sammlung"/... designator from a TMDB collection name. A name that is
// nothing but a designator is returned unchanged rather than emptied.
func StripCollectionDesignator(name string) string {
	s := strings.TrimSpace(name)
	if s == "" {
		return s
	}
	out := strings.TrimSpace(collectionSuffixParens.ReplaceAllString(s, ""))
	out = strings.TrimSpace(collectionSuffixTail.ReplaceAllString(out, ""))
	out = strings.TrimSpace(strings.TrimRight(out, "-"))
	if out == "" {
		return s
	}
	return out
}

// CollectionSuffix returns the translated " - Collection" suffix for a
// language code.
func CollectionSuffix(lang string) string {
	switch lang {
	case "es":
		return " - Colección"
	case "de":
		return " - Sammlung"
	case "it":
		return " - Collezione"
	default:
		return " - Collection"
	}
}

// DisplayCollectionName returns the collection folder name for the
// movie's language: the designator-stripped TMDB name plus the
// localized suffix. Empty when the movie has no collection.
func (m *Movie) DisplayCollectionName() string {
	if m.CollectionName == "" {
		return ""
	}
	base := StripCollectionDesignator(SanitizeName(m.CollectionName))
	return base + CollectionSuffix(m.Language)
}
