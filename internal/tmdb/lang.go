package tmdb

import (
	"regexp"
	"strings"
)

// langRegionPattern matches combined forms like "es-ES", "es_MX" or
// "pt-BR": a 2-3 letter language part and a 2 letter region part.
var langRegionPattern = regexp.MustCompile(`^([A-Za-z]{2,3})[-_]?([A-Za-z]{2})$`)

// langAliases maps common language names and ISO 639-2 codes to the
// ISO 639-1 codes TMDB expects.
var langAliases = map[string]string{
	"es": "es", "spa": "es", "spanish": "es", "español": "es",
	"en": "en", "eng": "en", "english": "en",
	"fr": "fr", "fre": "fr", "french": "fr", "francés": "fr",
	"de": "de", "ger": "de", "german": "de", "deutsch": "de",
	"it": "it", "ita": "it", "italian": "it", "italiano": "it",
	"pt": "pt", "por": "pt", "portuguese": "pt", "portugués": "pt",
	"ja": "ja", "jpn": "ja", "japanese": "ja",
	"zh": "zh", "chi": "zh", "chinese": "zh",
	"ko": "ko", "kor": "ko", "korean": "ko",
	"ru": "ru", "rus": "ru", "russian": "ru",
	"ar": "ar", "ara": "ar", "arabic": "ar",
	"hi": "hi", "hin": "hi", "hindi": "hi",
	"nl": "nl", "dut": "nl", "nld": "nl", "dutch": "nl",
}

// likelyRegions maps a language to the region its titles most likely
// come from, used when the user gives a language without a region.
// Derived from CLDR likely-subtags data for the languages in
// langAliases.
var likelyRegions = map[string]string{
	"es": "ES",
	"en": "US",
	"fr": "FR",
	"de": "DE",
	"it": "IT",
	"pt": "BR",
	"ja": "JP",
	"zh": "CN",
	"ko": "KR",
	"ru": "RU",
	"ar": "EG",
	"hi": "IN",
	"nl": "NL",
}

// NormalizeLanguage parses a --lang style input into an ISO 639-1
// language code and an optional ISO 3166-1 region.
//
// Accepted inputs:
//   - language only: "es", "it", "bg"
//   - language + region: "es-ES", "es_MX", "pt-BR"
//   - common aliases for language-only inputs: "spa", "español", "eng"
//
// An empty input defaults to Spanish with no region. Unknown two-letter
// codes pass through untouched; anything longer that is not an alias
// falls back to "es".
//
// Example:
//
//	lang, region := tmdb.NormalizeLanguage("es-MX") // "es", "MX"
//	lang, region = tmdb.NormalizeLanguage("spanish") // "es", ""
func NormalizeLanguage(input string) (lang, region string) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return "es", ""
	}

	if m := langRegionPattern.FindStringSubmatch(raw); m != nil {
		return aliasToLangCode(strings.ToLower(m[1])), strings.ToUpper(m[2])
	}
	return aliasToLangCode(strings.ToLower(raw)), ""
}

// DefaultRegion returns a likely region for a language, or "" when no
// sensible default exists. TMDB separates language and region in its
// translations and alternative_titles endpoints, so region-aware title
// selection needs one even when the user only gave a language.
func DefaultRegion(lang string) string {
	return likelyRegions[lang]
}

func aliasToLangCode(part string) string {
	if code, ok := langAliases[part]; ok {
		return code
	}
	if len(part) == 2 {
		return part
	}
	return "es"
}
