package template

import (
	"sort"
	"strings"
)

// Field names usable in placeholders and ${...} references. Names are
// case-insensitive in template source; the canonical form is upper case.
const (
	FieldTitle         = "TITLE"
	FieldOriginalTitle = "ORIGINAL_TITLE"
	FieldLocalFilename = "LOCAL_FILENAME"
	FieldYear          = "YEAR"
	FieldReleaseDate   = "RELEASE_DATE"
	FieldTMDBID        = "TMDB_ID"
	FieldCollectionID  = "COLLECTION_ID"
	FieldIMDBID        = "IMDB_ID"
	FieldIMDB          = "IMDB"
	FieldCollection    = "COLLECTION_NAME"
	FieldVF            = "VF"
	FieldSource        = "SOURCE"
	FieldHDR           = "HDR"
	FieldVC            = "VC"
	FieldAC            = "AC"
	FieldFPS           = "FPS"
	FieldBitDepth      = "BIT_DEPTH"
	FieldLang          = "LANG"
	FieldRegion        = "REGION"
)

var fieldDescriptions = map[string]string{
	FieldTitle:         "Localized movie title",
	FieldOriginalTitle: "Original (untranslated) movie title",
	FieldLocalFilename: "Source file name without its extension",
	FieldYear:          "Release year",
	FieldReleaseDate:   "Full release date (YYYY-MM-DD)",
	FieldTMDBID:        "TMDB movie identifier",
	FieldCollectionID:  "TMDB collection identifier",
	FieldIMDBID:        "IMDb identifier including the tt prefix",
	FieldIMDB:          "IMDb identifier without the tt prefix",
	FieldCollection:    "Localized collection (saga) name",
	FieldVF:            "Video format / resolution class (2160p, 1080p...)",
	FieldSource:        "Media source (BluRay, WEB-DL, Remux...)",
	FieldHDR:           "HDR label (HDR10, DV, HLG...)",
	FieldVC:            "Video codec label",
	FieldAC:            "Audio codec label",
	FieldFPS:           "Frame rate, rounded",
	FieldBitDepth:      "Video bit depth",
	FieldLang:          "Metadata language code",
	FieldRegion:        "Metadata region code",
}

// KnownField reports whether name (after normalization) is a usable
// template field.
func KnownField(name string) bool {
	_, ok := fieldDescriptions[NormalizeFieldName(name)]
	return ok
}

// NormalizeFieldName returns the canonical form of a field name: trimmed
// and upper-cased.
func NormalizeFieldName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Fields returns the canonical names of every template field, sorted.
func Fields() []string {
	names := make([]string, 0, len(fieldDescriptions))
	for name := range fieldDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FieldDescription returns the one-line description of a field, or an
// empty string for unknown names.
func FieldDescription(name string) string {
	return fieldDescriptions[NormalizeFieldName(name)]
}

// Context supplies field values for a single render. A field may be
// absent (never set) or present with any string value, including empty.
// Filters such as fallback and ifexists treat absent and empty alike.
//
// The zero value is not usable; call NewContext.
type Context struct {
	values map[string]string
}

// NewContext returns an empty render context.
func NewContext() *Context {
	return &Context{values: make(map[string]string)}
}

// Set assigns a field value. The name is normalized; setting an unknown
// field is a no-op so callers can feed probe results without filtering.
func (c *Context) Set(name, value string) {
	key := NormalizeFieldName(name)
	if _, ok := fieldDescriptions[key]; !ok {
		return
	}
	c.values[key] = value
}

// Lookup returns the value of a field and whether it was ever set.
func (c *Context) Lookup(name string) (string, bool) {
	v, ok := c.values[NormalizeFieldName(name)]
	return v, ok
}
