package model

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/movietools/movie-renamer/internal/template"
)

// Item is one media file being renamed: its source location plus the
// metadata resolved for it. Media may be nil when probing failed or was
// disabled; the corresponding template fields are then absent.
type Item struct {
	// SourcePath is the absolute path of the file being renamed.
	SourcePath string

	// Movie is the resolved catalog metadata. Required.
	Movie *Movie

	// Media is the technical probe result, nil when unavailable.
	Media *MediaInfo
}

// Extension returns the source file's extension including the dot.
func (it *Item) Extension() string {
	return filepath.Ext(it.SourcePath)
}

// LocalFilename returns the source file name without its extension.
func (it *Item) LocalFilename() string {
	base := filepath.Base(it.SourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TemplateContext builds the render context for the destination
// template. Fields with no known value are left absent, not set to "",
// so template conditionals such as ifexists and fallback behave as
// documented. String values that end up in the path are sanitized here;
// the engine rejects separators in values, it does not rewrite them.
func (it *Item) TemplateContext() *template.Context {
	ctx := template.NewContext()
	m := it.Movie

	setNonEmpty(ctx, template.FieldTitle, SanitizeName(m.Title))
	setNonEmpty(ctx, template.FieldOriginalTitle, sanitizeIfSet(m.OriginalTitle))
	setNonEmpty(ctx, template.FieldLocalFilename, SanitizeName(it.LocalFilename()))
	setNonEmpty(ctx, template.FieldYear, m.Year())
	setNonEmpty(ctx, template.FieldReleaseDate, m.ReleaseDate)
	setNonEmpty(ctx, template.FieldIMDBID, m.IMDBID)
	setNonEmpty(ctx, template.FieldIMDB, m.IMDBDigits())
	setNonEmpty(ctx, template.FieldLang, m.Language)
	setNonEmpty(ctx, template.FieldRegion, m.Region)
	if m.TMDBID != 0 {
		ctx.Set(template.FieldTMDBID, strconv.Itoa(m.TMDBID))
	}
	if m.InCollection() {
		ctx.Set(template.FieldCollectionID, strconv.Itoa(m.CollectionID))
		setNonEmpty(ctx, template.FieldCollection, m.DisplayCollectionName())
	}

	if it.Media != nil {
		setNonEmpty(ctx, template.FieldVF, it.Media.Resolution())
		setNonEmpty(ctx, template.FieldSource, it.Media.Source)
		setNonEmpty(ctx, template.FieldHDR, it.Media.HDR)
		setNonEmpty(ctx, template.FieldVC, it.Media.VideoCodec)
		setNonEmpty(ctx, template.FieldAC, it.Media.AudioCodec)
		setNonEmpty(ctx, template.FieldFPS, it.Media.FPS())
		if it.Media.BitDepth > 0 {
			ctx.Set(template.FieldBitDepth, strconv.Itoa(it.Media.BitDepth))
		}
	}

	return ctx
}

func setNonEmpty(ctx *template.Context, field, value string) {
	if value != "" {
		ctx.Set(field, value)
	}
}

// sanitizeIfSet sanitizes a value but keeps "absent" absent: an empty
// input stays empty instead of becoming "Unknown".
func sanitizeIfSet(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return SanitizeName(value)
}
