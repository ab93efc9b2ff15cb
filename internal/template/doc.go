// Package template implements the destination-path template language
// used to build the renamed path of a movie file.
//
// A template is plain text with brace-delimited placeholders:
//
//	{TITLE} ({YEAR})/{TITLE} ({YEAR})
//
// Each placeholder names a metadata field and may pipe it through a
// chain of filters:
//
//	{TITLE|upper}
//	{IMDB_ID|ifexists: [imdbid-%value%]}
//	{COLLECTION_NAME|fallback:${TITLE}}
//
// # Compilation and Rendering
//
// Compile parses the source once and validates every field name, filter
// name and filter argument. Render then substitutes values from a
// Context:
//
//	tpl, err := template.Compile("{TITLE} ({YEAR})/{TITLE} ({YEAR})")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctx := template.NewContext()
//	ctx.Set(template.FieldTitle, "Inception")
//	ctx.Set(template.FieldYear, "2010")
//	path, err := tpl.Render(ctx)
//	// path == "Inception (2010)/Inception (2010)"
//
// Structural problems are compile errors; the only render-time failure
// is path traversal, reported when substituted values would escape the
// destination root.
//
// # Filters
//
// The filter registry is closed: upper, lower, title, capitalize,
// initials, char, slice, stem, fallback, replace, trim (alias strip),
// and the conditionals ifexists, ifcontains, ifeq, ifgt, ifge, iflt and
// ifle. Conditional branch text may splice the tested value with
// %value% and other fields with ${FIELD}.
//
// # Shorthand
//
// {TITLE[0]} is shorthand for {TITLE|char:0} and {TITLE.upper} for
// {TITLE|upper}; both forms compose with further piped filters.
//
// # Presets
//
// ResolveTemplate accepts preset names (jellyfin, plex, emby, minimal)
// or "preset:NAME" in place of raw template source, so configuration
// files can pick a media server layout by name.
package template
