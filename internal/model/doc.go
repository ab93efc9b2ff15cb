// Package model defines the domain types for the movie renamer.
//
// The central types are:
//
//   - Movie: catalog metadata (titles, dates, identifiers, collection)
//   - MediaInfo: technical characteristics from the probe layer
//   - Item: one file being renamed, pairing a source path with its
//     Movie and MediaInfo
//
// # Template Context
//
// Item.TemplateContext assembles the render context consumed by the
// template engine, mapping the domain types onto the template field set
// and sanitizing anything that could end up in a path:
//
//	item := &model.Item{SourcePath: "/downloads/inception.mkv", Movie: movie, Media: info}
//	path, err := tpl.Render(item.TemplateContext())
//
// # Naming Helpers
//
// SanitizeName, StripCollectionDesignator and CollectionSuffix implement
// the project's folder-naming conventions: Windows-safe characters, NFC
// normalization, and uniform localized " - Collection" suffixes on
// collection folders regardless of how TMDB spells them.
package model
