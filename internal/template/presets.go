package template

import (
	"fmt"
	"sort"
	"strings"
)

// Preset is a named, ready-made destination template for a common media
// server layout.
type Preset struct {
	Name        string
	Template    string
	Description string
}

var presets = map[string]Preset{
	"jellyfin": {
		Name:        "jellyfin",
		Template:    "{TITLE} ({YEAR}){IMDB_ID|ifexists: [imdbid-%value%]}/{TITLE} ({YEAR}){IMDB_ID|ifexists: [imdbid-%value%]}",
		Description: "Jellyfin layout with an [imdbid-...] tag when the IMDb id is known",
	},
	"plex": {
		Name:        "plex",
		Template:    "{TITLE} ({YEAR})/{TITLE} ({YEAR})",
		Description: "Plex 'Title (Year)' folder and file layout",
	},
	"emby": {
		Name:        "emby",
		Template:    "{TITLE} ({YEAR})/{TITLE} ({YEAR})",
		Description: "Emby layout, identical to the Plex one",
	},
	"minimal": {
		Name:        "minimal",
		Template:    "{TITLE}/{TITLE}",
		Description: "Bare title folder and file",
	},
}

// Presets returns every preset sorted by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ResolveTemplate maps a user-supplied template setting to template
// source text. Three forms are accepted:
//
//   - "preset:NAME" selects a preset and fails for unknown names
//   - a bare preset name ("jellyfin") selects that preset
//   - anything else is used verbatim as template source
func ResolveTemplate(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", fmt.Errorf("destination template cannot be empty")
	}
	lowered := strings.ToLower(candidate)
	if name, ok := strings.CutPrefix(lowered, "preset:"); ok {
		name = strings.TrimSpace(name)
		p, ok := presets[name]
		if !ok {
			return "", fmt.Errorf("unknown template preset %q (available: %s)",
				name, strings.Join(presetNames(), ", "))
		}
		return p.Template, nil
	}
	if p, ok := presets[lowered]; ok {
		return p.Template, nil
	}
	return candidate, nil
}

func presetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
