package scan

import (
	"io/fs"
	"path/filepath"
	"strings"
)

var videoExtensions = map[string]bool{
	".mkv": true,
	".mp4": true,
	".avi": true,
}

// IsVideo reports whether a path has a supported video extension.
func IsVideo(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// extensionSet builds a lookup from a configured extension list.
// Entries are lowercased and get a leading dot when missing; an empty
// list selects the built-in defaults.
func extensionSet(extensions []string) map[string]bool {
	if len(extensions) == 0 {
		return videoExtensions
	}
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

// Discover expands the --src inputs into a deduplicated, ordered list
// of video files. Each input may be:
//
//   - a directory, walked recursively
//   - a glob pattern (useful when the argument was quoted and the
//     shell did not expand it)
//   - an individual file
//
// extensions overrides the built-in video extension list; pass nil to
// keep the defaults. Inputs that match nothing are skipped silently; an
// empty result is the caller's problem to report.
func Discover(inputs []string, extensions []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	exts := extensionSet(extensions)

	add := func(path string) {
		if !seen[path] && exts[strings.ToLower(filepath.Ext(path))] {
			seen[path] = true
			out = append(out, path)
		}
	}

	for _, input := range inputs {
		if strings.ContainsAny(input, "*?[") {
			matches, err := filepath.Glob(input)
			if err != nil {
				return nil, err
			}
			for _, match := range matches {
				if err := walkPath(match, add); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err := walkPath(input, add); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// walkPath adds path itself when it is a video file, or every video
// below it when it is a directory. Missing paths are ignored.
func walkPath(path string, add func(string)) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Missing or unreadable inputs are skipped, not fatal.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		add(p)
		return nil
	})
}
