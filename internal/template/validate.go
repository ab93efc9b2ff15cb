package template

import (
	"regexp"
	"strings"
)

var drivePattern = regexp.MustCompile(`^[A-Za-z]:[/\\]`)

// ValidatePath checks a rendered destination path against the traversal
// rules. The path must be relative and every segment must be a plain
// directory or file name: no '.', no '..', nothing blank after trimming.
// Backslashes count as separators so Windows-style traversal is caught
// on any platform. An entirely empty render is allowed; a template whose
// placeholders all evaluate to nothing names the destination root
// itself, which the caller may still refuse.
func ValidatePath(p string) error {
	if p == "" {
		return nil
	}
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) || drivePattern.MatchString(p) {
		return &Error{Kind: ErrPathTraversal, Detail: "rendered path is absolute: " + p}
	}
	normalized := strings.ReplaceAll(p, `\`, "/")
	for _, seg := range strings.Split(normalized, "/") {
		trimmed := strings.TrimSpace(seg)
		if trimmed == "" {
			return &Error{Kind: ErrPathTraversal, Detail: "rendered path has an empty segment: " + p}
		}
		if trimmed == "." || trimmed == ".." {
			return &Error{Kind: ErrPathTraversal, Detail: "rendered path escapes the destination root: " + p}
		}
	}
	return nil
}
