package template

import (
	"strconv"
	"strings"
)

// Template is a compiled destination-path template. Compilation resolves
// every field name, filter name and filter argument once; Render then
// only substitutes values. A Template is immutable and safe for
// concurrent use.
type Template struct {
	source   string
	segments []segment
}

// Source returns the template text the Template was compiled from.
func (t *Template) Source() string {
	return t.source
}

type segment struct {
	literal     string
	placeholder *placeholder
}

type placeholder struct {
	source  string // inner text, for error reporting
	field   string
	filters []*filterCall
}

// Compile parses a destination template such as
//
//	{TITLE} ({YEAR})/{TITLE} ({YEAR}){IMDB_ID|ifexists: [imdbid-%value%]}
//
// and returns the compiled form. All structural errors are reported
// here: unterminated or nested braces, unknown fields, unknown filters,
// wrong argument counts and malformed arguments. Render cannot fail for
// any of those reasons afterwards.
func Compile(src string) (*Template, error) {
	t := &Template{source: src}
	var lit strings.Builder
	i := 0
	for i < len(src) {
		c := src[i]
		if c != '{' {
			lit.WriteByte(c)
			i++
			continue
		}
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String()})
			lit.Reset()
		}
		end, err := scanPlaceholder(src, i)
		if err != nil {
			return nil, err
		}
		inner := src[i+1 : end]
		ph, perr := compilePlaceholder(inner)
		if perr != nil {
			if perr.Placeholder == "" {
				perr.Placeholder = strings.TrimSpace(inner)
			}
			return nil, perr
		}
		t.segments = append(t.segments, segment{placeholder: ph})
		i = end + 1
	}
	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{literal: lit.String()})
	}
	return t, nil
}

// scanPlaceholder finds the '}' closing the placeholder opened at
// src[open]. The only brace pair allowed inside a placeholder is a
// ${...} field reference; any other '{' is a structural error.
func scanPlaceholder(src string, open int) (int, *Error) {
	depth := 0
	for j := open + 1; j < len(src); j++ {
		switch src[j] {
		case '{':
			if src[j-1] == '$' {
				depth++
				continue
			}
			return 0, compileErr(ErrUnterminatedPlaceholder,
				"nested '{' inside placeholder starting at offset %d", open)
		case '}':
			if depth > 0 {
				depth--
				continue
			}
			return j, nil
		}
	}
	return 0, compileErr(ErrUnterminatedPlaceholder,
		"unclosed '{' at offset %d", open)
}

// splitOutsideRefs splits on sep, ignoring separators inside ${...}
// references so that e.g. fallback:${TITLE} keeps its argument intact.
func splitOutsideRefs(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if i > 0 && s[i-1] == '$' {
				depth++
			}
		case '}':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}

func compilePlaceholder(inner string) (*placeholder, *Error) {
	pipeParts := splitOutsideRefs(inner, '|')
	base := strings.TrimSpace(pipeParts[0])
	if base == "" {
		return nil, compileErr(ErrUnknownField, "placeholder has no field name")
	}

	// The base may carry dotted shorthand: {TITLE.upper} desugars to
	// {TITLE|upper}, and {TITLE[0]} to {TITLE|char:0}.
	var dotted []string
	for _, p := range strings.Split(base, ".") {
		if strings.TrimSpace(p) != "" {
			dotted = append(dotted, strings.TrimSpace(p))
		}
	}
	if len(dotted) == 0 {
		return nil, compileErr(ErrUnknownField, "placeholder has no field name")
	}

	ref, err := parseFieldRef(dotted[0])
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, compileErr(ErrUnknownField, "invalid field token %q", dotted[0])
	}

	ph := &placeholder{source: strings.TrimSpace(inner), field: ref.field}
	if ref.index != nil {
		ph.filters = append(ph.filters, &filterCall{spec: filterSpecs["char"], index: *ref.index})
	}
	for _, token := range dotted[1:] {
		fc, err := compileFilter(token)
		if err != nil {
			return nil, err
		}
		ph.filters = append(ph.filters, fc)
	}
	for _, raw := range pipeParts[1:] {
		token := strings.TrimLeft(raw, " \t")
		if strings.TrimSpace(token) == "" {
			return nil, compileErr(ErrUnknownFilter, "empty filter in chain")
		}
		fc, err := compileFilter(token)
		if err != nil {
			return nil, err
		}
		ph.filters = append(ph.filters, fc)
	}
	return ph, nil
}

func compileFilter(token string) (*filterCall, *Error) {
	parts := splitOutsideRefs(token, ':')
	name := parts[0]
	spec := lookupFilter(name)
	if spec == nil {
		return nil, compileErr(ErrUnknownFilter, "unknown filter %q", strings.TrimSpace(name))
	}
	args := parts[1:]
	if len(args) < spec.minArgs {
		return nil, arityErr(spec, len(args))
	}
	if spec.maxArgs >= 0 && len(args) > spec.maxArgs {
		return nil, arityErr(spec, len(args))
	}

	fc := &filterCall{spec: spec}
	switch spec.name {
	case "char":
		idx, err := parseIndexArg(spec, args[0])
		if err != nil {
			return nil, err
		}
		fc.index = idx
	case "slice":
		start, err := parseBoundArg(spec, args[0])
		if err != nil {
			return nil, err
		}
		fc.start = start
		if len(args) == 2 {
			end, err := parseBoundArg(spec, args[1])
			if err != nil {
				return nil, err
			}
			fc.end = end
		}
	case "fallback":
		raw := strings.TrimSpace(strings.Join(args, ":"))
		if strings.HasPrefix(raw, "${") && strings.HasSuffix(raw, "}") {
			ref, err := parseFieldRef(raw[2 : len(raw)-1])
			if err != nil {
				return nil, err
			}
			if ref == nil {
				return nil, compileErr(ErrInvalidFilterArgument, "invalid field reference %s", raw)
			}
			fc.ref = ref
		} else {
			if err := checkLegacyRefs(raw); err != nil {
				return nil, err
			}
			fc.literal = raw
		}
	case "replace":
		fc.oldText = args[0]
		fc.newText = strings.Join(args[1:], ":")
	case "ifexists":
		var thenRaw, elseRaw string
		if len(args) > 0 {
			thenRaw = args[0]
		}
		if len(args) > 1 {
			elseRaw = strings.Join(args[1:], ":")
		}
		if err := fc.compileBranches(thenRaw, elseRaw); err != nil {
			return nil, err
		}
	case "ifcontains", "ifeq", "ifgt", "ifge", "iflt", "ifle":
		fc.operand = args[0]
		thenRaw := args[1]
		var elseRaw string
		if len(args) > 2 {
			elseRaw = strings.Join(args[2:], ":")
		}
		if err := fc.compileBranches(thenRaw, elseRaw); err != nil {
			return nil, err
		}
	}
	return fc, nil
}

func (f *filterCall) compileBranches(thenRaw, elseRaw string) *Error {
	var err *Error
	f.thenText, err = compileRuleText(thenRaw)
	if err != nil {
		return err
	}
	f.elseText, err = compileRuleText(elseRaw)
	return err
}

func arityErr(spec *filterSpec, got int) *Error {
	return compileErr(ErrInvalidFilterArity,
		"filter %q called with %d argument(s); usage: %s", spec.name, got, spec.usage)
}

func parseIndexArg(spec *filterSpec, raw string) (int, *Error) {
	idx, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, compileErr(ErrInvalidFilterArgument,
			"filter %q needs an integer index, got %q", spec.name, raw)
	}
	return idx, nil
}

// parseBoundArg parses one slice bound; an empty argument leaves the
// bound open, as in slice:1: or slice::-4.
func parseBoundArg(spec *filterSpec, raw string) (*int, *Error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	idx, err := strconv.Atoi(s)
	if err != nil {
		return nil, compileErr(ErrInvalidFilterArgument,
			"filter %q needs integer bounds, got %q", spec.name, raw)
	}
	return &idx, nil
}
