package template

import (
	"regexp"
	"strconv"
	"strings"
)

// fieldRef is a compiled ${FIELD} or ${FIELD[N]} reference. References
// resolve against the render context; an absent field yields an empty
// string.
type fieldRef struct {
	field string
	index *int
}

func (r *fieldRef) resolve(ctx *Context) string {
	s, _ := ctx.Lookup(r.field)
	if r.index != nil {
		return charAt(s, *r.index)
	}
	return s
}

var fieldTokenPattern = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*(?:\[\s*(-?\d+)\s*\])?\s*$`)

// parseFieldRef compiles a bare field token such as "TITLE" or
// "LOCAL_FILENAME[-1]". It returns nil when the token is not even
// shaped like a field reference; a well-shaped token naming an unknown
// field is a compile error.
func parseFieldRef(token string) (*fieldRef, *Error) {
	m := fieldTokenPattern.FindStringSubmatch(token)
	if m == nil {
		return nil, nil
	}
	name := NormalizeFieldName(m[1])
	if !KnownField(name) {
		return nil, compileErr(ErrUnknownField, "unknown template field %q", m[1])
	}
	ref := &fieldRef{field: name}
	if m[2] != "" {
		idx, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, compileErr(ErrInvalidFilterArgument, "invalid index in field reference %q", token)
		}
		ref.index = &idx
	}
	return ref, nil
}

type chunkKind int

const (
	chunkLiteral chunkKind = iota
	chunkValue             // %value% - the pre-filter value
	chunkRef               // ${FIELD} or ${FIELD[N]}
)

type ruleChunk struct {
	kind chunkKind
	text string
	ref  *fieldRef
}

// ruleText is the compiled THEN/ELSE text of a conditional filter (or a
// fallback target). %value% splices the value the filter received and
// ${FIELD} splices another context field; everything else is literal.
type ruleText struct {
	chunks []ruleChunk
}

func (rt *ruleText) expand(current string, ctx *Context) string {
	var b strings.Builder
	for _, c := range rt.chunks {
		switch c.kind {
		case chunkLiteral:
			b.WriteString(c.text)
		case chunkValue:
			b.WriteString(current)
		case chunkRef:
			b.WriteString(c.ref.resolve(ctx))
		}
	}
	return b.String()
}

var (
	valueTokenPattern  = regexp.MustCompile(`(?i)%\s*value\s*%`)
	refTokenPattern    = regexp.MustCompile(`\$\{([^}]*)\}`)
	legacyRefPattern   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	valueRefDisallowed = regexp.MustCompile(`(?i)^\s*value\s*$`)
)

// compileRuleText compiles conditional branch text. It rejects the two
// constructs the ${...} syntax replaced: ${VALUE} (use %value%) and
// legacy bare $FIELD references. Unknown fields inside ${...} fail here,
// at compile time, rather than rendering as empty strings.
func compileRuleText(raw string) (*ruleText, *Error) {
	rt := &ruleText{}
	rest := raw
	for rest != "" {
		valueLoc := valueTokenPattern.FindStringIndex(rest)
		refLoc := refTokenPattern.FindStringSubmatchIndex(rest)
		if valueLoc == nil && refLoc == nil {
			break
		}

		loc, isValue := valueLoc, true
		if loc == nil || (refLoc != nil && refLoc[0] < loc[0]) {
			loc, isValue = refLoc[:2], false
		}

		if loc[0] > 0 {
			if err := checkLegacyRefs(rest[:loc[0]]); err != nil {
				return nil, err
			}
			rt.chunks = append(rt.chunks, ruleChunk{kind: chunkLiteral, text: rest[:loc[0]]})
		}
		if isValue {
			rt.chunks = append(rt.chunks, ruleChunk{kind: chunkValue})
			rest = rest[loc[1]:]
			continue
		}
		inner := rest[refLoc[2]:refLoc[3]]
		if valueRefDisallowed.MatchString(inner) {
			return nil, compileErr(ErrInvalidFilterArgument,
				"${VALUE} is not a field reference; use %%value%% for the current value")
		}
		ref, err := parseFieldRef(inner)
		if err != nil {
			return nil, err
		}
		if ref == nil {
			return nil, compileErr(ErrInvalidFilterArgument, "invalid field reference ${%s}", inner)
		}
		rt.chunks = append(rt.chunks, ruleChunk{kind: chunkRef, ref: ref})
		rest = rest[refLoc[1]:]
	}
	if rest != "" {
		if err := checkLegacyRefs(rest); err != nil {
			return nil, err
		}
		rt.chunks = append(rt.chunks, ruleChunk{kind: chunkLiteral, text: rest})
	}
	return rt, nil
}

// checkLegacyRefs rejects bare $FIELD syntax in literal spans. The old
// form was ambiguous against literal dollar amounts and is a hard error
// so templates fail loudly instead of emitting the raw text.
func checkLegacyRefs(literal string) *Error {
	for _, m := range legacyRefPattern.FindAllStringSubmatch(literal, -1) {
		if KnownField(m[1]) || strings.EqualFold(m[1], "VALUE") {
			return compileErr(ErrInvalidFilterArgument,
				"legacy reference $%s is not supported; write ${%s}", m[1], NormalizeFieldName(m[1]))
		}
	}
	return nil
}
