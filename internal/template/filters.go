package template

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// filterSpec declares one registry entry: canonical name, accepted
// argument count, and a short usage line for help output.
type filterSpec struct {
	name    string
	minArgs int
	maxArgs int // -1 means variadic
	usage   string
}

var filterSpecs = map[string]*filterSpec{
	"upper":      {name: "upper", usage: "Upper-case the value"},
	"lower":      {name: "lower", usage: "Lower-case the value"},
	"title":      {name: "title", usage: "Title-case each word"},
	"capitalize": {name: "capitalize", usage: "Upper-case the first letter, lower-case the rest"},
	"initials":   {name: "initials", usage: "Keep the first letter of each word"},
	"char":       {name: "char", minArgs: 1, maxArgs: 1, usage: "char:N keeps the Nth character (negative counts from the end)"},
	"slice":      {name: "slice", minArgs: 1, maxArgs: 2, usage: "slice:START:END keeps a character range"},
	"stem":       {name: "stem", usage: "Strip the file extension"},
	"fallback":   {name: "fallback", minArgs: 1, maxArgs: -1, usage: "fallback:TEXT substitutes TEXT (or ${FIELD}) when the value is absent or empty"},
	"replace":    {name: "replace", minArgs: 2, maxArgs: -1, usage: "replace:OLD:NEW substitutes every occurrence of OLD"},
	"trim":       {name: "trim", usage: "Strip surrounding whitespace"},
	"ifexists":   {name: "ifexists", minArgs: 0, maxArgs: -1, usage: "ifexists:THEN:ELSE emits THEN when the value is non-empty"},
	"ifcontains": {name: "ifcontains", minArgs: 2, maxArgs: -1, usage: "ifcontains:NEEDLE:THEN:ELSE (case-insensitive substring test)"},
	"ifeq":       {name: "ifeq", minArgs: 2, maxArgs: -1, usage: "ifeq:TEXT:THEN:ELSE (exact string equality test)"},
	"ifgt":       {name: "ifgt", minArgs: 2, maxArgs: -1, usage: "ifgt:N:THEN:ELSE (numeric greater-than test)"},
	"ifge":       {name: "ifge", minArgs: 2, maxArgs: -1, usage: "ifge:N:THEN:ELSE (numeric greater-or-equal test)"},
	"iflt":       {name: "iflt", minArgs: 2, maxArgs: -1, usage: "iflt:N:THEN:ELSE (numeric less-than test)"},
	"ifle":       {name: "ifle", minArgs: 2, maxArgs: -1, usage: "ifle:N:THEN:ELSE (numeric less-or-equal test)"},
}

// filterAliases maps accepted spellings to canonical registry names.
var filterAliases = map[string]string{
	"strip": "trim",
}

// FilterNames returns the canonical registry names, sorted.
func FilterNames() []string {
	names := make([]string, 0, len(filterSpecs))
	for name := range filterSpecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilterUsage returns the one-line usage of a filter, or an empty string
// for unknown names.
func FilterUsage(name string) string {
	spec := lookupFilter(name)
	if spec == nil {
		return ""
	}
	return spec.usage
}

func lookupFilter(name string) *filterSpec {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := filterAliases[key]; ok {
		key = canonical
	}
	return filterSpecs[key]
}

// value is the state threaded through a filter chain: the current text
// and whether the originating field was ever set on the context.
type value struct {
	s       string
	present bool
}

// filterCall is one compiled filter invocation. Argument parsing and
// rule-text compilation happen once, at Compile time; apply is pure.
type filterCall struct {
	spec *filterSpec

	// char and slice indices. start/end use nil for an open bound.
	index      int
	start, end *int

	// fallback target: exactly one of ref / literal meaningful.
	ref     *fieldRef
	literal string

	// replace arguments.
	oldText, newText string

	// conditional branches and comparison operand.
	operand  string
	thenText *ruleText
	elseText *ruleText
}

func (f *filterCall) apply(v value, ctx *Context) value {
	switch f.spec.name {
	case "upper":
		return value{s: strings.ToUpper(v.s), present: v.present}
	case "lower":
		return value{s: strings.ToLower(v.s), present: v.present}
	case "title":
		return value{s: titleCase(v.s), present: v.present}
	case "capitalize":
		return value{s: capitalize(v.s), present: v.present}
	case "initials":
		return value{s: initials(v.s), present: v.present}
	case "char":
		return value{s: charAt(v.s, f.index), present: v.present}
	case "slice":
		return value{s: sliceRunes(v.s, f.start, f.end), present: v.present}
	case "stem":
		return value{s: stem(v.s), present: v.present}
	case "trim":
		return value{s: strings.TrimSpace(v.s), present: v.present}
	case "fallback":
		if v.s != "" {
			return v
		}
		if f.ref != nil {
			return value{s: f.ref.resolve(ctx), present: true}
		}
		return value{s: f.literal, present: true}
	case "replace":
		return value{s: strings.ReplaceAll(v.s, f.oldText, f.newText), present: v.present}
	case "ifexists":
		return value{s: f.branch(v.s != "", v.s, ctx), present: true}
	case "ifcontains":
		ok := f.operand != "" && strings.Contains(strings.ToLower(v.s), strings.ToLower(f.operand))
		return value{s: f.branch(ok, v.s, ctx), present: true}
	case "ifeq":
		ok := v.s == f.operand
		return value{s: f.branch(ok, v.s, ctx), present: true}
	case "ifgt", "ifge", "iflt", "ifle":
		return value{s: f.branch(f.compare(v.s), v.s, ctx), present: true}
	}
	return v
}

// branch expands the THEN or ELSE text with the pre-filter value bound
// to %value%. A missing branch yields an empty string.
func (f *filterCall) branch(cond bool, current string, ctx *Context) string {
	rt := f.elseText
	if cond {
		rt = f.thenText
	}
	if rt == nil {
		return ""
	}
	return rt.expand(current, ctx)
}

// compare applies the numeric conditional. An unparseable value falls
// through to the ELSE branch rather than failing the render.
func (f *filterCall) compare(s string) bool {
	lhs, ok := toFloat(s)
	if !ok {
		return false
	}
	rhs, ok := toFloat(f.operand)
	if !ok {
		return false
	}
	switch f.spec.name {
	case "ifgt":
		return lhs > rhs
	case "ifge":
		return lhs >= rhs
	case "iflt":
		return lhs < rhs
	case "ifle":
		return lhs <= rhs
	}
	return false
}

var (
	fractionPattern = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	numberPattern   = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// toFloat extracts a number from free-form probe output. It accepts
// plain decimals, comma decimals ("23,976") and fractions ("24000/1001").
func toFloat(s string) (float64, bool) {
	text := strings.TrimSpace(s)
	if text == "" {
		return 0, false
	}
	if m := fractionPattern.FindStringSubmatch(text); m != nil {
		num, err1 := strconv.ParseFloat(m[1], 64)
		den, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0, false
		}
		return num / den, true
	}
	m := numberPattern.FindString(text)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// titleCase upper-cases the first letter of every letter run and
// lower-cases the rest, so "mad max: fury road" becomes
// "Mad Max: Fury Road" and "it's" becomes "It'S".
func titleCase(s string) string {
	rs := []rune(s)
	prevLetter := false
	for i, r := range rs {
		if unicode.IsLetter(r) {
			if prevLetter {
				rs[i] = unicode.ToLower(r)
			} else {
				rs[i] = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(rs)
}

func capitalize(s string) string {
	rs := []rune(s)
	if len(rs) == 0 {
		return s
	}
	out := make([]rune, len(rs))
	out[0] = unicode.ToUpper(rs[0])
	for i := 1; i < len(rs); i++ {
		out[i] = unicode.ToLower(rs[i])
	}
	return string(out)
}

func initials(s string) string {
	var b strings.Builder
	for _, word := range strings.Fields(s) {
		for _, r := range word {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// charAt indexes by rune, counting from the end for negative indices.
// Out-of-range indices yield an empty string.
func charAt(s string, idx int) string {
	rs := []rune(s)
	if idx < 0 {
		idx += len(rs)
	}
	if idx < 0 || idx >= len(rs) {
		return ""
	}
	return string(rs[idx])
}

// sliceRunes takes a rune range: negative bounds count from the end
// and out-of-range bounds clamp instead of failing. A nil bound leaves
// that side open.
func sliceRunes(s string, start, end *int) string {
	rs := []rune(s)
	n := len(rs)
	lo, hi := 0, n
	if start != nil {
		lo = clampBound(*start, n)
	}
	if end != nil {
		hi = clampBound(*end, n)
	}
	if lo >= hi {
		return ""
	}
	return string(rs[lo:hi])
}

func clampBound(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// stem drops the final extension, mirroring filepath stem behavior on a
// bare name: "Movie.2010.mkv" becomes "Movie.2010", and a leading dot
// alone is not an extension.
func stem(s string) string {
	dot := strings.LastIndexByte(s, '.')
	if dot <= 0 {
		return s
	}
	return s[:dot]
}
