package template

import (
	"strconv"
	"strings"
)

// Render substitutes context values into the template and returns the
// relative destination path. The forward slash is the only structural
// separator: literal '/' characters in the template text delimit
// directories, while a '/' or '\' produced by a field value or filter
// output is rejected as path traversal. The rendered path as a whole is
// validated with ValidatePath before it is returned.
//
// A nil ctx renders every field as absent.
func (t *Template) Render(ctx *Context) (string, error) {
	if ctx == nil {
		ctx = NewContext()
	}
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.placeholder == nil {
			b.WriteString(seg.literal)
			continue
		}
		out := seg.placeholder.eval(ctx)
		if strings.ContainsAny(out, `/\`) {
			return "", &Error{
				Kind:        ErrPathTraversal,
				Placeholder: seg.placeholder.source,
				Detail:      "substituted value introduces a path separator: " + strconv.Quote(out),
			}
		}
		b.WriteString(out)
	}
	rendered := b.String()
	if err := ValidatePath(rendered); err != nil {
		return "", err
	}
	return rendered, nil
}

func (p *placeholder) eval(ctx *Context) string {
	s, ok := ctx.Lookup(p.field)
	v := value{s: s, present: ok}
	for _, f := range p.filters {
		v = f.apply(v, ctx)
	}
	return v.s
}
