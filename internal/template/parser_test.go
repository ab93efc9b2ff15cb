package template

import (
	"errors"
	"testing"
)

func mustCompile(t *testing.T, src string) *Template {
	t.Helper()
	tpl, err := Compile(src)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", src, err)
	}
	return tpl
}

func testContext(values map[string]string) *Context {
	ctx := NewContext()
	for k, v := range values {
		ctx.Set(k, v)
	}
	return ctx
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrorKind
	}{
		{"unclosed placeholder", "{TITLE", ErrUnterminatedPlaceholder},
		{"unclosed with filters", "movies/{TITLE|upper", ErrUnterminatedPlaceholder},
		{"nested bare brace", "{COLLECTION_NAME|fallback:{TITLE}}", ErrUnterminatedPlaceholder},
		{"unknown field", "{TYPO}", ErrUnknownField},
		{"unknown field mixed", "{TITLE}/{NOPE}", ErrUnknownField},
		{"empty placeholder", "{}", ErrUnknownField},
		{"blank placeholder", "{   }", ErrUnknownField},
		{"field with spaces", "{MY TITLE}", ErrUnknownField},
		{"unknown filter", "{TITLE|frobnicate}", ErrUnknownFilter},
		{"empty filter", "{TITLE|}", ErrUnknownFilter},
		{"char without index", "{TITLE|char}", ErrInvalidFilterArity},
		{"char with two args", "{TITLE|char:1:2}", ErrInvalidFilterArity},
		{"slice without bounds", "{TITLE|slice}", ErrInvalidFilterArity},
		{"slice with three bounds", "{TITLE|slice:1:2:3}", ErrInvalidFilterArity},
		{"replace without new text", "{TITLE|replace:x}", ErrInvalidFilterArity},
		{"fallback without argument", "{TITLE|fallback}", ErrInvalidFilterArity},
		{"ifeq without branches", "{TITLE|ifeq:x}", ErrInvalidFilterArity},
		{"ifge without branches", "{FPS|ifge:60}", ErrInvalidFilterArity},
		{"char non-integer index", "{TITLE|char:abc}", ErrInvalidFilterArgument},
		{"slice non-integer bound", "{TITLE|slice:a:b}", ErrInvalidFilterArgument},
		{"value pseudo reference", "{TITLE|ifexists:${VALUE}}", ErrInvalidFilterArgument},
		{"legacy dollar reference", "{TITLE|ifexists:$YEAR}", ErrInvalidFilterArgument},
		{"legacy reference in fallback", "{COLLECTION_NAME|fallback:$TITLE}", ErrInvalidFilterArgument},
		{"filtered field reference", "{COLLECTION_NAME|fallback:${TITLE|upper}}", ErrInvalidFilterArgument},
		{"unknown field reference in branch", "{TITLE|ifexists:${TYPO}}", ErrUnknownField},
		{"unknown field reference in fallback", "{COLLECTION_NAME|fallback:${TYPO}}", ErrUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.src)
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want %v error", tt.src, tt.kind)
			}
			var terr *Error
			if !errors.As(err, &terr) {
				t.Fatalf("Compile(%q) returned %T, want *template.Error", tt.src, err)
			}
			if terr.Kind != tt.kind {
				t.Errorf("Compile(%q) kind = %v, want %v (%v)", tt.src, terr.Kind, tt.kind, err)
			}
		})
	}
}

func TestCompileValidTemplates(t *testing.T) {
	srcs := []string{
		"{TITLE}",
		"{TITLE} ({YEAR})/{TITLE} ({YEAR})",
		"{TITLE} ({YEAR}){IMDB_ID|ifexists: [imdbid-%value%]}",
		"{title|upper}",
		"{ TITLE | trim }",
		"{TITLE[0]}/{TITLE}",
		"{TITLE.upper}",
		"{LOCAL_FILENAME.stem.lower}",
		"{SOURCE|ifexists::NOEXISTE}",
		"{COLLECTION_NAME|fallback:${TITLE}}",
		"{TITLE|strip}",
		"plain literal text without placeholders",
		"",
	}
	for _, src := range srcs {
		if _, err := Compile(src); err != nil {
			t.Errorf("Compile(%q) failed: %v", src, err)
		}
	}
}

func TestCompileErrorNamesPlaceholder(t *testing.T) {
	_, err := Compile("{TITLE} ({YEAR})/{TITLE|frobnicate}")
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *template.Error, got %v", err)
	}
	if terr.Placeholder != "TITLE|frobnicate" {
		t.Errorf("Placeholder = %q, want %q", terr.Placeholder, "TITLE|frobnicate")
	}
}

func TestShorthandDesugaring(t *testing.T) {
	ctx := testContext(map[string]string{
		"TITLE": "inception",
	})
	tests := []struct {
		name       string
		shorthand  string
		equivalent string
	}{
		{"index", "{TITLE[0]}", "{TITLE|char:0}"},
		{"negative index", "{TITLE[-1]}", "{TITLE|char:-1}"},
		{"dotted filter", "{TITLE.upper}", "{TITLE|upper}"},
		{"dotted chain", "{TITLE.upper.trim}", "{TITLE|upper|trim}"},
		{"index then pipe", "{TITLE[0]|upper}", "{TITLE|char:0|upper}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mustCompile(t, tt.shorthand).Render(ctx)
			if err != nil {
				t.Fatalf("render %q: %v", tt.shorthand, err)
			}
			want, err := mustCompile(t, tt.equivalent).Render(ctx)
			if err != nil {
				t.Fatalf("render %q: %v", tt.equivalent, err)
			}
			if got != want {
				t.Errorf("%q rendered %q, equivalent %q rendered %q", tt.shorthand, got, tt.equivalent, want)
			}
		})
	}
}

func TestFieldNamesAreCaseInsensitive(t *testing.T) {
	ctx := testContext(map[string]string{"TITLE": "Dune"})
	for _, src := range []string{"{TITLE}", "{title}", "{Title}", "{ title }"} {
		got, err := mustCompile(t, src).Render(ctx)
		if err != nil {
			t.Fatalf("render %q: %v", src, err)
		}
		if got != "Dune" {
			t.Errorf("render %q = %q, want %q", src, got, "Dune")
		}
	}
}

func TestStrayClosingBraceIsLiteral(t *testing.T) {
	got, err := mustCompile(t, "{TITLE} }").Render(testContext(map[string]string{"TITLE": "Up"}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Up }" {
		t.Errorf("got %q, want %q", got, "Up }")
	}
}
