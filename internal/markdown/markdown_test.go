package markdown

import (
	"strings"
	"testing"
)

func TestHTMLEmptyPlaceholder(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		if got := HTML(in); got != EmptyHTML {
			t.Fatalf("HTML(%q) = %q, want placeholder", in, got)
		}
	}
}

func TestHTMLLinksOpenInNewTab(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"inline", "see [docs](https://example.com/docs)"},
		{"titled", `see [docs](https://example.com/docs "Docs")`},
		{"autolink", "see <https://example.com/docs>"},
		{"bare url", "see https://example.com/docs today"},
		{"reference", "see [docs][d]\n\n[d]: https://example.com/docs"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := HTML(tc.in)
			if !strings.Contains(out, `href="https://example.com/docs"`) {
				t.Fatalf("missing href in %q", out)
			}
			if !strings.Contains(out, `target="_blank"`) {
				t.Fatalf("missing target in %q", out)
			}
			if !strings.Contains(out, `rel="nofollow"`) {
				t.Fatalf("missing rel in %q", out)
			}
		})
	}
}

func TestHTMLStripsRawHTML(t *testing.T) {
	out := HTML("hello <script>alert(1)</script> **world**")
	if strings.Contains(out, "<script") {
		t.Fatalf("script survived sanitizing: %q", out)
	}
	if !strings.Contains(out, "<strong>world</strong>") {
		t.Fatalf("expected emphasis to render, got %q", out)
	}
}

func TestHTMLDropsJavascriptLinks(t *testing.T) {
	out := HTML("[x](javascript:alert(1))")
	if strings.Contains(out, "javascript:") {
		t.Fatalf("dangerous href survived: %q", out)
	}
}

func TestTerminalRendersText(t *testing.T) {
	if got := Terminal("", "dark", 40); got != "\u00a0" {
		t.Fatalf("expected nbsp for empty text, got %q", got)
	}
	out := Terminal("buy **milk**", "notty", 40)
	if !strings.Contains(out, "milk") {
		t.Fatalf("expected rendered text, got %q", out)
	}
}
