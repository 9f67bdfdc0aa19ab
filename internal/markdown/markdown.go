// Package markdown turns task text into HTML for exported boards and into
// styled output for the terminal.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// EmptyHTML stands in for blank task text so the card keeps its height.
const EmptyHTML = "<p>&nbsp;</p>"

var (
	converter = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(linkTargets{}, 500)),
		),
	)
	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("rel").Matching(regexp.MustCompile(`^nofollow$`)).OnElements("a")
	return p
}

// linkTargets makes every link open in a new tab and carry nofollow,
// whatever syntax produced it.
type linkTargets struct{}

func (linkTargets) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindLink, ast.KindAutoLink:
			n.SetAttribute([]byte("target"), []byte("_blank"))
			n.SetAttribute([]byte("rel"), []byte("nofollow"))
		}
		return ast.WalkContinue, nil
	})
}

// HTML renders task text to sanitized HTML. Malformed markdown is rendered
// best-effort; raw HTML in the source never reaches the output.
func HTML(md string) string {
	if strings.TrimSpace(md) == "" {
		return EmptyHTML
	}
	var buf bytes.Buffer
	if err := converter.Convert([]byte(md), &buf); err != nil {
		return EmptyHTML
	}
	out := strings.TrimSpace(policy.Sanitize(buf.String()))
	if out == "" {
		return EmptyHTML
	}
	return out
}

// Terminal renders task text for a terminal of the given width using the
// named glamour style. A width of zero disables wrapping.
func Terminal(md string, style string, width int) string {
	if strings.TrimSpace(md) == "" {
		return "\u00a0"
	}
	if style == "" {
		style = "dark"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
