// Package styling maps task text onto extra presentation using
// user-defined pattern rules.
package styling

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var ErrInvalidPattern = errors.New("styling: invalid rule pattern")

// Rule adds ClassName and the CSS declarations in Style to any task whose
// text matches Regex.
type Rule struct {
	Regex     string `json:"regex" toml:"regex"`
	ClassName string `json:"className,omitempty" toml:"class_name"`
	Style     string `json:"style,omitempty" toml:"style"`
}

type Rules []Rule

// Compile checks every pattern and reports the first that does not parse.
func (rs Rules) Compile() error {
	for i, r := range rs {
		if _, err := compile(r.Regex); err != nil {
			return fmt.Errorf("%w: rule %d %q: %v", ErrInvalidPattern, i, r.Regex, err)
		}
	}
	return nil
}

type Styles struct {
	ClassName string
	Style     map[string]string
}

// GetStyles evaluates rules in order. Class names accumulate; a later rule's
// declaration replaces an earlier one for the same property.
func GetStyles(text string, rules Rules) Styles {
	out := Styles{Style: map[string]string{}}
	if text == "" || len(rules) == 0 {
		return out
	}
	classes := make([]string, 0, len(rules))
	for _, r := range rules {
		if strings.TrimSpace(r.Regex) == "" {
			continue
		}
		re, err := compile(r.Regex)
		if err != nil || !re.MatchString(text) {
			continue
		}
		if c := strings.TrimSpace(r.ClassName); c != "" {
			classes = append(classes, c)
		}
		for prop, val := range ParseCSS(r.Style) {
			out.Style[prop] = val
		}
	}
	out.ClassName = strings.Join(classes, " ")
	return out
}

// ParseCSS reads "prop: value; prop2: value2" declarations. Property names
// are lower-cased; malformed declarations are skipped.
func ParseCSS(css string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(css, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop == "" || val == "" {
			continue
		}
		out[prop] = val
	}
	return out
}

// CSS renders the inline style with properties sorted for stable output.
func (s Styles) CSS() string {
	if len(s.Style) == 0 {
		return ""
	}
	props := make([]string, 0, len(s.Style))
	for p := range s.Style {
		props = append(props, p)
	}
	sort.Strings(props)
	parts := make([]string, 0, len(props))
	for _, p := range props {
		parts = append(parts, p+": "+s.Style[p])
	}
	return strings.Join(parts, "; ")
}

// Lipgloss applies the subset of CSS a terminal can show onto base.
func (s Styles) Lipgloss(base lipgloss.Style) lipgloss.Style {
	out := base
	for prop, val := range s.Style {
		v := strings.ToLower(val)
		switch prop {
		case "color":
			out = out.Foreground(lipgloss.Color(val))
		case "background", "background-color":
			out = out.Background(lipgloss.Color(val))
		case "font-weight":
			if v == "bold" || v == "bolder" || v == "700" || v == "800" || v == "900" {
				out = out.Bold(true)
			}
		case "font-style":
			if v == "italic" || v == "oblique" {
				out = out.Italic(true)
			}
		case "text-decoration", "text-decoration-line":
			if strings.Contains(v, "line-through") {
				out = out.Strikethrough(true)
			}
			if strings.Contains(v, "underline") {
				out = out.Underline(true)
			}
		case "opacity":
			if v != "1" && v != "1.0" {
				out = out.Faint(true)
			}
		}
	}
	return out
}

type compiledPattern struct {
	re  *regexp.Regexp
	err error
}

// patterns caches compile results, failures included, keyed by the raw
// pattern. Entries are never evicted.
var patterns sync.Map

func compile(pattern string) (*regexp.Regexp, error) {
	if v, ok := patterns.Load(pattern); ok {
		c := v.(compiledPattern)
		return c.re, c.err
	}
	re, err := regexp.Compile("(?i)" + pattern)
	v, _ := patterns.LoadOrStore(pattern, compiledPattern{re: re, err: err})
	c := v.(compiledPattern)
	return c.re, c.err
}
