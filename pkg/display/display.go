// Package display turns raw vertex names and query results into the
// text printed by the CLI.
package display

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NoPath is printed in place of a path when none exists.
const NoPath = "No path found."

// DecodeError is what Decode returns for a name it cannot decode.
const DecodeError = "(error)"

// Separator joins path elements.
const Separator = " --> "

// Decode percent-decodes a raw name with query semantics, so '+' becomes a
// space. Undecodable names yield DecodeError.
func Decode(name string) string {
	s, err := url.QueryUnescape(name)
	if err != nil {
		return DecodeError
	}
	return s
}

// DecodeAll decodes every name.
func DecodeAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = Decode(n)
	}
	return out
}

// Arrow renders decoded names as "A --> B --> C", or NoPath when ok is false.
func Arrow(names []string, ok bool) string {
	if !ok || len(names) == 0 {
		return NoPath
	}
	return strings.Join(DecodeAll(names), Separator)
}

// Summary renders the headline of a query. through may be empty.
func Summary(from, through, to string, length int) string {
	var b strings.Builder
	b.WriteString("Path from ")
	b.WriteString(Decode(from))
	if through != "" {
		b.WriteString(" through ")
		b.WriteString(Decode(through))
	}
	b.WriteString(" to ")
	b.WriteString(Decode(to))
	fmt.Fprintf(&b, ", length = %d", length)
	return b.String()
}

// Renderer styles CLI output. The zero value renders plain text.
type Renderer struct {
	header lipgloss.Style
	node   lipgloss.Style
	arrow  lipgloss.Style
	miss   lipgloss.Style
	label  lipgloss.Style
}

// NewRenderer returns a styled renderer, or a plain one when noColor is set.
func NewRenderer(noColor bool) *Renderer {
	if noColor {
		return &Renderer{}
	}
	return &Renderer{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99")),
		node:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		arrow:  lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		miss:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
	}
}

// Result renders the headline and the path on two lines.
func (r *Renderer) Result(from, through, to string, names []string, ok bool) string {
	length := -1
	if ok {
		length = len(names) - 1
	}
	return r.header.Render(Summary(from, through, to, length)) + "\n" + r.Path(names, ok)
}

// Path renders one path line.
func (r *Renderer) Path(names []string, ok bool) string {
	if !ok || len(names) == 0 {
		return r.miss.Render(NoPath)
	}
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = r.node.Render(Decode(n))
	}
	return strings.Join(parts, r.arrow.Render(Separator))
}

// Field renders an aligned "label: value" line.
func (r *Renderer) Field(label string, value any) string {
	return r.label.Render(fmt.Sprintf("%-12s", label+":")) + " " + fmt.Sprint(value)
}
