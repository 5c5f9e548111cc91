package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/jfmyers9/playlog/pkg/trackapi"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// DefaultRowFormat lays the columns out at their preferred widths.
const DefaultRowFormat = `{{pad .ID 6}}  {{pad .Artist 24}}  {{pad .Album 24}}  {{pad .Name 32}}  {{.PlayedAt}}`

// Text renders tracks as lines of text using a row template.
//
// The template receives a trackapi.Track. Available fields: .ID, .Artist,
// .Album, .Name, .PlayedAt, .URI. The pad function fixes a value to a
// display width: {{pad .Name 20}}.
type Text struct {
	tmpl *template.Template
	out  string
}

// NewText parses the row template. An empty format uses DefaultRowFormat.
func NewText(format string) (*Text, error) {
	if format == "" {
		format = DefaultRowFormat
	}

	tmpl, err := template.New("row").
		Funcs(template.FuncMap{"pad": pad}).
		Option("missingkey=error").
		Parse(format)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	return &Text{tmpl: tmpl}, nil
}

// Render replaces the rendered lines with the given tracks, in order. The
// previous output is kept if any row fails to render.
func (r *Text) Render(tracks []trackapi.Track) error {
	var buf bytes.Buffer
	for _, track := range tracks {
		if err := r.tmpl.Execute(&buf, track); err != nil {
			return fmt.Errorf("template execution failed: %w", err)
		}
		buf.WriteByte('\n')
	}
	r.out = buf.String()
	return nil
}

// String returns the rendered lines.
func (r *Text) String() string {
	return r.out
}

// HeaderLine returns the column titles laid out like DefaultRowFormat.
func HeaderLine() string {
	var sb strings.Builder
	for i, col := range Columns {
		if i > 0 {
			sb.WriteString("  ")
		}
		if i == len(Columns)-1 {
			sb.WriteString(col.Title)
			continue
		}
		sb.WriteString(fitWidth(col.Title, col.Width))
	}
	return sb.String()
}

func pad(value interface{}, width int) string {
	return fitWidth(fmt.Sprint(value), width)
}

// fitWidth fixes text to width display columns, cutting it with an
// ellipsis or padding it with spaces. Widths below the ellipsis cut
// without one; a width of zero or less leaves text unchanged.
func fitWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	tail := ellipsis
	if width < runewidth.StringWidth(tail) {
		tail = ""
	}
	return runewidth.FillRight(runewidth.Truncate(text, width, tail), width)
}
