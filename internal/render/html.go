package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/jfmyers9/playlog/pkg/trackapi"
)

// RowClass marks table rows produced from tracks.
const RowClass = "track-row"

var rowTemplate = template.Must(template.New("row").Parse(
	`<tr class="` + RowClass + `" data-id="{{.ID}}">` +
		`<td>{{.ID}}</td><td>{{.Artist}}</td><td>{{.Album}}</td><td>{{.Name}}</td><td>{{.PlayedAt}}</td>` +
		`</tr>`))

var tableTemplate = template.Must(template.New("table").Parse(`<table class="tracks">
<thead>
<tr>{{range .Titles}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody id="tracks">
{{range .Rows}}{{.}}
{{end}}</tbody>
</table>
`))

// HTML renders tracks as rows of an HTML table body.
type HTML struct {
	rows []template.HTML
}

// NewHTML returns an empty HTML table renderer.
func NewHTML() *HTML {
	return &HTML{}
}

// Render replaces all track rows with the given tracks, in order. The
// previous rows are kept if any row fails to render.
func (r *HTML) Render(tracks []trackapi.Track) error {
	rows := make([]template.HTML, 0, len(tracks))
	var buf bytes.Buffer
	for _, track := range tracks {
		buf.Reset()
		if err := rowTemplate.Execute(&buf, track); err != nil {
			return fmt.Errorf("failed to render track %d: %w", track.ID, err)
		}
		// Safe: html/template escaped every field above.
		rows = append(rows, template.HTML(buf.String()))
	}
	r.rows = rows
	return nil
}

// RowCount returns the number of rendered track rows.
func (r *HTML) RowCount() int {
	return len(r.rows)
}

// WriteTo writes the complete table, header included.
func (r *HTML) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	data := struct {
		Titles []string
		Rows   []template.HTML
	}{
		Titles: Titles(),
		Rows:   r.rows,
	}
	if err := tableTemplate.Execute(&buf, data); err != nil {
		return 0, fmt.Errorf("failed to render table: %w", err)
	}
	return buf.WriteTo(w)
}
