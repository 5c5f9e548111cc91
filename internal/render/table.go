package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/playlog/pkg/trackapi"
	"github.com/rivo/tview"
)

// trackRow marks table cells that belong to a rendered track. Rows whose
// first cell carries it are the only rows Render removes.
type trackRow struct {
	ID int64
}

// Table renders tracks into a tview table below a fixed header row.
//
// Render mutates the widget and must run on the UI goroutine (inside
// QueueUpdateDraw once the application is running).
type Table struct {
	table *tview.Table
}

// NewTable writes the header row into table and returns a renderer for it.
func NewTable(table *tview.Table) *Table {
	for col, title := range Titles() {
		table.SetCell(0, col, tview.NewTableCell(title).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetExpansion(expansionFor(col)))
	}
	table.SetFixed(1, 0)
	return &Table{table: table}
}

// Render replaces all track rows with the given tracks, in order.
func (r *Table) Render(tracks []trackapi.Track) error {
	r.clearTrackRows()

	start := r.table.GetRowCount()
	for i, track := range tracks {
		marker := trackRow{ID: track.ID}
		for col, text := range Fields(track) {
			r.table.SetCell(start+i, col, tview.NewTableCell(tview.Escape(text)).
				SetReference(marker).
				SetMaxWidth(Columns[col].Width*2).
				SetExpansion(expansionFor(col)))
		}
	}
	return nil
}

// TrackRows returns the cell text of every rendered track row.
func (r *Table) TrackRows() [][]string {
	var rows [][]string
	for row := 0; row < r.table.GetRowCount(); row++ {
		if !isTrackRow(r.table.GetCell(row, 0)) {
			continue
		}
		fields := make([]string, len(Columns))
		for col := range Columns {
			fields[col] = r.table.GetCell(row, col).Text
		}
		rows = append(rows, fields)
	}
	return rows
}

// ScrollToTop moves the viewport to the first row.
func (r *Table) ScrollToTop() {
	r.table.ScrollToBeginning()
}

func (r *Table) clearTrackRows() {
	for row := r.table.GetRowCount() - 1; row >= 0; row-- {
		if isTrackRow(r.table.GetCell(row, 0)) {
			r.table.RemoveRow(row)
		}
	}
}

func isTrackRow(cell *tview.TableCell) bool {
	_, ok := cell.GetReference().(trackRow)
	return ok
}

// expansionFor gives the free-text columns the spare width.
func expansionFor(col int) int {
	if col == 0 {
		return 0
	}
	return 1
}
