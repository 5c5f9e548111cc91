// Package render draws a page of tracks into a table.
//
// Every renderer replaces the previously rendered track rows wholesale and
// keeps the column order defined by Columns.
package render

import (
	"strconv"

	"github.com/jfmyers9/playlog/pkg/trackapi"
	"github.com/samber/lo"
)

// Column describes one rendered field of a track.
type Column struct {
	Title string
	Width int // Preferred display width for fixed-width output
	Value func(trackapi.Track) string
}

// Columns is the row layout shared by all renderers, in display order.
var Columns = []Column{
	{Title: "#", Width: 6, Value: func(t trackapi.Track) string { return strconv.FormatInt(t.ID, 10) }},
	{Title: "Artist", Width: 24, Value: func(t trackapi.Track) string { return t.Artist }},
	{Title: "Album", Width: 24, Value: func(t trackapi.Track) string { return t.Album }},
	{Title: "Name", Width: 32, Value: func(t trackapi.Track) string { return t.Name }},
	{Title: "Played At", Width: 20, Value: func(t trackapi.Track) string { return t.PlayedAt }},
}

// Fields returns the column values of a track in display order.
func Fields(t trackapi.Track) []string {
	return lo.Map(Columns, func(c Column, _ int) string {
		return c.Value(t)
	})
}

// Titles returns the column headers in display order.
func Titles() []string {
	return lo.Map(Columns, func(c Column, _ int) string {
		return c.Title
	})
}
