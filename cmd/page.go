package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/jfmyers9/playlog/internal/config"
	"github.com/jfmyers9/playlog/internal/navigator"
	"github.com/jfmyers9/playlog/internal/render"
	"github.com/jfmyers9/playlog/pkg/trackapi"
	"github.com/spf13/cobra"
)

// Output formats for the page command
const (
	formatText = "text"
	formatHTML = "html"
	formatJSON = "json"
)

// pageCmd represents the page command
var pageCmd = &cobra.Command{
	Use:   "page [N]",
	Short: "Print one page of tracks",
	Long: `Fetch page N (zero-based, default 0) from the tracks API and print it.

Page 0 holds the 30 most recent tracks, newest first.

Formats:
  text - one line per track using a Go template (default)
  html - an HTML table with one row per track
  json - the tracks as a JSON array

The text template can be set in ~/.config/playlog/config.yaml (row_format)
or with --template. Available fields: .ID, .Artist, .Album, .Name,
.PlayedAt, .URI. The pad function fixes a field to a display width:
{{pad .Name 20}}.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPage,
}

func init() {
	rootCmd.AddCommand(pageCmd)

	pageCmd.Flags().StringP("format", "f", formatText, "Output format: text, html or json")
	pageCmd.Flags().StringP("template", "t", "", "Row template for text output (overrides config)")
	pageCmd.Flags().String("api-url", "", "Tracks API base URL (overrides config)")
}

func runPage(cmd *cobra.Command, args []string) error {
	page := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid page %q: must be a non-negative integer", args[0])
		}
		page = n
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog := setupLogger(logSettings(cfg))
	defer closeLog()

	format, _ := cmd.Flags().GetString("format")
	tmpl, _ := cmd.Flags().GetString("template")
	if tmpl == "" {
		tmpl = cfg.RowFormat
	}
	apiURL, _ := cmd.Flags().GetString("api-url")

	client, err := newTrackClient(cfg, apiURL, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
	}

	logger.Debug().Int("page", page).Str("format", format).Msg("Fetching page")

	return writePage(ctx, cmd.OutOrStdout(), client, page, format, tmpl)
}

// writePage fetches one page and writes it to w in the given format.
func writePage(ctx context.Context, w io.Writer, fetcher navigator.Fetcher, page int, format, tmpl string) error {
	// Validate output options before the request
	var text *render.Text
	switch format {
	case formatText:
		r, err := render.NewText(tmpl)
		if err != nil {
			return fmt.Errorf("failed to parse template: %w", err)
		}
		text = r
	case formatHTML, formatJSON:
	default:
		return fmt.Errorf("unknown format %q (want text, html or json)", format)
	}

	tracks, err := fetcher.FetchPage(ctx, page)
	if err != nil {
		return fmt.Errorf("failed to fetch page %d: %w", page, err)
	}

	switch format {
	case formatJSON:
		return writeJSON(w, tracks)
	case formatHTML:
		r := render.NewHTML()
		if err := r.Render(tracks); err != nil {
			return fmt.Errorf("failed to render page: %w", err)
		}
		_, err := r.WriteTo(w)
		return err
	default:
		if err := text.Render(tracks); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		if tmpl == "" {
			if _, err := fmt.Fprintln(w, render.HeaderLine()); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, text.String())
		return err
	}
}

func writeJSON(w io.Writer, tracks []trackapi.Track) error {
	if tracks == nil {
		tracks = []trackapi.Track{}
	}
	data, err := json.MarshalIndent(tracks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tracks: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
