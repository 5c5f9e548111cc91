// Package trackapi provides a client for a playback-history HTTP API.
//
// # Overview
//
// The API serves recently played tracks newest-first, in pages of 30
// records:
//
//	GET {origin}/api/tracks?page={n}
//
// A page is a JSON array of track objects. Page 0 holds the most recent
// plays; its first record carries the highest id in the collection.
//
// # Quick Start
//
//	import "github.com/jfmyers9/playlog/pkg/trackapi"
//
//	client, err := trackapi.NewClient(trackapi.Config{
//	    BaseURL: "http://localhost:6789/api",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tracks, err := client.FetchPage(ctx, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, t := range tracks {
//	    fmt.Printf("%d %s - %s\n", t.ID, t.Artist, t.Name)
//	}
//
// # Error Handling
//
// Every failure from FetchPage is a *Error classified by Kind:
//
//	tracks, err := client.FetchPage(ctx, 3)
//	switch {
//	case errors.Is(err, trackapi.ErrHTTPStatus):
//	    var apiErr *trackapi.Error
//	    errors.As(err, &apiErr)
//	    fmt.Println("server answered", apiErr.StatusCode)
//	case errors.Is(err, trackapi.ErrMalformed):
//	    fmt.Println("unexpected body")
//	case errors.Is(err, trackapi.ErrTransport):
//	    fmt.Println("server unreachable")
//	}
//
// The client never retries. Callers decide whether and when to ask again.
//
// # Metrics
//
// Fetch outcomes and latencies are recorded on the default Prometheus
// registry as playlog_track_fetches_total and
// playlog_track_fetch_duration_seconds.
package trackapi
