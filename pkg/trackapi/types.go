package trackapi

// Track is a single playback-history record as served by the API.
//
// Fields are passed through as received; the client neither validates
// nor normalizes them.
type Track struct {
	ID       int64  `json:"id"`        // Positive, increasing in creation order
	Artist   string `json:"artist"`    // Artist name
	Album    string `json:"album"`     // Album name
	Name     string `json:"name"`      // Track name
	PlayedAt string `json:"played_at"` // When the track was played, as sent by the server
	URI      string `json:"uri,omitempty"`
	AddedAt  string `json:"add_time,omitempty"`
}
