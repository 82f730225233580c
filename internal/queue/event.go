// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Actions carried by ListingActivityEvent.
const (
	ActionVenueCreated  = "venue.created"
	ActionVenueDeleted  = "venue.deleted"
	ActionArtistCreated = "artist.created"
	ActionShowListed    = "show.listed"
)

// ListingActivityEvent is published after a successful directory mutation.
// It carries enough information for downstream consumers to log or trigger
// notifications without querying the primary database. Fields that do not
// apply to an action are omitted.
type ListingActivityEvent struct {
	Action     string `json:"action"`
	EntityID   uint64 `json:"entity_id"`
	Name       string `json:"name,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	ArtistID   uint64 `json:"artist_id,omitempty"`
	VenueID    uint64 `json:"venue_id,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
