package nezamdoc

import "encoding/json"

// Item is a single harvestable unit discovered on a portal: one law,
// regulation, or similar document the site publishes.
//
// ID is a json.Number because portals are inconsistent about whether
// identifiers arrive as JSON numbers or numeric strings. Items discovered
// by enumerating a rendered listing have no ID or URL at all and are
// reached by matching Name against the listing text.
type Item struct {
	ID   json.Number `json:"id,omitempty"`
	Name string      `json:"name"`
	URL  string      `json:"url,omitempty"`
}

// Ref returns a short identifier for the item, suitable for log lines:
// the ID when present, otherwise the name.
func (it Item) Ref() string {
	if it.ID != "" {
		return "ID " + it.ID.String()
	}
	if it.Name != "" {
		return it.Name
	}
	return "unknown item"
}
