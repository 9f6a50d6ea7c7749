package events

import "time"

const (
	// EventsExchange is the topic exchange all storefront events go to.
	EventsExchange = "storefront.events"

	EventTypeCatalogUpdated = "catalog.updated"
)

// CatalogUpdated announces that an admin write changed the catalog
// document. Consumers (cache warmers, search indexers) re-read the
// catalog; the event carries no product data.
type CatalogUpdated struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	Action    string    `json:"action"` // replace | upsert | delete
	Count     int       `json:"count"`  // element count after the write
	Timestamp time.Time `json:"timestamp"`
}
