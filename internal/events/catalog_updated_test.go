package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

// consumers depend on these field names; keep them stable
func TestCatalogUpdatedPayloadShape(t *testing.T) {
	ev := CatalogUpdated{
		EventID:   uuid.NewString(),
		EventType: EventTypeCatalogUpdated,
		Action:    "replace",
		Count:     3,
		Timestamp: time.Now().UTC(),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var asMap map[string]any
	if err := json.Unmarshal(body, &asMap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, field := range []string{"eventId", "eventType", "action", "count", "timestamp"} {
		if _, ok := asMap[field]; !ok {
			t.Fatalf("missing field %q in %s", field, body)
		}
	}
	if asMap["eventType"] != "catalog.updated" {
		t.Fatalf("unexpected eventType: %v", asMap["eventType"])
	}
}
