package qdrant

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/qdrant/go-client/qdrant"
)

func TestIDToUUID(t *testing.T) {
	// Already a UUID: pass through unchanged
	id := "b1c3a1f4-9dad-11d1-80b4-00c04fd430c8"
	gt.Value(t, idToUUID(id)).Equal(id)

	// Non-UUID identifiers map deterministically
	first := idToUUID("T1059")
	second := idToUUID("T1059")
	gt.Value(t, first).Equal(second)
	gt.Bool(t, first != idToUUID("T1003")).True()
	gt.Bool(t, first != "T1059").True()
}

func TestGetPayloadString(t *testing.T) {
	payload := qdrant.NewValueMap(map[string]any{
		"id":    "T1059",
		"count": 3,
	})

	gt.Value(t, getPayloadString(payload, "id")).Equal("T1059")
	gt.Value(t, getPayloadString(payload, "missing")).Equal("")
	gt.Value(t, getPayloadString(payload, "count")).Equal("")
	gt.Value(t, getPayloadString(nil, "id")).Equal("")
}
