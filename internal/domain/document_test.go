package domain

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

func TestDocumentRoundTripPreservesUnknownSections(t *testing.T) {
	blob := []byte(`{
		"economy": {"users": {"42": {"coins": 500, "level": 2, "xp": 150}}},
		"virtual_shop": {"products": {}, "purchases": {}, "settings": {"enabled": true}},
		"tickets": {"open": [1, 2, 3]},
		"roblox_accounts": {"42": "builderman"}
	}`)

	var doc Document
	if err := json.Unmarshal(blob, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	acc := doc.Economy.Users["42"]
	if acc == nil || acc.Coins != 500 || acc.Level != 2 {
		t.Fatalf("economy section not decoded: %+v", acc)
	}
	if len(doc.Extra) != 2 {
		t.Fatalf("expected 2 preserved sections, got %d", len(doc.Extra))
	}

	out, err := json.Marshal(&doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	for _, key := range []string{"economy", "virtual_shop", "tickets", "roblox_accounts"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("section %q dropped on save", key)
		}
	}
	if !bytes.Contains(out, []byte("builderman")) {
		t.Error("collaborator data mangled on save")
	}
}

func TestDocumentUnmarshalBackfillsMaps(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{"economy": {}, "virtual_shop": {}}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Economy.Users == nil {
		t.Error("users map not initialized")
	}
	if doc.VirtualShop.Products == nil || doc.VirtualShop.Purchases == nil {
		t.Error("shop maps not initialized")
	}
}

func TestDocumentClone(t *testing.T) {
	doc := NewDocument()
	doc.Economy.Users["7"] = NewUserAccount(time.Now())
	doc.Extra["tickets"] = json.RawMessage(`{"open": []}`)

	clone, err := doc.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}

	clone.Economy.Users["7"].Coins = 9999
	if doc.Economy.Users["7"].Coins == 9999 {
		t.Error("clone shares account state with original")
	}
	if _, ok := clone.Extra["tickets"]; !ok {
		t.Error("clone dropped preserved section")
	}
}
