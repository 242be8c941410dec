package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gamecoins_bot/internal/domain"
)

func TestFileGatewayMissingFileYieldsDefault(t *testing.T) {
	g := NewFileGateway(filepath.Join(t.TempDir(), "state.json"))

	doc, err := g.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Economy.Users) != 0 {
		t.Errorf("fresh document has %d users", len(doc.Economy.Users))
	}
	if !doc.VirtualShop.Settings.Enabled {
		t.Error("fresh document has shop disabled")
	}
}

func TestFileGatewayRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	g := NewFileGateway(path)
	ctx := context.Background()

	doc := domain.NewDocument()
	doc.Economy.Users["u1"] = domain.NewUserAccount(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	doc.Economy.Users["u1"].Coins = 777

	if err := g.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := g.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	acc, ok := got.Economy.Users["u1"]
	if !ok {
		t.Fatal("user lost in round trip")
	}
	if acc.Coins != 777 {
		t.Errorf("coins = %d, want 777", acc.Coins)
	}
}

func TestFileGatewayCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	g := NewFileGateway(path)
	doc, err := g.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Economy.Users) != 0 {
		t.Error("corrupt file did not fall back to default document")
	}
}

func TestMemoryGatewayIsolation(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	doc, _ := g.Load(ctx)
	doc.Economy.Users["u1"] = &domain.UserAccount{Coins: 100, Level: 1}
	if err := g.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the saved copy must not leak into the gateway.
	doc.Economy.Users["u1"].Coins = 0

	got, _ := g.Load(ctx)
	if got.Economy.Users["u1"].Coins != 100 {
		t.Errorf("gateway shares state with caller: coins = %d", got.Economy.Users["u1"].Coins)
	}
}
