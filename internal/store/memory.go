package store

import (
	"context"
	"sync"

	"gamecoins_bot/internal/domain"
)

// MemoryGateway keeps the document in memory. Used for testing. Load and
// Save deep-copy so callers never share state with the gateway.
type MemoryGateway struct {
	mu  sync.Mutex
	doc *domain.Document
}

// NewMemoryGateway creates an empty in-memory gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

func (g *MemoryGateway) Load(_ context.Context) (*domain.Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.doc == nil {
		return domain.NewDocument(), nil
	}
	return g.doc.Clone()
}

func (g *MemoryGateway) Save(_ context.Context, doc *domain.Document) error {
	snapshot, err := doc.Clone()
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.doc = snapshot
	g.mu.Unlock()
	return nil
}
