// Package store implements the persistence gateway: synchronous load/save of
// the whole state document. Implementations cover a JSON file (the default
// single-process deployment), PostgreSQL (single row with a version stamp),
// Redis (single key), and in-memory (for tests).
package store

import (
	"context"
	"errors"

	"gamecoins_bot/internal/domain"
)

// ErrVersionConflict is returned by Save when another writer persisted a
// newer document since the matching Load. The ledger retries the whole
// read-modify-write cycle a bounded number of times before surfacing it.
var ErrVersionConflict = errors.New("document version conflict")

// Gateway is the persistence contract. Load never fails on missing or
// corrupt state: it falls back to the default empty document.
type Gateway interface {
	Load(ctx context.Context) (*domain.Document, error)
	Save(ctx context.Context, doc *domain.Document) error
}
