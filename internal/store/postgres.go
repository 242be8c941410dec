package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"gamecoins_bot/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGateway stores the document in a single row with a version column.
// Save is a compare-and-swap against the version seen by the matching Load,
// so two processes sharing the table cannot silently overwrite each other.
type PostgresGateway struct {
	db *pgxpool.Pool

	mu      sync.Mutex
	version int64 // version observed by the last Load
}

// NewPostgresGateway creates the gateway and its backing table.
func NewPostgresGateway(ctx context.Context, db *pgxpool.Pool) (*PostgresGateway, error) {
	_, err := db.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS bot_state (
			id      int PRIMARY KEY,
			version bigint NOT NULL,
			doc     jsonb NOT NULL
		)`)
	if err != nil {
		return nil, err
	}
	return &PostgresGateway{db: db}, nil
}

func (g *PostgresGateway) Load(ctx context.Context) (*domain.Document, error) {
	var version int64
	var data []byte
	err := g.db.QueryRow(ctx, `SELECT version, doc FROM bot_state WHERE id = 1`).Scan(&version, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			g.setVersion(0)
			return domain.NewDocument(), nil
		}
		return nil, err
	}

	doc := domain.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	g.setVersion(version)
	return doc, nil
}

func (g *PostgresGateway) Save(ctx context.Context, doc *domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	g.mu.Lock()
	seen := g.version
	g.mu.Unlock()

	if seen == 0 {
		tag, err := g.db.Exec(ctx,
			`INSERT INTO bot_state (id, version, doc) VALUES (1, 1, $1)
			 ON CONFLICT (id) DO NOTHING`, data)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrVersionConflict
		}
		g.setVersion(1)
		return nil
	}

	tag, err := g.db.Exec(ctx,
		`UPDATE bot_state SET doc = $1, version = version + 1
		 WHERE id = 1 AND version = $2`, data, seen)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	g.setVersion(seen + 1)
	return nil
}

func (g *PostgresGateway) setVersion(v int64) {
	g.mu.Lock()
	g.version = v
	g.mu.Unlock()
}
