package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gamecoins_bot/internal/domain"
	"gamecoins_bot/internal/logger"
)

// FileGateway persists the document as one pretty-printed JSON file, the
// format the original bot data file uses. Writes go through a temp file and
// rename so a crash mid-write never leaves a truncated document.
type FileGateway struct {
	path string
}

// NewFileGateway creates a file gateway at the given path.
func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path}
}

func (g *FileGateway) Load(_ context.Context) (*domain.Document, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewDocument(), nil
		}
		return nil, err
	}

	doc := domain.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		// Unreadable state falls back to the default document rather than
		// taking the process down.
		logger.Error("state file corrupt, starting from default document", "path", g.path, "error", err)
		return domain.NewDocument(), nil
	}
	return doc, nil
}

func (g *FileGateway) Save(_ context.Context, doc *domain.Document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(g.path), ".state-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, g.path)
}
