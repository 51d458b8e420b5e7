// Package store persists the card collection as a flat JSON file. The file
// is rewritten in full on every save; there is no append log and no partial
// update. Concurrent processes writing the same file race and the last
// writer wins, which is acceptable for a single-user tool.
package store

import (
	"encoding/json"
	"os"

	"github.com/arueda/flashdeck/internal/logger"
	"github.com/arueda/flashdeck/internal/models"
)

// CardStore loads and saves the whole card collection.
type CardStore interface {
	Load() ([]models.Card, error)
	Save(cards []models.Card) error
}

type fileStore struct {
	path string
	log  *logger.Logger
}

// NewFileStore creates a CardStore backed by the JSON file at path.
func NewFileStore(path string) CardStore {
	return &fileStore{
		path: path,
		log:  logger.Default().WithPrefix("store"),
	}
}

// Load reads the card collection from disk. A missing file is an empty
// collection. A malformed file is also an empty collection: corruption is
// silently discarded rather than surfaced, matching the tool's historical
// behavior. Other read errors propagate.
func (s *fileStore) Load() ([]models.Card, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.log.Debug("card file %s does not exist, starting empty", s.path)
		return []models.Card{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cards []models.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		s.log.Warn("card file %s is malformed, discarding contents: %v", s.path, err)
		return []models.Card{}, nil
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return cards, nil
}

// Save rewrites the whole card file. Write failures propagate to the caller
// untouched; there is no retry.
func (s *fileStore) Save(cards []models.Card) error {
	data, err := json.MarshalIndent(cards, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.log.Error("failed to write card file %s: %v", s.path, err)
		return err
	}
	s.log.Debug("saved %d cards to %s", len(cards), s.path)
	return nil
}
