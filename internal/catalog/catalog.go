// Package catalog owns the in-memory card collection. Every mutation writes
// the whole collection back through the store.
package catalog

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/arueda/flashdeck/internal/errors"
	"github.com/arueda/flashdeck/internal/logger"
	"github.com/arueda/flashdeck/internal/models"
	"github.com/arueda/flashdeck/internal/store"
)

// Catalog is the in-memory card collection. The tool is logically
// single-user, but the HTTP layer serves concurrent requests, so access is
// guarded by a mutex.
type Catalog struct {
	mu    sync.Mutex
	store store.CardStore
	cards []models.Card
	log   *logger.Logger
}

// Open loads the card collection from the store and returns a catalog
// owning it.
func Open(s store.CardStore) (*Catalog, error) {
	cards, err := s.Load()
	if err != nil {
		return nil, err
	}
	log := logger.Default().WithPrefix("catalog")
	log.Info("loaded %d cards", len(cards))
	return &Catalog{store: s, cards: cards, log: log}, nil
}

// Add validates the fields, assigns a fresh id with zeroed counters, appends
// the card and persists the collection.
func (c *Catalog) Add(question, answer string, isCode bool, topic string) (models.Card, error) {
	if strings.TrimSpace(question) == "" {
		return models.Card{}, errors.NewValidationError("question", "cannot be empty")
	}
	if strings.TrimSpace(answer) == "" {
		return models.Card{}, errors.NewValidationError("answer", "cannot be empty")
	}
	if !models.ValidTopic(topic) {
		return models.Card{}, errors.NewValidationError("topic", "unknown topic "+topic)
	}

	card := models.Card{
		ID:       uuid.NewString(),
		Question: question,
		Answer:   answer,
		IsCode:   isCode,
		Topic:    topic,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cards = append(c.cards, card)
	if err := c.store.Save(c.cards); err != nil {
		// Roll the append back so memory matches disk.
		c.cards = c.cards[:len(c.cards)-1]
		return models.Card{}, err
	}
	c.log.Debug("added card %s topic=%s", card.ID, card.Topic)
	return card, nil
}

// Edit replaces the question, answer and topic of the card with the given
// id. Counters are untouched.
func (c *Catalog) Edit(id, question, answer, topic string) error {
	if strings.TrimSpace(question) == "" {
		return errors.NewValidationError("question", "cannot be empty")
	}
	if strings.TrimSpace(answer) == "" {
		return errors.NewValidationError("answer", "cannot be empty")
	}
	if !models.ValidTopic(topic) {
		return errors.NewValidationError("topic", "unknown topic "+topic)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return errors.NewNotFoundError("card", id)
	}
	prev := c.cards[i]
	c.cards[i].Question = question
	c.cards[i].Answer = answer
	c.cards[i].Topic = topic
	if err := c.store.Save(c.cards); err != nil {
		c.cards[i] = prev
		return err
	}
	c.log.Debug("edited card %s", id)
	return nil
}

// Delete removes the card with the given id. Deleting an id that is absent
// is a no-op: delete is idempotent, so a stale page can repeat it safely.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		c.log.Debug("delete of unknown card %s ignored", id)
		return nil
	}
	removed := c.cards[i]
	c.cards = append(c.cards[:i], c.cards[i+1:]...)
	if err := c.store.Save(c.cards); err != nil {
		// Restore at the original position.
		c.cards = append(c.cards[:i], append([]models.Card{removed}, c.cards[i:]...)...)
		return err
	}
	c.log.Debug("deleted card %s", id)
	return nil
}

// Get returns the card with the given id.
func (c *Catalog) Get(id string) (models.Card, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i >= 0 {
		return c.cards[i], nil
	}
	return models.Card{}, errors.NewNotFoundError("card", id)
}

// Filter returns the cards matching both filters, in insertion order.
// An empty or "All" topic matches every topic; the query is a
// case-insensitive substring match over question or answer.
func (c *Catalog) Filter(topic, query string) []models.Card {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := strings.ToLower(query)
	out := make([]models.Card, 0, len(c.cards))
	for _, card := range c.cards {
		if topic != "" && topic != models.TopicAll && card.Topic != topic {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(card.Question), q) &&
			!strings.Contains(strings.ToLower(card.Answer), q) {
			continue
		}
		out = append(out, card)
	}
	return out
}

// All returns a copy of the whole collection in insertion order.
func (c *Catalog) All() []models.Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Len returns the number of cards.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cards)
}

// RecordResult increments exactly one of the card's counters and persists
// the collection. The counters only ever increase.
func (c *Catalog) RecordResult(id string, correct bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return errors.NewNotFoundError("card", id)
	}
	prev := c.cards[i]
	if correct {
		c.cards[i].CorrectCount++
	} else {
		c.cards[i].IncorrectCount++
	}
	if err := c.store.Save(c.cards); err != nil {
		c.cards[i] = prev
		return err
	}
	c.log.Debug("recorded result for card %s correct=%t", id, correct)
	return nil
}

// index returns the position of the card with the given id, or -1.
// Callers must hold the mutex.
func (c *Catalog) index(id string) int {
	for i := range c.cards {
		if c.cards[i].ID == id {
			return i
		}
	}
	return -1
}
