// Package practice owns the session state machine: Idle -> Active -> Idle.
// A session snapshots the catalog at start, grades one answer at a time and
// writes per-card counters back through the catalog as it advances. Sessions
// themselves are never persisted.
package practice

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/arueda/flashdeck/internal/catalog"
	"github.com/arueda/flashdeck/internal/errors"
	"github.com/arueda/flashdeck/internal/logger"
	"github.com/arueda/flashdeck/internal/models"
)

// Engine runs at most one practice session per process.
type Engine struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	log     *logger.Logger
	rng     *rand.Rand
	session *session
	summary *models.SessionSummary
}

// session is the ephemeral state of one active run. Invariant:
// 0 <= position <= len(order), and correct+incorrect == position while no
// judgment is pending.
type session struct {
	cards      []models.Card
	order      []int
	position   int
	correct    int
	incorrect  int
	pending    bool
	lastResult bool
	submitted  string
}

func (s *session) current() models.Card {
	return s.cards[s.order[s.position]]
}

// New creates an Engine over the given catalog.
func New(c *catalog.Catalog) *Engine {
	return &Engine{
		catalog: c,
		log:     logger.Default().WithPrefix("practice"),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Normalize prepares an answer for comparison: lower-case, trimmed, with
// internal whitespace runs collapsed to single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Active reports whether a session is running.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session != nil
}

// Start snapshots the catalog filtered by topic and begins a session over a
// uniformly random permutation of the matching cards.
func (e *Engine) Start(topic string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return errors.NewInvalidStateError("a practice session is already active")
	}

	cards := e.catalog.Filter(topic, "")
	if len(cards) == 0 {
		return errors.NewEmptyTopicError(topic)
	}

	e.session = &session{
		cards: cards,
		order: e.rng.Perm(len(cards)),
	}
	// Starting a new session discards any unread summary.
	e.summary = nil
	e.log.Info("session started: topic=%s cards=%d", topic, len(cards))
	return nil
}

// SubmitAnswer grades raw against the current card's stored answer. Both
// sides are normalized identically and compared for exact equality; there is
// no partial credit. The judgment stays pending until Advance.
func (e *Engine) SubmitAnswer(raw string) (models.GradeResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return models.GradeResult{}, errors.NewInvalidStateError("no practice session is active")
	}
	if e.session.pending {
		return models.GradeResult{}, errors.NewInvalidStateError("an answer is already awaiting reveal")
	}

	card := e.session.current()
	correct := Normalize(raw) == Normalize(card.Answer)

	e.session.pending = true
	e.session.lastResult = correct
	e.session.submitted = raw

	e.log.Debug("graded answer for card %s correct=%t", card.ID, correct)
	return models.GradeResult{
		Correct:   correct,
		Submitted: raw,
		Expected:  card.Answer,
	}, nil
}

// Advance commits the pending judgment: it writes the result through to the
// card's persistent counters, updates the session tally and moves to the
// next card, ending the session after the last one. On a persistence error
// the session is left unchanged with the judgment still pending, so the
// caller can retry.
func (e *Engine) Advance() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return errors.NewInvalidStateError("no practice session is active")
	}
	if !e.session.pending {
		return errors.NewInvalidStateError("no judgment is pending")
	}

	s := e.session
	card := s.current()
	if err := e.catalog.RecordResult(card.ID, s.lastResult); err != nil {
		e.log.Error("failed to persist result for card %s: %v", card.ID, err)
		return err
	}

	if s.lastResult {
		s.correct++
	} else {
		s.incorrect++
	}

	if s.position+1 == len(s.order) {
		s.position++
		e.finishLocked()
		return nil
	}

	s.position++
	s.pending = false
	s.submitted = ""
	return nil
}

// End aborts the active session. The tallies of the partial run are kept for
// the one-shot summary; no further cards are graded. Ending while idle is a
// no-op.
func (e *Engine) End() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return
	}
	e.finishLocked()
}

// finishLocked transitions Active -> Idle and captures the summary.
// Callers must hold the mutex.
func (e *Engine) finishLocked() {
	s := e.session
	e.summary = &models.SessionSummary{
		Correct:   s.correct,
		Incorrect: s.incorrect,
		Total:     len(s.order),
	}
	e.session = nil
	e.log.Info("session ended: correct=%d incorrect=%d of %d", s.correct, s.incorrect, len(s.order))
}

// Snapshot returns a view of the active session for rendering, or false
// when idle.
func (e *Engine) Snapshot() (models.SessionView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return models.SessionView{}, false
	}
	s := e.session
	return models.SessionView{
		Card:       s.current(),
		Position:   s.position,
		Total:      len(s.order),
		Correct:    s.correct,
		Incorrect:  s.incorrect,
		Pending:    s.pending,
		LastResult: s.lastResult,
		Submitted:  s.submitted,
	}, true
}

// ConsumeSummary returns the summary of the most recently finished session
// exactly once. Subsequent calls return false until another session ends.
func (e *Engine) ConsumeSummary() (models.SessionSummary, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.summary == nil {
		return models.SessionSummary{}, false
	}
	summary := *e.summary
	e.summary = nil
	return summary, true
}
