package practice_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arueda/flashdeck/internal/catalog"
	"github.com/arueda/flashdeck/internal/errors"
	"github.com/arueda/flashdeck/internal/practice"
	"github.com/arueda/flashdeck/internal/store"
)

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	s := store.NewFileStore(filepath.Join(t.TempDir(), "flashcards.json"))
	c, err := catalog.Open(s)
	require.NoError(t, err)
	return c
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello   World ", "hello world"},
		{"hello world", "hello world"},
		{"Hello World", "hello world"},
		{"\tINHERITANCE\n", "inheritance"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, practice.Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestStart_EmptyTopic(t *testing.T) {
	c := newCatalog(t)
	_, err := c.Add("q", "a", false, "OOP")
	require.NoError(t, err)

	e := practice.New(c)
	err = e.Start("Algorithms")

	require.Error(t, err)
	assert.True(t, errors.IsEmptyTopic(err))
	assert.False(t, e.Active(), "engine stays idle after a failed start")
}

func TestStart_WhileActive(t *testing.T) {
	c := newCatalog(t)
	_, err := c.Add("q", "a", false, "OOP")
	require.NoError(t, err)

	e := practice.New(c)
	require.NoError(t, e.Start("OOP"))

	err = e.Start("OOP")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidState(err))
}

func TestSubmitAnswer_WhileIdle(t *testing.T) {
	e := practice.New(newCatalog(t))

	_, err := e.SubmitAnswer("anything")

	require.Error(t, err)
	assert.True(t, errors.IsInvalidState(err))
}

func TestSubmitAnswer_DoubleSubmit(t *testing.T) {
	c := newCatalog(t)
	_, err := c.Add("q", "a", false, "OOP")
	require.NoError(t, err)

	e := practice.New(c)
	require.NoError(t, e.Start("OOP"))

	_, err = e.SubmitAnswer("a")
	require.NoError(t, err)

	_, err = e.SubmitAnswer("a")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidState(err))
}

func TestAdvance_WithoutPendingJudgment(t *testing.T) {
	c := newCatalog(t)
	_, err := c.Add("q", "a", false, "OOP")
	require.NoError(t, err)

	e := practice.New(c)

	err = e.Advance()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidState(err), "advance while idle")

	require.NoError(t, e.Start("OOP"))
	err = e.Advance()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidState(err), "advance without a submitted answer")
}

func TestGrading_NormalizationInsensitive(t *testing.T) {
	c := newCatalog(t)
	_, err := c.Add("q", "Hello World", false, "General")
	require.NoError(t, err)

	e := practice.New(c)

	for _, submission := range []string{"  Hello   World ", "hello world", "HELLO\tWORLD"} {
		require.NoError(t, e.Start("General"))
		result, err := e.SubmitAnswer(submission)
		require.NoError(t, err)
		assert.True(t, result.Correct, "submission %q should grade correct", submission)
		e.End()
		e.ConsumeSummary()
	}

	require.NoError(t, e.Start("General"))
	result, err := e.SubmitAnswer("goodbye world")
	require.NoError(t, err)
	assert.False(t, result.Correct, "grading is binary, no partial credit")
}

func TestFullSession_TalliesAndWriteThrough(t *testing.T) {
	c := newCatalog(t)
	answers := map[string]string{}
	for _, card := range []struct{ q, a string }{
		{"What lets a class reuse another's behavior?", "inheritance"},
		{"What lets a subclass extend a base class?", "inheritance"},
		{"What hides internal state behind methods?", "encapsulation"},
	} {
		added, err := c.Add(card.q, card.a, false, "OOP")
		require.NoError(t, err)
		answers[added.ID] = added.Answer
	}

	e := practice.New(c)
	require.NoError(t, e.Start("OOP"))

	// Answer "Inheritance " to every card: correct for the two inheritance
	// cards regardless of shuffle order, wrong for the encapsulation card.
	for i := 0; i < 3; i++ {
		view, ok := e.Snapshot()
		require.True(t, ok)
		assert.Equal(t, i, view.Position)
		assert.Equal(t, 3, view.Total)

		result, err := e.SubmitAnswer("Inheritance ")
		require.NoError(t, err)
		assert.Equal(t, answers[view.Card.ID] == "inheritance", result.Correct)

		require.NoError(t, e.Advance())
	}

	assert.False(t, e.Active(), "engine returns to idle after the last card")

	summary, ok := e.ConsumeSummary()
	require.True(t, ok)
	assert.Equal(t, 2, summary.Correct)
	assert.Equal(t, 1, summary.Incorrect)
	assert.Equal(t, 3, summary.Correct+summary.Incorrect)

	// Per-card counters were written through.
	var correct, incorrect int
	for _, card := range c.All() {
		correct += card.CorrectCount
		incorrect += card.IncorrectCount
		if card.Answer == "inheritance" {
			assert.Equal(t, 1, card.CorrectCount)
			assert.Zero(t, card.IncorrectCount)
		} else {
			assert.Zero(t, card.CorrectCount)
			assert.Equal(t, 1, card.IncorrectCount)
		}
	}
	assert.Equal(t, 2, correct)
	assert.Equal(t, 1, incorrect)
}

func TestSessionInvariant_TalliesMatchPosition(t *testing.T) {
	c := newCatalog(t)
	for i := 0; i < 5; i++ {
		_, err := c.Add("question", "answer", false, "General")
		require.NoError(t, err)
	}

	e := practice.New(c)
	require.NoError(t, e.Start("General"))

	for i := 0; i < 5; i++ {
		_, err := e.SubmitAnswer("answer")
		require.NoError(t, err)
		require.NoError(t, e.Advance())

		if view, ok := e.Snapshot(); ok {
			assert.Equal(t, view.Position, view.Correct+view.Incorrect)
		}
	}
	assert.False(t, e.Active())
}

func TestStart_ShufflesAllCards(t *testing.T) {
	c := newCatalog(t)
	want := map[string]bool{}
	for i := 0; i < 8; i++ {
		card, err := c.Add("question", "answer", false, "General")
		require.NoError(t, err)
		want[card.ID] = true
	}

	e := practice.New(c)
	require.NoError(t, e.Start("General"))

	// Walk the whole session: every card must appear exactly once.
	seen := map[string]bool{}
	for e.Active() {
		view, ok := e.Snapshot()
		require.True(t, ok)
		assert.False(t, seen[view.Card.ID], "card repeated within a session")
		seen[view.Card.ID] = true

		_, err := e.SubmitAnswer("answer")
		require.NoError(t, err)
		require.NoError(t, e.Advance())
	}
	assert.Equal(t, want, seen)
}

func TestEnd_PartialSessionSummary(t *testing.T) {
	c := newCatalog(t)
	for i := 0; i < 4; i++ {
		_, err := c.Add("question", "answer", false, "General")
		require.NoError(t, err)
	}

	e := practice.New(c)
	require.NoError(t, e.Start("General"))

	_, err := e.SubmitAnswer("answer")
	require.NoError(t, err)
	require.NoError(t, e.Advance())
	_, err = e.SubmitAnswer("wrong")
	require.NoError(t, err)
	require.NoError(t, e.Advance())

	e.End()
	assert.False(t, e.Active())

	summary, ok := e.ConsumeSummary()
	require.True(t, ok)
	assert.Equal(t, 1, summary.Correct)
	assert.Equal(t, 1, summary.Incorrect)
	assert.Equal(t, 4, summary.Total)
}

func TestEnd_WhileIdleIsNoOp(t *testing.T) {
	e := practice.New(newCatalog(t))

	e.End()

	assert.False(t, e.Active())
	_, ok := e.ConsumeSummary()
	assert.False(t, ok, "ending an idle engine produces no summary")
}

func TestConsumeSummary_OneShot(t *testing.T) {
	c := newCatalog(t)
	_, err := c.Add("q", "a", false, "OOP")
	require.NoError(t, err)

	e := practice.New(c)
	require.NoError(t, e.Start("OOP"))
	_, err = e.SubmitAnswer("a")
	require.NoError(t, err)
	require.NoError(t, e.Advance())

	_, ok := e.ConsumeSummary()
	require.True(t, ok)
	_, ok = e.ConsumeSummary()
	assert.False(t, ok, "summary is shown exactly once")
}

func TestStart_AllTopicFilter(t *testing.T) {
	c := newCatalog(t)
	_, err := c.Add("q1", "a", false, "OOP")
	require.NoError(t, err)
	_, err = c.Add("q2", "a", false, "Algorithms")
	require.NoError(t, err)

	e := practice.New(c)
	require.NoError(t, e.Start("All"))

	view, ok := e.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 2, view.Total)
	e.End()
}
