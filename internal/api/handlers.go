package api

import (
	goerrors "errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/arueda/flashdeck/internal/catalog"
	"github.com/arueda/flashdeck/internal/errors"
	"github.com/arueda/flashdeck/internal/logger"
	"github.com/arueda/flashdeck/internal/models"
	"github.com/arueda/flashdeck/internal/practice"
	"github.com/arueda/flashdeck/internal/stats"
)

type Server struct {
	Catalog   *catalog.Catalog
	Engine    *practice.Engine
	Templates *template.Template
}

type pageData map[string]any

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering home page")

	cards := s.Catalog.All()
	s.render(w, r, "pages/home.html", pageData{
		"total_cards": len(cards),
		"summary":     stats.Summary(cards),
		"active":      s.Engine.Active(),
	})
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	topic := r.URL.Query().Get("topic")
	query := r.URL.Query().Get("q")

	log.Debug("listing cards: topic=%q query=%q", topic, query)
	cards := s.Catalog.Filter(topic, query)

	s.render(w, r, "pages/cards.html", pageData{
		"cards":  cards,
		"topics": models.Topics,
		"topic":  topic,
		"query":  query,
	})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	question := r.FormValue("question")
	answer := r.FormValue("answer")
	topic := r.FormValue("topic")
	isCode := r.FormValue("answer_type") == "code"

	card, err := s.Catalog.Add(question, answer, isCode, topic)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("card created: id=%s topic=%s", card.ID, card.Topic)
	http.Redirect(w, r, "/cards", http.StatusSeeOther)
}

func (s *Server) handleEditCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	err := s.Catalog.Edit(id, r.FormValue("question"), r.FormValue("answer"), r.FormValue("topic"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("card edited: id=%s", id)
	http.Redirect(w, r, "/cards", http.StatusSeeOther)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	// Delete is idempotent, so a re-submitted form is harmless.
	if err := s.Catalog.Delete(id); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("card deleted: id=%s", id)
	http.Redirect(w, r, "/cards", http.StatusSeeOther)
}

func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if view, ok := s.Engine.Snapshot(); ok {
		log.Debug("rendering active session: position=%d of %d", view.Position, view.Total)
		s.render(w, r, "pages/practice.html", pageData{
			"view": view,
		})
		return
	}

	data := pageData{
		"topics":      append([]string{models.TopicAll}, models.Topics...),
		"total_cards": s.Catalog.Len(),
	}
	// The summary of the just-finished session is shown exactly once.
	if summary, ok := s.Engine.ConsumeSummary(); ok {
		data["summary"] = summary
	}
	s.render(w, r, "pages/practice.html", data)
}

func (s *Server) handleStartPractice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	topic := r.FormValue("topic")

	if err := s.Engine.Start(topic); err != nil {
		var appErr *errors.AppError
		if goerrors.As(err, &appErr) && appErr.Code == errors.ErrCodeEmptyTopic {
			log.Warn("practice start with empty topic: %s", topic)
			s.render(w, r, "pages/practice.html", pageData{
				"topics":      append([]string{models.TopicAll}, models.Topics...),
				"total_cards": s.Catalog.Len(),
				"error":       appErr.Message,
			})
			return
		}
		handleError(w, r, err)
		return
	}

	log.Info("practice session started: topic=%s", topic)
	http.Redirect(w, r, "/practice", http.StatusSeeOther)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	result, err := s.Engine.SubmitAnswer(r.FormValue("answer"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("answer submitted: correct=%t", result.Correct)
	http.Redirect(w, r, "/practice", http.StatusSeeOther)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := s.Engine.Advance(); err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("advanced to next card")
	http.Redirect(w, r, "/practice", http.StatusSeeOther)
}

func (s *Server) handleEndPractice(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	s.Engine.End()
	log.Info("practice session ended by user")
	http.Redirect(w, r, "/practice", http.StatusSeeOther)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering statistics page")

	cards := s.Catalog.All()
	s.render(w, r, "pages/stats.html", pageData{
		"summary": stats.Summary(cards),
		"topics":  stats.TopicCounts(cards),
		"hardest": stats.HardestCards(cards, 5),
	})
}

func (s *Server) handleListCardsJSON(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	query := r.URL.Query().Get("q")
	writeJSON(w, r, http.StatusOK, s.Catalog.Filter(topic, query))
}

func (s *Server) handleStatsJSON(w http.ResponseWriter, r *http.Request) {
	k := 5
	if v, err := strconv.Atoi(r.URL.Query().Get("k")); err == nil && v > 0 {
		k = v
	}

	cards := s.Catalog.All()
	writeJSON(w, r, http.StatusOK, map[string]any{
		"summary": stats.Summary(cards),
		"topics":  stats.TopicCounts(cards),
		"hardest": stats.HardestCards(cards, k),
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}

	log := logger.FromContext(r.Context())
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
