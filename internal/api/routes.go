package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/", s.handleHome)
	r.Get("/cards", s.handleCards)
	r.Post("/cards", s.handleCreateCard)
	r.Post("/cards/{id}/edit", s.handleEditCard)
	r.Post("/cards/{id}/delete", s.handleDeleteCard)
	r.Get("/practice", s.handlePractice)
	r.Post("/practice/start", s.handleStartPractice)
	r.Post("/practice/answer", s.handleSubmitAnswer)
	r.Post("/practice/next", s.handleAdvance)
	r.Post("/practice/end", s.handleEndPractice)
	r.Get("/stats", s.handleStats)

	r.Get("/api/cards", s.handleListCardsJSON)
	r.Get("/api/stats", s.handleStatsJSON)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return r
}
