// Package http exposes playback sessions and the explanation library as a
// JSON API with an SSE frame stream per session.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lumilearn/chalkboard"
	"github.com/lumilearn/chalkboard/internal/metrics"
	"github.com/lumilearn/chalkboard/pkg/annotate"
	"github.com/lumilearn/chalkboard/pkg/explanation"
	"github.com/lumilearn/chalkboard/pkg/ports"
)

// Server wires the playback engine, the explanation library and the
// metrics collectors behind a chi router.
type Server struct {
	library  ports.Library
	logger   *slog.Logger
	metrics  *metrics.Metrics
	registry *registry
}

// NewServer creates the server. The metrics argument may be nil.
func NewServer(lib ports.Library, logger *slog.Logger, m *metrics.Metrics) *Server {
	return &Server{
		library:  lib,
		logger:   logger,
		metrics:  m,
		registry: newRegistry(),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/explanations", func(r chi.Router) {
		r.Get("/", s.listExplanations)
		r.Put("/{id}", s.putExplanation)
		r.Get("/{id}", s.getExplanation)
		r.Delete("/{id}", s.deleteExplanation)
	})

	r.Post("/annotate", s.annotate)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Get("/{id}", s.getSession)
		r.Delete("/{id}", s.deleteSession)
		r.Post("/{id}/toggle", s.sessionControl(func(p *chalkboard.Player) { p.TogglePlay() }))
		r.Post("/{id}/next", s.sessionControl(func(p *chalkboard.Player) { p.Next() }))
		r.Post("/{id}/prev", s.sessionControl(func(p *chalkboard.Player) { p.Prev() }))
		r.Post("/{id}/goto", s.gotoStep)
		r.Get("/{id}/frames", s.streamFrames)
	})

	return r
}

// Close tears down every live session.
func (s *Server) Close() {
	s.registry.closeAll()
}

// --- explanation library ---

func (s *Server) putExplanation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := explanation.DecodeJSON(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.library.Put(r.Context(), id, e); err != nil {
		s.logger.Error("put explanation", "err", err, "id", id)
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getExplanation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := s.library.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, explanation.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		s.logger.Error("get explanation", "err", err, "id", id)
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, e)
}

func (s *Server) deleteExplanation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.library.Delete(r.Context(), id); err != nil {
		s.logger.Error("delete explanation", "err", err, "id", id)
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listExplanations(w http.ResponseWriter, r *http.Request) {
	ids, err := s.library.List(r.Context())
	if err != nil {
		s.logger.Error("list explanations", "err", err)
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, map[string]any{"ids": ids})
}

// --- annotate ---

type annotateRequest struct {
	Text       string                  `json:"text"`
	Directives []explanation.Directive `json:"directives"`
}

func (s *Server) annotate(w http.ResponseWriter, r *http.Request) {
	var req annotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	segs := annotate.Segments(req.Text, req.Directives)

	if s.metrics != nil {
		matched := 0
		for _, seg := range segs {
			if seg.Matched {
				matched++
			}
		}
		usable := 0
		for _, d := range req.Directives {
			if strings.TrimSpace(d.Text) != "" {
				usable++
			}
		}
		s.metrics.DirectiveLookups.WithLabelValues("matched").Add(float64(matched))
		s.metrics.DirectiveLookups.WithLabelValues("unmatched").Add(float64(usable - matched))
	}

	s.writeJSON(w, map[string]any{"segments": segs})
}

// --- sessions ---

type createSessionRequest struct {
	// Explanation carries the payload inline.
	Explanation *explanation.Explanation `json:"explanation,omitempty"`
	// ExplanationID loads the payload from the library instead.
	ExplanationID string `json:"explanation_id,omitempty"`
}

type createSessionResponse struct {
	ID       string              `json:"id"`
	Snapshot chalkboard.Snapshot `json:"snapshot"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	expl := req.Explanation
	if expl == nil && req.ExplanationID != "" {
		var err error
		expl, err = s.library.Get(r.Context(), req.ExplanationID)
		if err != nil {
			if errors.Is(err, explanation.ErrNotFound) {
				http.Error(w, "unknown explanation_id", http.StatusNotFound)
				return
			}
			s.logger.Error("load explanation", "err", err, "id", req.ExplanationID)
			http.Error(w, "store error", http.StatusInternalServerError)
			return
		}
	}
	if expl == nil {
		http.Error(w, "explanation or explanation_id required", http.StatusBadRequest)
		return
	}

	sess := newSession(newSessionID())
	sess.player = chalkboard.New(expl,
		chalkboard.WithLogger(s.logger.With("session", sess.id)),
		chalkboard.WithHooks(s.sessionHooks(sess)),
	)
	s.registry.add(sess)

	if s.metrics != nil {
		s.metrics.SessionsStarted.Inc()
	}
	s.logger.Info("session created", "session", sess.id, "steps", sess.player.StepCount())

	s.writeJSON(w, createSessionResponse{ID: sess.id, Snapshot: sess.player.Snapshot()})
}

// sessionHooks fans playback events out to SSE subscribers and metrics.
func (s *Server) sessionHooks(sess *session) chalkboard.Hooks {
	return chalkboard.Hooks{
		OnStepEnter: func(e chalkboard.StepEvent) {
			if s.metrics != nil {
				stepType := e.Step.Type
				if stepType == "" {
					stepType = "step"
				}
				s.metrics.StepEnters.WithLabelValues(stepType).Inc()
			}
			sess.publish("step_enter", e)
		},
		OnStepLeave: func(e chalkboard.StepEvent) {
			// Directives are guaranteed empty here; subscribers use
			// this to clear stale highlights.
			sess.publish("step_leave", e)
		},
		OnPlayChange: func(playing bool) {
			sess.publish("play_change", map[string]bool{"playing": playing})
		},
		OnReveal: func(snap chalkboard.Snapshot) {
			sess.publish("frame", snap)
		},
	}
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.registry.get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, sess.player.Snapshot())
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.registry.remove(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	sess.close()
	w.WriteHeader(http.StatusNoContent)
}

// sessionControl adapts a parameterless player action into a handler that
// responds with the fresh snapshot.
func (s *Server) sessionControl(action func(*chalkboard.Player)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.registry.get(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		action(sess.player)
		s.writeJSON(w, sess.player.Snapshot())
	}
}

func (s *Server) gotoStep(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.registry.get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	var body struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	sess.player.GoToStep(body.Index)
	s.writeJSON(w, sess.player.Snapshot())
}

// streamFrames serves the session's event stream over SSE.
func (s *Server) streamFrames(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.registry.get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := sess.subscribe()
	defer sess.unsubscribe(ch)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case data, open := <-ch:
			if !open {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}
