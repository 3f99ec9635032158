package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinassist/clinrag/internal/engine"
	"github.com/clinassist/clinrag/internal/registry"
)

// genericFailure is the non-leaky message returned for dependency and
// storage failures; details go to the server log only.
const genericFailure = "El servicio no pudo procesar la solicitud en este momento."

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Consulta inválida.")
		return
	}

	history := make([]engine.Turn, 0, len(req.ChatHistory))
	for _, t := range req.ChatHistory {
		history = append(history, engine.Turn{Role: t.Role, Content: t.Content})
	}

	res, err := s.engine.Ask(r.Context(), req.Question, history)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	resp := askResponse{
		Answer:   res.Answer,
		Evidence: make([]evidencePayload, 0, len(res.Evidence)),
	}
	for _, ev := range res.Evidence {
		resp.Evidence = append(resp.Evidence, evidencePayload{
			Text:  ev.Text,
			Score: ev.Score,
			Title: ev.Title,
			Page:  ev.Page,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Documento inválido.")
		return
	}

	doc, existed, err := s.registry.Upload(r.Context(), req.Title, req.Topic, req.Content)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	if existed {
		writeJSON(w, http.StatusOK, uploadResponse{
			Message:    "El documento ya se encontraba en la base de datos.",
			DocumentID: doc.ID,
		})
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{
		Message:    "El documento fue cargado correctamente.",
		DocumentID: doc.ID,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	chunks, err := s.engine.IndexDocument(r.Context(), id)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, indexResponse{
		Message:    "Embeddings generados correctamente para el documento.",
		DocumentID: id,
		Chunks:     chunks,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.registry.List(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	type docItem struct {
		DocumentID string `json:"document_id"`
		Title      string `json:"title"`
		Topic      string `json:"topic"`
		Indexed    bool   `json:"indexed"`
	}
	items := make([]docItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, docItem{
			DocumentID: d.ID,
			Title:      d.Title,
			Topic:      d.Topic,
			Indexed:    d.Indexed(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": items})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := s.engine.Search(r.Context(), query)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	resp := searchResponse{Results: make([]searchItem, 0, len(results))}
	for _, res := range results {
		resp.Results = append(resp.Results, searchItem{
			DocumentID: res.DocumentID,
			Title:      res.Title,
			Snippet:    res.Snippet,
			Score:      res.Score,
			Grounded:   res.Grounded,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeFailure maps error kinds to HTTP status codes. Validation errors
// are user-correctable; everything else is reported generically and
// logged with detail.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, engine.ErrEmptyQuestion):
		writeError(w, http.StatusUnprocessableEntity, "Consulta inválida.")
	case errors.Is(err, registry.ErrInvalidDocument):
		writeError(w, http.StatusUnprocessableEntity, "Documento inválido: el título y el contenido son obligatorios.")
	case errors.Is(err, registry.ErrNotFound):
		writeError(w, http.StatusNotFound, "Documento no encontrado.")
	default:
		log.Printf("server: %s %s failed: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, genericFailure)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
