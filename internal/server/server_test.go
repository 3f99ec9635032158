package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clinassist/clinrag/internal/embeddings"
	"github.com/clinassist/clinrag/internal/engine"
	"github.com/clinassist/clinrag/internal/llm"
	"github.com/clinassist/clinrag/internal/registry"
	"github.com/clinassist/clinrag/internal/vectordb"
)

// memStore is an in-memory Store that returns whatever was added with a
// fixed high similarity.
type memStore struct {
	docs []vectordb.Document
}

func (s *memStore) Add(_ context.Context, docs []vectordb.Document) error {
	s.docs = append(s.docs, docs...)
	return nil
}

func (s *memStore) Query(_ context.Context, _ []float32, k int, topic string) ([]vectordb.Result, error) {
	var out []vectordb.Result
	for _, d := range s.docs {
		if topic != "" && d.Metadata.Topic != topic {
			continue
		}
		out = append(out, vectordb.Result{Document: d, Similarity: 0.9})
		if len(out) == k {
			break
		}
	}
	return out, nil
}

func (s *memStore) Count() int { return len(s.docs) }

type constEmbedder struct{}

func (constEmbedder) Embed(_ context.Context, texts []string, _ embeddings.InputMode) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0, 0}
	}
	return out, nil
}

func (constEmbedder) Dimensions() int { return 4 }
func (constEmbedder) Name() string    { return "const" }

// scriptedProvider pops one reply per completion call.
type scriptedProvider struct {
	replies []string
}

func (p *scriptedProvider) Complete(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
	reply := "OTRO"
	if len(p.replies) > 0 {
		reply = p.replies[0]
		p.replies = p.replies[1:]
	}
	return &llm.CompletionResponse{Content: reply}, nil
}

func (p *scriptedProvider) Name() string { return "scripted" }

func newTestServer(t *testing.T, provider llm.Provider) *Server {
	t.Helper()
	reg, err := registry.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { reg.Close() })

	eng := engine.New(&memStore{}, constEmbedder{}, provider, reg, engine.Options{Model: "test"})
	return New(Config{Port: 0}, eng, reg)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, &scriptedProvider{})

	w := doJSON(t, srv, "GET", "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	srv := newTestServer(t, &scriptedProvider{})

	w := doJSON(t, srv, "POST", "/ask", askRequest{Question: "   "})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestAskGreeting(t *testing.T) {
	srv := newTestServer(t, &scriptedProvider{replies: []string{"SALUDO"}})

	w := doJSON(t, srv, "POST", "/ask", askRequest{Question: "Hola"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp askResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Answer == "" {
		t.Error("expected the fixed greeting answer")
	}
	if len(resp.Evidence) != 0 {
		t.Errorf("greeting must carry no evidence, got %d", len(resp.Evidence))
	}
}

func TestUploadIsIdempotent(t *testing.T) {
	srv := newTestServer(t, &scriptedProvider{})
	body := uploadRequest{Title: "Guía HTA", Topic: "HTA", Content: "contenido de la guía"}

	w := doJSON(t, srv, "POST", "/documents", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("first upload: expected 201, got %d", w.Code)
	}
	var first uploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	w = doJSON(t, srv, "POST", "/documents", body)
	if w.Code != http.StatusOK {
		t.Fatalf("second upload: expected 200, got %d", w.Code)
	}
	var second uploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if first.DocumentID != second.DocumentID {
		t.Errorf("document ids differ: %s vs %s", first.DocumentID, second.DocumentID)
	}
}

func TestUploadRejectsBlankDocument(t *testing.T) {
	srv := newTestServer(t, &scriptedProvider{})

	w := doJSON(t, srv, "POST", "/documents", uploadRequest{Title: " ", Content: "algo"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestIndexUnknownDocument(t *testing.T) {
	srv := newTestServer(t, &scriptedProvider{})

	w := doJSON(t, srv, "POST", "/documents/inexistente/index", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestUploadIndexSearchFlow(t *testing.T) {
	srv := newTestServer(t, &scriptedProvider{})

	w := doJSON(t, srv, "POST", "/documents", uploadRequest{
		Title:   "Guía HTA",
		Topic:   "HTA",
		Content: "La meta de presión arterial es 140/90 mmHg.",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d", w.Code)
	}
	var up uploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &up); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	w = doJSON(t, srv, "POST", "/documents/"+up.DocumentID+"/index", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("index: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, "GET", "/search?q=presion+arterial", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search: expected 200, got %d", w.Code)
	}
	var resp searchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Results) == 0 {
		t.Fatal("expected search results after indexing")
	}
	if !resp.Results[0].Grounded {
		t.Error("high-similarity hit should be grounded")
	}
	if resp.Results[0].DocumentID != up.DocumentID {
		t.Errorf("result document id %q, want %q", resp.Results[0].DocumentID, up.DocumentID)
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	srv := newTestServer(t, &scriptedProvider{})

	w := doJSON(t, srv, "GET", "/search", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	reg, err := registry.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer reg.Close()

	eng := engine.New(&memStore{}, constEmbedder{}, &scriptedProvider{}, reg, engine.Options{})
	srv := New(Config{Port: 0, AllowAll: true}, eng, reg)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}
