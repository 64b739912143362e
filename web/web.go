// Package web serves the calculator form.
package web

import (
	"bytes"
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"

	"polygon-calculator/domain"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type page struct {
	Units    []domain.Unit
	Endpoint string
}

// Handler renders the form once and serves it on GET / .
type Handler struct {
	body []byte
}

// NewHandler renders the form posting to endpoint.
func NewHandler(endpoint string) (*Handler, error) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page{Units: domain.Units, Endpoint: endpoint}); err != nil {
		return nil, err
	}
	return &Handler{body: buf.Bytes()}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(h.body); err != nil {
		slog.Warn("failed to write form", "error", err)
	}
}
