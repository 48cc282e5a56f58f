package handler

import (
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/a-h/templ"
	"github.com/msomdec/taskboard/internal/view"
)

// HomeHandler serves non-API GET requests: a file from the static directory
// when one matches, otherwise the entry document.
type HomeHandler struct {
	static fs.FS
}

// NewHomeHandler creates a HomeHandler. An empty staticDir disables static
// file serving.
func NewHomeHandler(staticDir string) *HomeHandler {
	h := &HomeHandler{}
	if staticDir != "" {
		h.static = os.DirFS(staticDir)
	}
	return h
}

// HandleHome serves a static file or the entry document.
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if name, ok := h.staticFile(r.URL.Path); ok {
		http.ServeFileFS(w, r, h.static, name)
		return
	}

	templ.Handler(view.EntryDocument()).ServeHTTP(w, r)
}

// staticFile resolves a URL path to a regular file in the static directory.
func (h *HomeHandler) staticFile(urlPath string) (string, bool) {
	if h.static == nil {
		return "", false
	}
	name := strings.TrimPrefix(urlPath, "/")
	if name == "" || !fs.ValidPath(name) {
		return "", false
	}
	info, err := fs.Stat(h.static, name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return name, true
}

// HandleAPINotFound answers unmatched /api/ routes with a JSON 404.
func HandleAPINotFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, "Not found")
}
