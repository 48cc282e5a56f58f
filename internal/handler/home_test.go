package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msomdec/taskboard/internal/handler"
)

func newHomeServer(t *testing.T, staticDir string) *httptest.Server {
	t.Helper()
	auth, tasks, db := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, tasks, db, staticDir)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func getBody(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestHandleHome_EntryDocument(t *testing.T) {
	srv := newHomeServer(t, "")

	for _, path := range []string{"/", "/dashboard", "/some/deep/link"} {
		resp, body := getBody(t, srv.URL+path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
		if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
			t.Fatalf("GET %s: expected HTML, got %s", path, resp.Header.Get("Content-Type"))
		}
		if !strings.Contains(body, `id="taskList"`) {
			t.Fatalf("GET %s: expected entry document, got %s", path, body)
		}
	}
}

func TestHandleHome_StaticFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "scripts.js"), []byte("console.log('hi');"), 0o644); err != nil {
		t.Fatalf("write static file: %v", err)
	}
	srv := newHomeServer(t, dir)

	resp, body := getBody(t, srv.URL+"/scripts.js")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body != "console.log('hi');" {
		t.Fatalf("unexpected static body %q", body)
	}

	// Missing files fall back to the entry document.
	resp, body = getBody(t, srv.URL+"/missing.js")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `id="taskList"`) {
		t.Fatalf("expected entry document fallback, got %d %s", resp.StatusCode, body)
	}
}

func TestHandleHome_MethodNotAllowed(t *testing.T) {
	srv := newHomeServer(t, "")

	resp, err := http.Post(srv.URL+"/dashboard", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST /dashboard: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestHandleAPINotFound(t *testing.T) {
	srv := newHomeServer(t, "")

	resp, body := getBody(t, srv.URL+"/api/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("expected JSON, got %s", resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(body, `"message":"Not found"`) {
		t.Fatalf("unexpected body %s", body)
	}
}
