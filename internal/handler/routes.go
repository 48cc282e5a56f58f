package handler

import (
	"net/http"

	"github.com/msomdec/taskboard/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, tasks *service.TaskService, store Pinger, staticDir string) {
	authHandler := NewAuthHandler(auth)
	taskHandler := NewTaskHandler(tasks)
	healthHandler := NewHealthHandler(store)
	homeHandler := NewHomeHandler(staticDir)

	// Public.
	mux.HandleFunc("GET /healthz", healthHandler.HandleHealthz)
	mux.HandleFunc("POST /api/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/login", authHandler.HandleLogin)

	// Bearer-protected.
	protected := func(h http.HandlerFunc) http.Handler {
		return RequireBearer(auth, h)
	}
	mux.Handle("GET /api/tasks", protected(taskHandler.HandleList))
	mux.Handle("POST /api/tasks", protected(taskHandler.HandleCreate))
	mux.Handle("GET /api/tasks/fragment", protected(taskHandler.HandleFragment))
	mux.Handle("PUT /api/tasks/{id}", protected(taskHandler.HandleUpdate))
	mux.Handle("DELETE /api/tasks/{id}", protected(taskHandler.HandleDelete))

	mux.HandleFunc("/api/", HandleAPINotFound)
	mux.HandleFunc("/", homeHandler.HandleHome)
}
