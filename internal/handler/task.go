package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/service"
	"github.com/msomdec/taskboard/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

// TaskHandler handles task CRUD for the authenticated caller. Every route
// it serves sits behind RequireBearer.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// HandleList returns the caller's tasks as a JSON array.
// GET /api/tasks
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing token")
		return
	}

	tasks, err := h.tasks.List(r.Context(), identity.Email)
	if err != nil {
		writeTaskError(w, "list tasks", err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTOs(tasks))
}

// HandleCreate adds a task for the caller.
// POST /api/tasks
// Request:  {"task":"..."}
// Response: {"message":"Task added","task":{...}}
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var req taskRequest
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.tasks.Create(r.Context(), identity.Email, req.Task)
	if err != nil {
		writeTaskError(w, "create task", err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{Message: "Task added", Task: toTaskDTO(*task)})
}

// HandleUpdate replaces the text of one of the caller's tasks.
// PUT /api/tasks/{id}
// Request:  {"task":"..."}
// Response: {"message":"Task updated","task":{...}}
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var req taskRequest
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.tasks.Update(r.Context(), identity.Email, r.PathValue("id"), req.Task)
	if err != nil {
		writeTaskError(w, "update task", err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{Message: "Task updated", Task: toTaskDTO(*task)})
}

// HandleDelete removes one of the caller's tasks.
// DELETE /api/tasks/{id}
// Response: {"message":"Task deleted"}
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing token")
		return
	}

	if err := h.tasks.Delete(r.Context(), identity.Email, r.PathValue("id")); err != nil {
		writeTaskError(w, "delete task", err)
		return
	}

	writeMessage(w, http.StatusOK, "Task deleted")
}

// HandleFragment pushes the caller's rendered task list into #taskList
// over a datastar SSE stream.
// GET /api/tasks/fragment
func (h *TaskHandler) HandleFragment(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing token")
		return
	}

	tasks, err := h.tasks.List(r.Context(), identity.Email)
	if err != nil {
		writeTaskError(w, "list tasks", err)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(
		view.TaskList(tasks),
		datastar.WithSelectorID("taskList"),
		datastar.WithModeInner(),
	); err != nil {
		slog.Error("patch task list", "error", err)
	}
}

func writeTaskError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, "Task content required")
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Task not found")
	default:
		slog.Error(op, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}
