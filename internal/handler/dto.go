package handler

import "github.com/msomdec/taskboard/internal/domain"

// TaskDTO is the JSON representation of a task.
type TaskDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Task  string `json:"task"`
}

func toTaskDTO(t domain.Task) TaskDTO {
	return TaskDTO{
		ID:    t.ID,
		Email: t.OwnerEmail,
		Task:  t.Text,
	}
}

func toTaskDTOs(tasks []domain.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = toTaskDTO(t)
	}
	return dtos
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type taskRequest struct {
	Task string `json:"task"`
}

type taskResponse struct {
	Message string  `json:"message"`
	Task    TaskDTO `json:"task"`
}
