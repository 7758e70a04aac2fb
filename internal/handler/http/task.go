package http

import (
	"net/http"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/task"
	"github.com/cmlabs-hris/employee-management-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TaskHandler interface {
	Assign(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Start(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	Logs(w http.ResponseWriter, r *http.Request)

	ManagerCreate(w http.ResponseWriter, r *http.Request)
	ManagerList(w http.ResponseWriter, r *http.Request)
	ManagerUpdate(w http.ResponseWriter, r *http.Request)
	ManagerDelete(w http.ResponseWriter, r *http.Request)
}

type taskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &taskHandlerImpl{taskService: taskService}
}

// Assign implements TaskHandler.
func (h *taskHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req task.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.taskService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task assigned", created)
}

// ListMine implements TaskHandler.
func (h *taskHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var status *task.Status
	if s := r.URL.Query().Get("status"); s != "" {
		st := task.Status(s)
		status = &st
	}

	tasks, err := h.taskService.ListMyTasks(r.Context(), actor.AccountID, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tasks)
}

// Start implements TaskHandler.
func (h *taskHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	started, err := h.taskService.Start(r.Context(), actor.AccountID, chi.URLParam(r, "taskID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task started", started)
}

// Complete implements TaskHandler.
func (h *taskHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req task.CompleteTaskRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	completed, err := h.taskService.Complete(r.Context(), actor.AccountID, chi.URLParam(r, "taskID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task completed", completed)
}

// Logs implements TaskHandler.
func (h *taskHandlerImpl) Logs(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	logs, err := h.taskService.GetLogs(r.Context(), actor.AccountID, chi.URLParam(r, "taskID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

// ManagerCreate implements TaskHandler.
func (h *taskHandlerImpl) ManagerCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req task.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.taskService.CreateTask(r.Context(), actor.AccountID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task created", created)
}

// ManagerList implements TaskHandler.
func (h *taskHandlerImpl) ManagerList(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListManagerTasks(r.Context(), actor.AccountID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tasks)
}

// ManagerUpdate implements TaskHandler.
func (h *taskHandlerImpl) ManagerUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req task.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.taskService.UpdateTask(r.Context(), actor.AccountID, chi.URLParam(r, "taskID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task updated", updated)
}

// ManagerDelete implements TaskHandler.
func (h *taskHandlerImpl) ManagerDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), actor.AccountID, chi.URLParam(r, "taskID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task deleted", nil)
}
