package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hufschlaeger.net/task-records/internal/domain/records"
	"hufschlaeger.net/task-records/internal/notify"
	"hufschlaeger.net/task-records/internal/repository/categories"
)

const maxBodySize = 1 << 20 // 1MB

var errTitleRequired = errors.New("title is required")

// response ist die gemeinsame Hülle aller API-Antworten
type response struct {
	Data          interface{}      `json:"data"`
	Error         string           `json:"error,omitempty"`
	Notifications []notify.Message `json:"notifications"`
}

func respond(c *gin.Context, status int, data interface{}, err error, n *notify.Collector) {
	body := response{Data: data, Notifications: n.Messages()}
	if err != nil {
		body.Error = err.Error()
	}
	c.JSON(status, body)
}

// statusFor bildet die Fehlerarten der Repositories auf HTTP-Status ab
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, records.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, records.ErrInvalidDueDate), errors.Is(err, errTitleRequired):
		return http.StatusBadRequest
	case errors.Is(err, records.ErrTransportFailure):
		return http.StatusServiceUnavailable
	case errors.Is(err, records.ErrServiceFailure),
		errors.Is(err, records.ErrCreationFailed),
		errors.Is(err, records.ErrUpdateFailed),
		errors.Is(err, records.ErrDeletionFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, response{
			Error:         "invalid id",
			Notifications: []notify.Message{},
		})
		return 0, false
	}
	return id, true
}

func bindInput(c *gin.Context, dst interface{}) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, response{
			Error:         "invalid request body: " + err.Error(),
			Notifications: []notify.Message{},
		})
		return false
	}
	return true
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleReady prüft die Verbindung zum Record Store
func (s *Server) handleReady(c *gin.Context) {
	if err := s.factory.Client().ValidateConnection(c.Request.Context(), categories.TableName); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Tasks

func (s *Server) handleListTasks(c *gin.Context) {
	n := notify.NewCollector()
	list, err := s.taskRepo(n).GetAll(c.Request.Context())
	respond(c, statusFor(err), list, err, n)
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	n := notify.NewCollector()
	task, err := s.taskRepo(n).GetByID(c.Request.Context(), id)
	if err == nil && task == nil {
		err = records.ErrNotFound
	}
	respond(c, statusFor(err), task, err, n)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var in records.TaskInput
	if !bindInput(c, &in) {
		return
	}

	n := notify.NewCollector()
	if strings.TrimSpace(in.ResolvedTitle()) == "" {
		respond(c, http.StatusBadRequest, nil, errTitleRequired, n)
		return
	}

	task, err := s.taskRepo(n).Create(c.Request.Context(), in)
	if err != nil {
		respond(c, statusFor(err), nil, err, n)
		return
	}
	n.Success("Task created successfully")
	respond(c, http.StatusCreated, task, nil, n)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in records.TaskInput
	if !bindInput(c, &in) {
		return
	}

	n := notify.NewCollector()
	// Teil-Updates ohne Titel sind erlaubt, ein leerer Titel nicht
	if (in.Title != nil || in.LegacyTitle != nil) && strings.TrimSpace(in.ResolvedTitle()) == "" {
		respond(c, http.StatusBadRequest, nil, errTitleRequired, n)
		return
	}

	task, err := s.taskRepo(n).Update(c.Request.Context(), id, in)
	if err != nil {
		respond(c, statusFor(err), nil, err, n)
		return
	}
	n.Success("Task updated successfully")
	respond(c, http.StatusOK, task, nil, n)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	n := notify.NewCollector()
	deleted, err := s.taskRepo(n).Delete(c.Request.Context(), id)
	respond(c, statusFor(err), gin.H{"deleted": deleted}, err, n)
}

func (s *Server) handleToggleTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	n := notify.NewCollector()
	task, err := s.taskRepo(n).ToggleComplete(c.Request.Context(), id)
	respond(c, statusFor(err), task, err, n)
}

// handleReorderTasks erwartet die Tasks in der neuen Reihenfolge
func (s *Server) handleReorderTasks(c *gin.Context) {
	var list []records.Task
	if !bindInput(c, &list) {
		return
	}

	n := notify.NewCollector()
	for _, task := range list {
		if task.ID <= 0 {
			respond(c, http.StatusBadRequest, nil, errors.New("every task needs an Id"), n)
			return
		}
	}

	result, err := s.taskRepo(n).ReorderTasks(c.Request.Context(), list)
	respond(c, statusFor(err), result, err, n)
}

// Categories

func (s *Server) handleListCategories(c *gin.Context) {
	n := notify.NewCollector()
	list, err := s.categoryRepo(n).GetAll(c.Request.Context())
	respond(c, statusFor(err), list, err, n)
}

func (s *Server) handleGetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	n := notify.NewCollector()
	category, err := s.categoryRepo(n).GetByID(c.Request.Context(), id)
	if err == nil && category == nil {
		respond(c, http.StatusNotFound, nil, errors.New("category not found"), n)
		return
	}
	respond(c, statusFor(err), category, err, n)
}
