package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harrisonrobin/tasksheet/pkg/authz"
	"github.com/harrisonrobin/tasksheet/pkg/google"
	"github.com/harrisonrobin/tasksheet/pkg/store"
	"github.com/harrisonrobin/tasksheet/pkg/tasks"
	"github.com/pkg/errors"
)

type handler struct {
	svc *tasks.Service
}

func (h *handler) listTasks(c *gin.Context) {
	listing, err := h.svc.List(c.Request.Context())
	if err != nil {
		errorResp(c, err, "Failed to fetch data from Google Sheets: ")
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *handler) updateStatus(c *gin.Context) {
	var in tasks.UpdateStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errorStrResp(c, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	name, err := h.svc.UpdateStatus(c.Request.Context(), in)
	if err != nil {
		errorResp(c, err, "Failed to update Google Sheet: ")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updaterName": name})
}

func (h *handler) createTask(c *gin.Context) {
	var in tasks.CreateTaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errorStrResp(c, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	name, id, err := h.svc.CreateTask(c.Request.Context(), in)
	if err != nil {
		errorResp(c, err, "Failed to create task in Google Sheet: ")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "creatorName": name, "taskId": id})
}

// errorResp maps service errors onto status codes. prefix is put in front of
// upstream failures.
func errorResp(c *gin.Context, err error, prefix string) {
	var upstream *tasks.UpstreamError
	switch {
	case errors.Is(err, store.ErrConfigurationMissing):
		errorStrResp(c, store.ErrConfigurationMissing.Error(), http.StatusInternalServerError)
	case errors.Is(err, tasks.ErrNoData):
		errorStrResp(c, tasks.ErrNoData.Error(), http.StatusNotFound)
	case errors.Is(err, tasks.ErrTaskNotFound):
		errorStrResp(c, err.Error(), http.StatusNotFound)
	case errors.Is(err, tasks.ErrValidation):
		errorStrResp(c, err.Error(), http.StatusBadRequest)
	case errors.Is(err, authz.ErrUnauthorized):
		errorStrResp(c, authz.ErrUnauthorized.Error(), http.StatusUnauthorized)
	case errors.As(err, &upstream):
		entry := requestLog(c).WithError(upstream.Err).WithField("op", upstream.Op)
		entry.Error("store call failed")
		if hint := google.Hint(upstream.Err); hint != "" {
			entry.Error(hint)
		}
		errorStrResp(c, prefix+upstream.Err.Error(), http.StatusInternalServerError)
	default:
		requestLog(c).Errorf("%+v", err)
		errorStrResp(c, prefix+err.Error(), http.StatusInternalServerError)
	}
}

func errorStrResp(c *gin.Context, msg string, code int) {
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}
