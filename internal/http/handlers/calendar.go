package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velmora/brandpulse-backend/internal/http/response"
	"github.com/velmora/brandpulse-backend/internal/services"
)

type CalendarHandler struct {
	calendar services.CalendarService
}

func NewCalendarHandler(calendar services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// POST /api/clients/:id/calendar
func (h *CalendarHandler) Schedule(c *gin.Context) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	input.ClientID = clientID

	events, err := h.calendar.Schedule(c.Request.Context(), input)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "schedule_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"events": events})
}

// GET /api/clients/:id/calendar
func (h *CalendarHandler) List(c *gin.Context) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}
	events, err := h.calendar.List(c.Request.Context(), clientID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"events": events})
}

// DELETE /api/calendar/:id?group=true
func (h *CalendarHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleteGroup := c.Query("group") == "true"
	if err := h.calendar.Delete(c.Request.Context(), id, deleteGroup); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

type editRecurrenceBody struct {
	StartAt    time.Time           `json:"start_at"`
	Recurrence services.Recurrence `json:"recurrence"`
}

// PUT /api/calendar/:id/recurrence
func (h *CalendarHandler) EditRecurrence(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body editRecurrenceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	events, err := h.calendar.EditRecurrence(c.Request.Context(), id, body.StartAt, body.Recurrence)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "edit_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"events": events})
}

type statusBody struct {
	Status string `json:"status"`
}

// PATCH /api/calendar/:id/status
func (h *CalendarHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body statusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	event, err := h.calendar.UpdateStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "update_failed", err)
		return
	}
	if event == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}
	response.RespondOK(c, gin.H{"event": event})
}
