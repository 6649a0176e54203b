package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velmora/brandpulse-backend/internal/http/response"
	"github.com/velmora/brandpulse-backend/internal/services"
)

type ContentHandler struct {
	content services.ContentService
}

func NewContentHandler(content services.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// POST /api/clients/:id/content
func (h *ContentHandler) Save(c *gin.Context) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.SaveReelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	input.ClientID = clientID

	item, err := h.content.SaveDiscoveredReel(c.Request.Context(), input)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "save_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"content": item})
}

// GET /api/clients/:id/content
func (h *ContentHandler) List(c *gin.Context) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.content.ListContent(c.Request.Context(), clientID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"content": items})
}

// DELETE /api/content/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.content.DeleteContent(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// POST /api/content/:id/script
func (h *ContentHandler) GenerateScript(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	script, err := h.content.GenerateScript(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"script": script})
}

// POST /api/clients/:id/markers
func (h *ContentHandler) CreateMarker(c *gin.Context) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.CreateMarkerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	input.ClientID = clientID

	marker, err := h.content.CreateMarker(c.Request.Context(), input)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"marker": marker})
}

// GET /api/clients/:id/markers
func (h *ContentHandler) ListMarkers(c *gin.Context) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}
	markers, err := h.content.ListMarkers(c.Request.Context(), clientID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"markers": markers})
}

// PATCH /api/markers/:id
func (h *ContentHandler) UpdateMarker(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	marker, err := h.content.UpdateMarker(c.Request.Context(), id, updates)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if marker == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", errors.New("marker not found"))
		return
	}
	response.RespondOK(c, gin.H{"marker": marker})
}

// DELETE /api/markers/:id
func (h *ContentHandler) DeleteMarker(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.content.DeleteMarker(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
