package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/velmora/brandpulse-backend/internal/http/response"
	"github.com/velmora/brandpulse-backend/internal/services"
)

type ClientHandler struct {
	clients    services.ClientService
	enrichment services.EnrichmentService
	discovery  services.DiscoveryService
}

func NewClientHandler(
	clients services.ClientService,
	enrichment services.EnrichmentService,
	discovery services.DiscoveryService,
) *ClientHandler {
	return &ClientHandler{
		clients:    clients,
		enrichment: enrichment,
		discovery:  discovery,
	}
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// POST /api/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var input services.CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	client, err := h.clients.Create(c.Request.Context(), input)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"client": client})
}

// GET /api/clients
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"clients": clients})
}

// GET /api/clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if client == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", errors.New("client not found"))
		return
	}
	response.RespondOK(c, gin.H{"client": client})
}

// GET /api/clients/:id/dashboard
func (h *ClientHandler) Dashboard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	dash, err := h.clients.GetDashboard(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if dash == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", errors.New("client not found"))
		return
	}
	response.RespondOK(c, dash)
}

// PATCH /api/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	client, err := h.clients.Update(c.Request.Context(), id, updates)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if client == nil {
		response.RespondError(c, http.StatusNotFound, "not_found", errors.New("client not found"))
		return
	}
	response.RespondOK(c, gin.H{"client": client})
}

// DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// GET /api/clients/:id/growth
func (h *ClientHandler) Growth(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	points, err := h.clients.GetFollowersGrowth(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"growth": points})
}

// POST /api/clients/:id/enrich
func (h *ClientHandler) Enrich(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	client, err := h.enrichment.Enrich(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			response.RespondError(c, http.StatusNotFound, "profile_not_found", err)
			return
		}
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"client": client})
}

// GET /api/clients/:id/enrichment-runs
func (h *ClientHandler) EnrichmentRuns(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	runs, err := h.enrichment.ListRuns(c.Request.Context(), id, 20)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"runs": runs})
}

// POST /api/clients/:id/discover
func (h *ClientHandler) Discover(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	result, err := h.discovery.Discover(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}
