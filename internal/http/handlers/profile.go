package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/velmora/brandpulse-backend/internal/http/response"
	"github.com/velmora/brandpulse-backend/internal/services"
)

type ProfileHandler struct {
	profiles services.ProfileService
}

func NewProfileHandler(profiles services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// POST /api/clients/:id/profiles
func (h *ProfileHandler) Add(c *gin.Context) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.AddProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	input.ClientID = clientID

	profile, err := h.profiles.Add(c.Request.Context(), input)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"profile": profile})
}

// GET /api/clients/:id/profiles
func (h *ProfileHandler) List(c *gin.Context) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}
	profiles, err := h.profiles.List(c.Request.Context(), clientID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profiles": profiles})
}

// DELETE /api/profiles/:id
func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.profiles.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// GET /api/clients/:id/scraped-posts
func (h *ProfileHandler) RecentPosts(c *gin.Context) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit := 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	posts, err := h.profiles.RecentPosts(c.Request.Context(), clientID, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"posts": posts})
}

// POST /api/clients/:id/reels/refresh
func (h *ProfileHandler) RefreshReels(c *gin.Context) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}
	perUser := 10
	if v := c.Query("per_user"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			perUser = parsed
		}
	}
	reels, err := h.profiles.RefreshReels(c.Request.Context(), clientID, perUser)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reels": reels})
}
