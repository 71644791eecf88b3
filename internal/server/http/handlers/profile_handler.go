package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caffeinepub/food-order-delivery-platform/internal/server/http/dto"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	facade ProfileFacade
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(facade ProfileFacade) *ProfileHandler {
	return &ProfileHandler{facade: facade}
}

// Get handles GET /api/me/profile. A caller without a profile gets 204.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.facade.Profile(c.Request.Context(), CurrentIdentity(c).Principal)
	if err != nil {
		writeError(c, err)
		return
	}
	if profile == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.FromProfile(*profile))
}

// Save handles PUT /api/me/profile.
func (h *ProfileHandler) Save(c *gin.Context) {
	var req dto.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.facade.SaveProfile(c.Request.Context(), CurrentIdentity(c).Principal, req.Model()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
