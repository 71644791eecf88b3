package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caffeinepub/food-order-delivery-platform/internal/server/http/dto"
)

// MenuHandler serves the menu and its staff management.
type MenuHandler struct {
	facade MenuFacade
}

// NewMenuHandler constructs MenuHandler.
func NewMenuHandler(facade MenuFacade) *MenuHandler {
	return &MenuHandler{facade: facade}
}

// List handles GET /api/menu with an optional category filter.
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.facade.Menu(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMenuItems(items))
}

// AdminList handles GET /api/admin/menu.
func (h *MenuHandler) AdminList(c *gin.Context) {
	items, err := h.facade.AdminMenu(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMenuItems(items))
}

// Create handles POST /api/admin/menu.
func (h *MenuHandler) Create(c *gin.Context) {
	var req dto.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.facade.AddMenuItem(c.Request.Context(), req.Model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromMenuItem(*item))
}

// Update handles PATCH /api/admin/menu/:id.
func (h *MenuHandler) Update(c *gin.Context) {
	var req dto.MenuItemPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.facade.UpdateMenuItem(c.Request.Context(), c.Param("id"), req.Model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMenuItem(*item))
}

// Toggle handles POST /api/admin/menu/:id/toggle.
func (h *MenuHandler) Toggle(c *gin.Context) {
	item, err := h.facade.ToggleAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromMenuItem(*item))
}

// Delete handles DELETE /api/admin/menu/:id.
func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteMenuItem(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
