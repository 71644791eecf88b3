package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	"github.com/caffeinepub/food-order-delivery-platform/internal/server/http/dto"
	"github.com/caffeinepub/food-order-delivery-platform/internal/server/http/middleware"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	creds, err := h.facade.Register(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			writeErrorStatus(c, http.StatusBadRequest, err)
			return
		}
		writeError(c, err)
		return
	}

	respondWithToken(c, creds)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	creds, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	respondWithToken(c, creds)
}

// CourierLogin handles POST /api/auth/courier.
func (h *AuthHandler) CourierLogin(c *gin.Context) {
	var req dto.CourierLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	creds, err := h.facade.CourierLogin(c.Request.Context(), req.PIN)
	if err != nil {
		writeError(c, err)
		return
	}

	respondWithToken(c, creds)
}

func respondWithToken(c *gin.Context, creds model.Credentials) {
	middleware.SetAuthCookie(c, creds.Token)
	c.JSON(http.StatusOK, dto.FromCredentials(creds))
}
