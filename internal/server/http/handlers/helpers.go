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

// CurrentIdentity extracts the authenticated caller from context.
func CurrentIdentity(c *gin.Context) model.Identity {
	identity, _ := middleware.Identity(c)
	return identity
}

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrUnauthenticated), errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}

	switch domainErrors.Classify(err) {
	case domainErrors.KindNotFound:
		return http.StatusNotFound
	case domainErrors.KindConflict:
		return http.StatusConflict
	case domainErrors.KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	writeErrorStatus(c, statusFor(err), err)
}

func writeErrorStatus(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, dto.ErrorResponse{Code: "internal", Message: "internal error"})
		return
	}
	c.JSON(status, dto.ErrorResponse{Code: domainErrors.Code(err), Message: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "bad_request", Message: err.Error()})
}
