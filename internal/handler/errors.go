package handler

import (
	"errors"
	"net/http"

	"github.com/waynemwendwa/TMS-sub000/internal/service"
	"github.com/waynemwendwa/TMS-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondErr maps service sentinel errors onto HTTP status codes so every
// handler reports failures the same way.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Internal server error"))
	}
}

// currentUser pulls the identity the auth middleware stored in the context.
func currentUser(c *gin.Context) (userID, role string) {
	if v, ok := c.Get("userID"); ok {
		userID, _ = v.(string)
	}
	if v, ok := c.Get("userRole"); ok {
		role, _ = v.(string)
	}
	return userID, role
}
