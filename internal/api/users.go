package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/service"
)

// MeHandler returns the authenticated user's account.
func MeHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		user, err := svc.Me(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// ChangePasswordHandler replaces the authenticated user's password.
func ChangePasswordHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var in service.ChangePasswordInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}
		if err := svc.ChangePassword(c.Request.Context(), userID, in); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// DeleteAccountHandler soft-deletes the authenticated user's account.
func DeleteAccountHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), userID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
