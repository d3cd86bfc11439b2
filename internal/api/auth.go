package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/service"
)

// AuthResponse carries the signed access token.
type AuthResponse struct {
	Token string `json:"token"`
}

// RegisterHandler creates a new user account.
func RegisterHandler(svc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}
		user, err := svc.Register(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// LoginHandler authenticates a user and returns a JWT token.
func LoginHandler(svc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.LoginInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badBody(c)
			return
		}
		token, err := svc.Login(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}
