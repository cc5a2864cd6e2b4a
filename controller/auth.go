package controller

import (
	"net/http"

	"safai/platform"
	"safai/service"

	"github.com/gin-gonic/gin"
)

// AuthController ...
type AuthController struct {
	tokenService *service.TokenService
}

func NewAuthController(config platform.Config) *AuthController {
	return &AuthController{tokenService: service.NewTokenService(config.JWTSecret)}
}

// TokenValid validates the bearer token and stashes the authenticated user
// in the request context. Aborts with 401 when the token is missing or bad.
func (a *AuthController) TokenValid(c *gin.Context) {
	tokenAuth, err := a.tokenService.ExtractTokenMetadata(c.Request)
	if err != nil {
		//Token either expired or not valid
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please login first"})
		return
	}

	c.Set("UserId", tokenAuth.UserID)
	c.Set("UserName", tokenAuth.UserName)
}

// Logout is stateless: the bearer token is simply discarded by the client.
func (a *AuthController) Logout(c *gin.Context) {
	logger.Infof("[%s] Handling logout request", c.GetString("requestId"))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
