package controller

import (
	"errors"
	"net/http"

	"safai/lib"
	"safai/platform"
	"safai/service"

	"github.com/gin-gonic/gin"
)

var logger = platform.Logger

// UserController ...
type UserController struct {
	userService  *service.UserService
	tokenService *service.TokenService
}

func NewUserController(config platform.Config) *UserController {
	return &UserController{
		userService:  service.NewUserService(config),
		tokenService: service.NewTokenService(config.JWTSecret),
	}
}

func (ctrl *UserController) Signup(c *gin.Context) {
	logger.Infof("[%s] Handling user registration request", c.GetString("requestId"))

	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user := &service.User{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	}
	_, notice, err := ctrl.userService.Register(user)
	if err != nil {
		logger.Warnf("[%s] Failed to register user %s: %s", c.GetString("requestId"), user.Username, err)
		if errors.Is(err, lib.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	logger.Infof("[%s] User %s registered successfully", c.GetString("requestId"), user.Username)
	c.JSON(http.StatusOK, gin.H{"message": notice})
}

func (ctrl *UserController) Login(c *gin.Context) {
	logger.Infof("[%s] Handling user login request", c.GetString("requestId"))

	var loginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	user, err := ctrl.userService.Authenticate(loginRequest.Email, loginRequest.Password)
	if err != nil {
		logger.Warnf("[%s] User %s failed to login: %s", c.GetString("requestId"), loginRequest.Email, err)
		if errors.Is(err, lib.ErrNotVerified) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please verify your email first. Check your inbox."})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := ctrl.tokenService.CreateToken(user.ID, user.Username)
	if err != nil {
		logger.Warnf("[%s] Error generating token for %s: %s", c.GetString("requestId"), user.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Infof("[%s] User %s login successfully", c.GetString("requestId"), user.Username)
	c.JSON(http.StatusOK, gin.H{"token": token.AccessToken})
}

func (ctrl *UserController) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification link"})
		return
	}

	if err := ctrl.userService.Verify(token); err != nil {
		logger.Warnf("[%s] Email verification failed: %s", c.GetString("requestId"), err)
		switch {
		case errors.Is(err, lib.ErrTokenExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Verification link expired. Please request a new one."})
		case errors.Is(err, lib.ErrInvalidToken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification link"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		}
		return
	}

	logger.Infof("[%s] Email verified successfully", c.GetString("requestId"))
	c.JSON(http.StatusOK, gin.H{"message": "Email verified! You can now login."})
}
