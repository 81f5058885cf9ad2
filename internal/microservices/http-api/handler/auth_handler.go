package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/service"
)

type AuthHandler struct {
	authService   service.AuthService
	signupLimiter gin.HandlerFunc
}

// NewAuthHandler creates the signup/token handler. signupLimiter may be nil.
func NewAuthHandler(authService service.AuthService, signupLimiter gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{authService: authService, signupLimiter: signupLimiter}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	if h.signupLimiter != nil {
		rg.POST("/signup", h.signupLimiter, h.Signup)
	} else {
		rg.POST("/signup", h.Signup)
	}
	rg.POST("/token", h.Token)
}

// Signup registers a pending user (or re-issues a code) and mails the confirmation code.
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()

	user, err := h.authService.Signup(ctx, req.Email, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SignupResponse{
		Email:    user.Email,
		Username: user.Username,
	})
}

// Token exchanges a confirmation code for a bearer token.
// POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()

	token, err := h.authService.Token(ctx, req.Username, req.ConfirmationCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
