// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursenotes/internal/app/models/dto"
	"github.com/yigit/coursenotes/internal/app/services"
	"github.com/yigit/coursenotes/internal/middleware"
	"github.com/yigit/coursenotes/internal/pkg/session"
)

// AuthController handles registration, login and logout
type AuthController struct {
	authService services.AuthService
	sessions    *session.Manager
	sessionMW   *middleware.SessionMiddleware
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, sessions *session.Manager, sessionMW *middleware.SessionMiddleware, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		sessionMW:   sessionMW,
		logger:      logger,
	}
}

// Register creates an account and redirects to the login page
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindRequest(ctx, &req) {
		c.logger.Warn().Msg("Invalid registration request payload")
		return
	}

	if _, err := c.authService.Register(ctx.Request.Context(), req.Username, req.Password); err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/login")
}

// Login checks credentials, starts a session and redirects to the catalog.
// A failed login sets no cookie.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	user, err := c.authService.Authenticate(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.logger.Info().Err(err).Str("username", req.Username).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	token, s, err := c.sessions.Start(ctx.Request.Context(), user.ID, user.Username)
	if err != nil {
		c.logger.Error().Err(err).Str("userID", user.ID).Msg("Failed to start session")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.sessionMW.SetSessionCookie(ctx, token)
	c.logger.Info().Str("userID", user.ID).Str("sessionID", s.ID).Msg("User logged in")
	ctx.Redirect(http.StatusSeeOther, "/courses")
}

// Logout destroys the session and redirects home
func (c *AuthController) Logout(ctx *gin.Context) {
	if token := c.sessionMW.SessionToken(ctx); token != "" {
		if err := c.sessions.Destroy(ctx.Request.Context(), token); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to destroy session")
		}
	}
	c.sessionMW.ClearSessionCookie(ctx)
	ctx.Redirect(http.StatusFound, "/")
}
