package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursenotes/internal/app/models/dto"
	"github.com/yigit/coursenotes/internal/middleware"
)

// AppName is reported on the landing page
const AppName = "Course Notes"

// StoreHealth reports record store reachability
type StoreHealth interface {
	Name() string
	Ready() bool
}

// HomeController serves the public pages and health endpoints
type HomeController struct {
	store StoreHealth
}

// NewHomeController creates a new HomeController
func NewHomeController(store StoreHealth) *HomeController {
	return &HomeController{store: store}
}

// Landing returns the app name and the logged-in user, if any
func (c *HomeController) Landing(ctx *gin.Context) {
	resp := dto.LandingResponse{
		Name:  AppName,
		Links: []string{"/register", "/login", "/courses"},
	}
	if id, ok := middleware.CurrentIdentity(ctx); ok {
		resp.User = &dto.UserResponse{ID: id.UserID, Username: id.Username}
		resp.Links = []string{"/courses", "/admin/add-course", "/logout"}
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// RegisterForm describes the registration form
func (c *HomeController) RegisterForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FormDescription{
		Action: "/register",
		Method: http.MethodPost,
		Fields: []string{"username", "password"},
	}))
}

// LoginForm describes the login form
func (c *HomeController) LoginForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FormDescription{
		Action: "/login",
		Method: http.MethodPost,
		Fields: []string{"username", "password"},
	}))
}

// AddCourseForm describes the add-course form
func (c *HomeController) AddCourseForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FormDescription{
		Action: "/admin/add-course",
		Method: http.MethodPost,
		Fields: []string{"title", "description", "liveLink"},
	}))
}

// Health reports whether the record store is reachable
func (c *HomeController) Health(ctx *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Store: c.store.Name()}
	status := http.StatusOK
	if !c.store.Ready() {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, dto.NewSuccessResponse(resp))
}

// Ping is a liveness probe
func (c *HomeController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
}
