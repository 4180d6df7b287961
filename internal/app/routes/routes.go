package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/coursenotes/internal/app/controllers"
	"github.com/yigit/coursenotes/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Home   *controllers.HomeController
	Auth   *controllers.AuthController
	Course *controllers.CourseController
	Note   *controllers.NoteController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	sessionMiddleware *middleware.SessionMiddleware,
	store middleware.StoreStatus,
) {
	router.Use(sessionMiddleware.LoadUser())

	// --- Public routes ---
	router.GET("/", ctrl.Home.Landing)
	router.GET("/ping", ctrl.Home.Ping)
	router.GET("/health", ctrl.Home.Health)
	router.GET("/register", ctrl.Home.RegisterForm)
	router.GET("/login", ctrl.Home.LoginForm)
	router.GET("/logout", ctrl.Auth.Logout)

	// Registration and login read the credential store
	credentials := router.Group("")
	credentials.Use(middleware.RequireStore(store))
	{
		credentials.POST("/register", ctrl.Auth.Register)
		credentials.POST("/login", ctrl.Auth.Login)
	}

	// --- Session-protected routes ---
	// The session check runs first so anonymous callers are redirected even while degraded.
	authenticated := router.Group("")
	authenticated.Use(sessionMiddleware.RequireSession())
	{
		authenticated.GET("/admin/add-course", ctrl.Home.AddCourseForm)

		withStore := authenticated.Group("")
		withStore.Use(middleware.RequireStore(store))
		{
			withStore.GET("/courses", ctrl.Course.ListCourses)
			withStore.POST("/admin/add-course", ctrl.Course.CreateCourse)
			withStore.GET("/notes/:courseId", ctrl.Note.ListNotes)
			withStore.POST("/upload-note", ctrl.Note.Upload)
			withStore.GET("/download/:id", ctrl.Note.Download)
		}
	}
}
