// Package server exposes the HTTP/JSON surface of the todo service.
package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"todoapi/internal/service"
)

// Server wires the echo router to the service layer.
type Server struct {
	echo     *echo.Echo
	auth     *service.AuthService
	todos    *service.TodoService
	profiles *service.ProfileService
	siteURL  string
}

// New builds the router. storageDir is mounted read-only under
// /storage so avatar URLs resolve.
func New(
	auth *service.AuthService,
	todos *service.TodoService,
	profiles *service.ProfileService,
	siteURL, storageDir string,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Static("/storage", storageDir)

	s := &Server{
		echo:     e,
		auth:     auth,
		todos:    todos,
		profiles: profiles,
		siteURL:  siteURL,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", s.handleSignUp)
	authGroup.POST("/signin", s.handleSignIn)
	authGroup.POST("/signout", s.handleSignOut)
	authGroup.POST("/forgot-password", s.handleForgotPassword)
	authGroup.POST("/reset-password", s.handleResetPassword)
	authGroup.GET("/password-reset-callback", s.handlePasswordResetCallback)

	protected := api.Group("", s.requireAuth)
	protected.GET("/todos", s.handleListTodoLists)
	protected.POST("/todos", s.handleCreateTodoList)
	protected.GET("/todos/:slug", s.handleGetTodoList)
	protected.PUT("/todos/:slug", s.handleUpdateTodoList)
	protected.DELETE("/todos/:slug", s.handleDeleteTodoList)
	protected.POST("/todos/:slug/items", s.handleCreateTodoItem)
	protected.PUT("/todos/:slug/items/:itemId", s.handleUpdateTodoItem)
	protected.DELETE("/todos/:slug/items/:itemId", s.handleDeleteTodoItem)
	protected.GET("/profile", s.handleGetProfile)
	protected.PUT("/profile", s.handleUpdateProfile)
	protected.POST("/profile/avatar", s.handleUploadAvatar)
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
