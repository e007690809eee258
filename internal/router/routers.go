package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budgetly/expense-tracker/config"
	"github.com/budgetly/expense-tracker/internal/constants"
	"github.com/budgetly/expense-tracker/internal/handler"
	"github.com/budgetly/expense-tracker/internal/middleware"
)

type Router struct {
	authHandler     *handler.AuthHandler
	categoryHandler *handler.CategoryHandler
	expenseHandler  *handler.ExpenseHandler
	healthHandler   *handler.HealthHandler

	gate   *middleware.AuthGate
	config *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	category *handler.CategoryHandler,
	expense *handler.ExpenseHandler,
	health *handler.HealthHandler,
	gate *middleware.AuthGate,
	config *config.Config,
) *Router {
	return &Router{
		authHandler:     auth,
		categoryHandler: category,
		expenseHandler:  expense,
		healthHandler:   health,
		gate:            gate,
		config:          config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if !r.config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORS(r.config.App.CORSOrigin))

	// The gate runs on every request; its allow-list lets the auth and
	// health endpoints through.
	router.Use(r.gate.Handler())

	router.GET(constants.HealthPath, r.healthHandler.Health)

	r.authRoutes(router)

	api := router.Group("/api/v1")
	{
		r.categoryRoutes(api)
		r.expenseRoutes(api)
	}

	return router
}

func (r *Router) authRoutes(router *gin.Engine) {
	auth := router.Group("/auth")
	auth.Use(middleware.RateLimit(
		r.config.RateLimit.Request,
		time.Duration(r.config.RateLimit.Duration)*time.Second,
	))
	{
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/login", r.authHandler.Login)
		auth.POST("/refresh", r.authHandler.Refresh)
		auth.POST("/logout", r.authHandler.Logout)
	}
}
