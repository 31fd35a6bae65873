package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ArowuTest/paymethods-config-backend/internal/config"
	"github.com/ArowuTest/paymethods-config-backend/internal/handlers"
	"github.com/ArowuTest/paymethods-config-backend/internal/middleware"
	"github.com/ArowuTest/paymethods-config-backend/pkg/authz"
	"github.com/ArowuTest/paymethods-config-backend/pkg/jwt"
)

// HandlerDependencies holds every handler the router mounts
type HandlerDependencies struct {
	HealthHandler      *handlers.HealthHandler
	AuthHandler        *handlers.AuthHandler
	ConfigHandler      *handlers.ConfigHandler
	FieldHandler       *handlers.FieldHandler
	CredentialHandler  *handlers.ScopedRecordHandler
	BankAccountHandler *handlers.ScopedRecordHandler
	ReorderHandler     *handlers.ReorderHandler
}

// Security carries what the protected routes need to authenticate and authorize callers
type Security struct {
	Tokens     *jwt.TokenManager
	Authorizer *authz.Authorizer
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, log *logrus.Logger, sec Security, h HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", h.HealthHandler.Health)

		auth := public.Group("/auth")
		{
			auth.POST("/login", h.AuthHandler.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(sec.Tokens, log))
	protected.Use(middleware.AuthorizeMiddleware(sec.Authorizer, log))
	{
		protected.GET("/configs", h.ConfigHandler.GetConfigs)

		providers := protected.Group("/admin/providers/:code")
		{
			providers.GET("/fields", h.FieldHandler.GetProviderFields)
			providers.PUT("/methods/:methodId/fields", h.FieldHandler.UpsertFields)
			providers.PUT("/method-order", h.ReorderHandler.Reorder)

			providers.GET("/credentials", h.CredentialHandler.Get)
			providers.PUT("/credentials", h.CredentialHandler.Replace)

			providers.GET("/bank-accounts", h.BankAccountHandler.Get)
			providers.PUT("/bank-accounts", h.BankAccountHandler.Replace)
		}
	}

	return router
}
