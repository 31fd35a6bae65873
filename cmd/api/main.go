package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/paymethods-config-backend/api/routes"
	"github.com/ArowuTest/paymethods-config-backend/internal/config"
	"github.com/ArowuTest/paymethods-config-backend/internal/handlers"
	"github.com/ArowuTest/paymethods-config-backend/internal/logger"
	mongorepo "github.com/ArowuTest/paymethods-config-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/paymethods-config-backend/internal/services"
	"github.com/ArowuTest/paymethods-config-backend/pkg/authz"
	"github.com/ArowuTest/paymethods-config-backend/pkg/jwt"
	"github.com/ArowuTest/paymethods-config-backend/pkg/mongodb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L().WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	timeout := time.Duration(cfg.MongoDB.Timeout) * time.Second
	mongoClient, err := mongodb.NewClient(context.Background(), cfg.MongoDB.URI, timeout)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.WithError(err).Error("Error disconnecting from MongoDB")
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)
	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), timeout)
	if err := mongorepo.EnsureIndexes(indexCtx, db); err != nil {
		log.WithError(err).Warn("Failed to ensure MongoDB indexes")
	}
	cancelIndexes()

	tokens, err := jwt.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)
	if err != nil {
		log.WithError(err).Fatal("JWT is not configured")
	}
	authorizer, err := authz.NewDefaultAuthorizer()
	if err != nil {
		log.WithError(err).Fatal("Failed to build authorizer")
	}

	// Repositories
	providerRepo := mongorepo.NewProviderRepository(db)
	fieldRepo := mongorepo.NewFieldRepository(db)
	configRepo := mongorepo.NewTransactionConfigRepository(db)
	credentialRepo := mongorepo.NewCredentialRepository(db)
	bankAccountRepo := mongorepo.NewBankAccountRepository(db)
	referenceRepo := mongorepo.NewReferenceRepository(db)
	adminRepo := mongorepo.NewAdminUserRepository(db)

	// Services
	authService := services.NewAuthService(adminRepo, tokens, log)
	configService := services.NewConfigService(configRepo, fieldRepo, credentialRepo, bankAccountRepo, log)
	fieldService := services.NewFieldService(providerRepo, fieldRepo, referenceRepo, log)
	credentialService := services.NewScopedRecordService("credentials", providerRepo, credentialRepo, log)
	bankAccountService := services.NewScopedRecordService("bank_accounts", providerRepo, bankAccountRepo, log)
	reorderService := services.NewReorderService(providerRepo, configRepo, log)

	router := routes.SetupRouter(cfg, log, routes.Security{Tokens: tokens, Authorizer: authorizer}, routes.HandlerDependencies{
		HealthHandler:      handlers.NewHealthHandler(mongoClient),
		AuthHandler:        handlers.NewAuthHandler(authService),
		ConfigHandler:      handlers.NewConfigHandler(configService),
		FieldHandler:       handlers.NewFieldHandler(fieldService),
		CredentialHandler:  handlers.NewScopedRecordHandler(credentialService),
		BankAccountHandler: handlers.NewScopedRecordHandler(bankAccountService),
		ReorderHandler:     handlers.NewReorderHandler(reorderService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in a goroutine so that it doesn't block
	go func() {
		log.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server exiting")
}
