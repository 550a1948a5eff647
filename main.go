package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookingportal/config"
	"bookingportal/handlers"
	"bookingportal/middleware"
	"bookingportal/routes"
	"bookingportal/services/booking"
	"bookingportal/services/cancellation"
	"bookingportal/services/clientstate"
	"bookingportal/services/identity"
	"bookingportal/services/remote"
	"bookingportal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient := utils.GetClientStateClient()
	api := remote.NewClient(cfg.APIBaseURL, cfg.APITimeout(), logger.Named("remote"))

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, redisClient, api)

	// services.
	sealer, err := clientstate.NewSealer(cfg.ClientStateSecret)
	if err != nil {
		logger.Fatal("Failed to set up client state sealing", zap.Error(err))
	}
	if cfg.ClientStateSecret == "" {
		logger.Warn("CLIENT_STATE_SECRET not set, drafts will not survive a restart")
	}
	store := clientstate.NewRedisStore(redisClient, cfg.ClientStateTTL(), sealer)
	resolver := identity.NewResolver(api, logger.Named("identity"))
	linker := identity.NewLinker(api, api, resolver, logger.Named("identity"))
	pipeline := booking.NewPipeline(api, resolver, cfg.EntryPath(), logger.Named("booking"))
	cancelService := cancellation.NewService(api, logger.Named("cancellation"))

	cookies := handlers.Cookies{Domain: cfg.CookieDomain, Secure: config.IsProduction()}
	bookingHandler := handlers.NewBookingHandler(pipeline, api, cookies)
	identityHandler := handlers.NewIdentityHandler(resolver, linker, store, cookies, cfg.EntryPath())
	verificationHandler := handlers.NewVerificationHandler(resolver, linker, api, store, cfg.PollInterval())
	cancellationHandler := handlers.NewCancellationHandler(cancelService, cookies, cfg.EntryPath())

	handlerBundle := handlers.NewHandlerBundle(bookingHandler, identityHandler, verificationHandler, cancellationHandler, cfg.MaxRequestsPerMin)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestContextMiddleware(logger, cfg.CookieDomain, cfg.DefaultLanguage, config.IsProduction()))

	routes.RegisterRoutes(router, handlerBundle, cfg.AllowedOrigins)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stopMonitor()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("main: server forced to shutdown", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		logger.Warn("main: closing redis failed", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
