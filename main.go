package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-portal/config"
	"travel-portal/database"
	"travel-portal/httpServices/gateway"
	"travel-portal/logger"
	"travel-portal/middleware"
	"travel-portal/routes"
	"travel-portal/services/assistant"
	"travel-portal/services/dashboard"
	"travel-portal/services/funnel"
	"travel-portal/services/insurance"
	"travel-portal/services/wishlist"
	"travel-portal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	logger.Setup("log/app")
	logger.SetDebug(!cfg.IsProduction())

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Gateway calls are recorded to the logs table off the request path
	asyncLogger := logger.NewAsyncLogger(logger.NewGormLogStore(db), 256)
	go asyncLogger.ProcessLog()

	opts := []gateway.Option{gateway.WithRecorder(asyncLogger)}
	if cfg.Assistance.ResolveBody == "text" {
		opts = append(opts, gateway.WithTextResolveBody())
	}
	gw := gateway.NewClient(cfg.Services, opts...)

	var cipher *utils.Cipher
	if cfg.EncryptionKey != "" {
		cipher, err = utils.NewCipher(cfg.EncryptionKey)
		if err != nil {
			logger.Error("Invalid ENCRYPTION_KEY", err)
			os.Exit(1)
		}
	} else {
		logger.Warning("ENCRYPTION_KEY not set, booking drafts are stored in plain text")
	}

	plans := insurance.NewCatalog(gw)
	store := funnel.NewGormStore(db)
	drafts := funnel.NewDrafts(store, cipher)

	var refresher *dashboard.Refresher
	if cfg.Auth.ServiceToken != "" {
		refresher = dashboard.NewRefresher(gw, cfg.Auth.ServiceToken, cfg.Refresher.Interval)
		go refresher.Run(ctx)
		logger.Info("Assistance queue refresh every " + cfg.Refresher.Interval.String())
	}

	var gen assistant.Generator
	if cfg.Assistant.GeminiAPIKey != "" {
		gen = assistant.NewGemini(cfg.Assistant.GeminiAPIKey, cfg.Assistant.Model)
	} else {
		logger.Warning("GEMINI_API_KEY not set, review reply drafting is disabled")
	}

	authLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				authLimiter.Reset()
			}
		}
	}()

	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       10 * 1024 * 1024, // image uploads
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.FrontendURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID, X-From-Cache, Retry-After",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		Gateway:      gw,
		Verifier:     middleware.NewVerifier(cfg.Auth, gw),
		Funnel:       funnel.NewService(gw, plans, store, drafts),
		Drafts:       drafts,
		Plans:        plans,
		Wishlist:     wishlist.NewStore(db),
		Refresher:    refresher,
		Assistant:    assistant.New(gen),
		AuthLimiter:  authLimiter,
		SecureCookie: cfg.IsProduction(),
	})

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", err)
		}
	}()

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Success("Server is running on " + addr +
		"\n\t\t\t\t\t\t******************************************************************************************\n")
	if err := app.Listen(addr); err != nil {
		logger.Error("Server stopped", err)
	}

	asyncLogger.Close()
	logger.Success("Server exited")
}
