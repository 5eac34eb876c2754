// Package bootstrap assembles the server from configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"rpg-gamemaster/internal/config"
	"rpg-gamemaster/internal/feed"
	"rpg-gamemaster/internal/generation"
	httpHandler "rpg-gamemaster/internal/handler/http"
	wsHandler "rpg-gamemaster/internal/handler/websocket"
	gormpersistence "rpg-gamemaster/internal/infra/persistence/gorm"
	"rpg-gamemaster/internal/infra/persistence/supabase"
	"rpg-gamemaster/internal/repository"
	"rpg-gamemaster/internal/service"
	"rpg-gamemaster/internal/session"
)

// Options are command-line overrides applied on top of the environment.
type Options struct {
	EnvFile string
	Port    string
}

// App holds the running components.
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	Store       repository.Store
	RedisClient *redis.Client
	Broker      feed.Broker
	Generator   *generation.GeminiGateway
	HttpServer  *http.Server

	closeBroker func() error
}

// NewApp loads configuration and wires every component. Partially created
// resources are released when it fails.
func NewApp(ctx context.Context, opts Options) (_ *App, err error) {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}
	if opts.Port != "" {
		cfg.ServerPort = opts.Port
	}

	log := newLogger(cfg)
	log.Info("Configuration loaded successfully")

	app := &App{Config: cfg, Log: log, closeBroker: func() error { return nil }}
	defer func() {
		if err != nil {
			app.release()
		}
	}()

	if app.Store, err = openStore(cfg); err != nil {
		return nil, err
	}
	log.WithField("driver", cfg.StoreDriver).Info("Store initialized")

	if err = app.initBroker(ctx); err != nil {
		return nil, err
	}

	app.Generator, err = generation.NewGeminiGateway(ctx, generation.GeminiOptions{
		APIKey:       cfg.GeminiAPIKey,
		DefaultModel: cfg.GeminiDefaultModel,
		Timeout:      cfg.GenerateTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init generation gateway: %w", err)
	}
	log.WithField("default_model", cfg.GeminiDefaultModel).Info("Generation gateway initialized")

	app.HttpServer = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           app.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info("Application assembled successfully")
	return app, nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	// Packages log through the standard logger, so configure that one.
	log := logrus.StandardLogger()
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)
	log.SetOutput(os.Stdout)
	log.Infof("Logger initialized (Level: %s)", level.String())
	return log
}

func openStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := gormpersistence.Open(cfg.SQLitePath)
		if err != nil {
			return repository.Store{}, fmt.Errorf("failed to init SQLite store: %w", err)
		}
		return gormpersistence.NewStore(db), nil
	default:
		client, err := supabase.Connect(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			return repository.Store{}, fmt.Errorf("failed to init Supabase store: %w", err)
		}
		return supabase.NewStore(client), nil
	}
}

// initBroker uses Redis when REDIS_ADDR is set so several server
// instances share one feed; otherwise the feed stays in process.
func (a *App) initBroker(ctx context.Context) error {
	if a.Config.RedisAddr == "" {
		a.Broker = feed.NewLocalBroker()
		a.Log.Info("Using in-process event feed")
		return nil
	}
	a.RedisClient = redis.NewClient(&redis.Options{
		Addr:     a.Config.RedisAddr,
		Password: a.Config.RedisPassword,
		DB:       a.Config.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.RedisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", a.Config.RedisAddr, err)
	}
	broker, err := feed.NewRedisBroker(ctx, a.RedisClient, a.Config.FeedKeyPrefix)
	if err != nil {
		return fmt.Errorf("failed to init Redis feed: %w", err)
	}
	a.Broker = broker
	a.closeBroker = broker.Close
	a.Log.WithField("addr", a.Config.RedisAddr).Info("Using Redis event feed")
	return nil
}

func (a *App) router() *gin.Engine {
	if a.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	events := feed.NewPublishingEvents(a.Store.Events, a.Broker)
	roomSvc := service.NewRoomService(a.Store.Rooms, events)
	historySvc := service.NewHistoryService(a.Store.Rooms, events)
	playerSvc := service.NewPlayerService(a.Store.Players, a.Store.Rooms)
	eventTypeSvc := service.NewEventTypeService(a.Store.EventTypes)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(a.Log))
	router.Use(CORSMiddleware(a.Config.CORSAllowedOrigin))

	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })

	api := router.Group("/api")
	httpHandler.NewRoomHandler(roomSvc, historySvc, playerSvc).Register(api)
	httpHandler.NewCatalogHandler(eventTypeSvc, playerSvc).Register(api)
	httpHandler.NewGenerateHandler(a.Generator).Register(api)

	wsHandler.NewHandler(session.Deps{
		Rooms:      a.Store.Rooms,
		EventTypes: a.Store.EventTypes,
		Events:     events,
		Feed:       a.Broker,
		Generator:  a.Generator,
	}, a.Config.CORSAllowedOrigin).Register(router)

	return router
}

// Start serves HTTP in the background.
func (a *App) Start() {
	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// Shutdown stops accepting requests and releases every resource.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")
	if a.HttpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.HttpServer.Shutdown(ctx); err != nil {
			a.Log.Errorf("Error shutting down HTTP server: %v", err)
		} else {
			a.Log.Info("HTTP server shut down gracefully.")
		}
	}
	a.release()
	a.Log.Info("Application shutdown complete.")
}

func (a *App) release() {
	if a.Generator != nil {
		if err := a.Generator.Close(); err != nil {
			a.Log.Errorf("Error closing generation client: %v", err)
		}
	}
	if err := a.closeBroker(); err != nil {
		a.Log.Errorf("Error closing event feed: %v", err)
	}
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}
	if a.Store.Close != nil {
		if err := a.Store.Close(); err != nil {
			a.Log.Errorf("Error closing store: %v", err)
		}
	}
}
