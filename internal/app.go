package internal

import (
	"context"
	"fmt"
	backend_client "listing-bff/internal/adapters/backend_client"
	token_adapter "listing-bff/internal/adapters/jwt"
	logger_adapter "listing-bff/internal/adapters/logger"
	postgres_adapter "listing-bff/internal/adapters/postgres"
	rabbitmq_adapter "listing-bff/internal/adapters/rabbitmq"
	redis_adapter "listing-bff/internal/adapters/redis"
	"listing-bff/internal/adapters/rest"
	"listing-bff/internal/configs"
	"listing-bff/internal/contracts"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
	"listing-bff/internal/core/usecase"
	fluentlogger "listing-bff/pkg/fluent_logger"
	"listing-bff/pkg/postgres"
	"listing-bff/pkg/rabbitmq/rabbitmq_common"
	"listing-bff/pkg/rabbitmq/rabbitmq_producer"
	"listing-bff/pkg/redis"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	redis     *goredis.Client
	apiServer *rest.Server

	connManager    *rabbitmq_common.ConnectionManager
	eventsProducer *rabbitmq_producer.Publisher
	toggleUC       *usecase.ToggleFavoriteUseCase

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, appConfig.AppName, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}
	if err := application.init(baseLogger); err != nil {
		application.close()
		return nil, err
	}
	return application, nil
}

// init поднимает подключения, адаптеры и use cases. При ошибке уже открытые ресурсы закрывает вызывающий.
func (a *App) init(baseLogger port.LoggerPort) error {
	cfg := a.config
	ctx := context.Background()
	appLogger := a.logger

	// --- 3. ХРАНИЛИЩА ---
	redisClient, err := redis.NewClient(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Error("Failed to connect to Redis", err, nil)
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	a.redis = redisClient
	appLogger.Info("Successfully connected to Redis!", port.Fields{"addr": cfg.Redis.Addr})

	dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.dbPool = dbPool
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	if err := postgres_adapter.RunMigrations(ctx, dbPool, appLogger); err != nil {
		appLogger.Error("Failed to apply migrations", err, nil)
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	syncLogRepo, err := postgres_adapter.NewPostgresSyncLogRepository(dbPool)
	if err != nil {
		return fmt.Errorf("failed to create sync log repository: %w", err)
	}

	sessionStore := redis_adapter.NewSessionStore(redisClient, cfg.Session.TTL)
	favoriteSet := redis_adapter.NewFavoriteSet(redisClient, cfg.Session.TTL)
	draftStore := redis_adapter.NewDraftReviewStore(redisClient, cfg.Session.TTL)
	listingCache := redis_adapter.NewListingCache(redisClient, cfg.Favorites.ListingsCacheTTL)

	// --- 4. КОНТРАКТЫ И СОБЫТИЯ ---
	validator, err := contracts.NewValidator()
	if err != nil {
		appLogger.Error("Failed to compile contract schemas", err, nil)
		return fmt.Errorf("failed to compile contract schemas: %w", err)
	}

	events, err := a.initEvents(baseLogger, validator)
	if err != nil {
		return err
	}

	tokenService, err := token_adapter.NewTokenService(cfg.Session.SigningKey)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	backendClient := backend_client.NewListingBackendClient(cfg.Backend.URL, cfg.Backend.Timeout)
	appLogger.Info("All persistence and service adapters initialized.", port.Fields{"backend_url": cfg.Backend.URL})

	// --- 5. USE CASES ---
	listingSource := usecase.NewListingSource(backendClient, listingCache)

	searchUC := usecase.NewSearchListingsUseCase(listingSource, favoriteSet)
	getListingUC := usecase.NewGetListingUseCase(listingSource, favoriteSet)
	profileUC := usecase.NewProfileListingsUseCase(listingSource)

	toggleUC := usecase.NewToggleFavoriteUseCase(favoriteSet, syncLogRepo, backendClient, events, cfg.Favorites.SyncTimeout)
	a.toggleUC = toggleUC
	getFavoritesUC := usecase.NewGetFavoritesUseCase(listingSource, favoriteSet)
	getFavoriteIDsUC := usecase.NewGetFavoriteIDsUseCase(favoriteSet)
	syncStatusUC := usecase.NewGetSyncStatusUseCase(syncLogRepo)
	refreshUC := usecase.NewRefreshFavoritesUseCase(backendClient, favoriteSet, syncLogRepo)

	draftReviewUC := usecase.NewDraftReviewUseCase(draftStore, backendClient, validator, events)
	sessionUC := usecase.NewSessionUseCase(sessionStore, favoriteSet, tokenService, backendClient, cfg.Session.TTL)

	// --- 6. REST API ---
	handlers := rest.Handlers{
		Session:    rest.NewSessionHandler(sessionUC, cfg.Session.TTL, cfg.Rest.SecureCookie),
		Listings:   rest.NewListingsHandler(searchUC, getListingUC, profileUC),
		Favorites:  rest.NewFavoritesHandler(toggleUC, getFavoritesUC, getFavoriteIDsUC, syncStatusUC, refreshUC),
		Drafts:     rest.NewDraftsHandler(draftReviewUC),
		Navigation: rest.NewNavigationHandler(domain.AppRoutes()),
	}
	router := rest.NewRouter(handlers, sessionUC, cfg.Rest.AllowedOrigins, baseLogger)
	a.apiServer = rest.NewServer(cfg.Rest.PORT, router, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	if conflicts := domain.FindRouteConflicts(domain.AppRoutes()); len(conflicts) > 0 {
		appLogger.Warn("Navigation table has conflicting routes", port.Fields{"conflicts": len(conflicts)})
	}
	return nil
}

// initEvents подключает RabbitMQ. Без RABBITMQ_URL события только пишутся в лог.
func (a *App) initEvents(baseLogger port.LoggerPort, validator *contracts.Validator) (port.EventPublisherPort, error) {
	cfg := a.config.RabbitMQ
	if cfg.URL == "" {
		a.logger.Warn("RABBITMQ_URL is not set, domain events are disabled", nil)
		return rabbitmq_adapter.NoopEventPublisher{}, nil
	}

	rabbitLogger := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))

	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: cfg.URL}, rabbitLogger)
	if err != nil {
		a.logger.Error("Failed to connect to RabbitMQ", err, nil)
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	a.connManager = connManager

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:             cfg.ExchangeName,
		ExchangeType:             "topic",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitLogger,
	}, connManager)
	if err != nil {
		a.logger.Error("Failed to create events producer", err, nil)
		return nil, fmt.Errorf("failed to create events producer: %w", err)
	}
	a.eventsProducer = producer

	publisher, err := rabbitmq_adapter.NewEventPublisherAdapter(producer, validator)
	if err != nil {
		return nil, err
	}
	a.logger.Info("RabbitMQ events publisher initialized", port.Fields{"exchange": cfg.ExchangeName})
	return publisher, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	defer a.close()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
		return err
	}
	return nil
}

// close останавливает компоненты в обратном порядке. Фоновые синхронизации избранного дожидаются до закрытия хранилищ.
func (a *App) close() {
	a.logger.Info("Shutdown sequence initiated...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.apiServer != nil {
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}
	}

	if a.toggleUC != nil {
		a.toggleUC.Wait()
		a.logger.Info("Pending favorite syncs finished.", nil)
	}

	if a.eventsProducer != nil {
		if err := a.eventsProducer.Close(); err != nil {
			a.logger.Error("Error closing events producer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
	}

	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
