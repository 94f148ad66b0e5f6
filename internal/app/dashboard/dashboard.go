package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/chops-club/membership-dashboard/internal/assets"
	"github.com/chops-club/membership-dashboard/internal/cache"
	"github.com/chops-club/membership-dashboard/internal/config"
	libjwt "github.com/chops-club/membership-dashboard/internal/lib/jwt"
	"github.com/chops-club/membership-dashboard/internal/migrations"
	"github.com/chops-club/membership-dashboard/internal/models"
	"github.com/chops-club/membership-dashboard/internal/rabbitmq"
	activityservice "github.com/chops-club/membership-dashboard/internal/services/activity"
	adminservice "github.com/chops-club/membership-dashboard/internal/services/admin"
	catalogservice "github.com/chops-club/membership-dashboard/internal/services/catalog"
	memberservice "github.com/chops-club/membership-dashboard/internal/services/member"
	operatorservice "github.com/chops-club/membership-dashboard/internal/services/operator"
	purchaseservice "github.com/chops-club/membership-dashboard/internal/services/purchase"
	statsservice "github.com/chops-club/membership-dashboard/internal/services/stats"
	"github.com/chops-club/membership-dashboard/internal/storage"
)

// App представляет HTTP-приложение панели.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func waitForDB(db *storage.Storage) error {
	for i := 0; i < 10; i++ {
		err := storage.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает приложение панели со всеми зависимостями.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString, cfg.StorageTimeout, cfg.FetchWorkers)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = waitForDB(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitConnection, 5, 3*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}
	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	jwtMaker := libjwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	avatars := assets.NewResolver(cfg.Assets)
	snapshot := cache.NewMemberSnapshot[models.ReconciledMember](cfg.SnapshotTTL)

	memberService := memberservice.New(db, avatars, snapshot, logger)
	adminService := adminservice.New(db, rabbitmq.NewPublisher(ch), snapshot, logger)
	statsService := statsservice.New(db, cacheRedis, cfg.StatsTTL, logger)
	catalogService := catalogservice.New(db, logger)
	activityService := activityservice.New(db, logger)
	purchaseService := purchaseservice.New(db, logger)
	operatorService := operatorservice.New(cfg.DashboardPasswordHash, jwtMaker, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker,
		operatorService, memberService, adminService,
		purchaseService, statsService, catalogService, activityService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", "error", err)
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", "error", err)
		}
	}
}

// Run запускает HTTP-сервер и корректно останавливает его по сигналу.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		closeResources(a.ch, a.conn, a.logger)
		if dbErr := a.db.DB.Close(); dbErr != nil {
			a.logger.Error("failed to close db", "error", dbErr)
		}
		return err
	}
}
