// Package auditlogger собирает воркер журнала аудита: потребителя очереди
// событий административных действий и запись их в хранилище.
package auditlogger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/chops-club/membership-dashboard/internal/config"
	"github.com/chops-club/membership-dashboard/internal/rabbitmq"
	auditservice "github.com/chops-club/membership-dashboard/internal/services/audit"
	"github.com/chops-club/membership-dashboard/internal/storage"
)

// App представляет приложение воркера журнала аудита.
type App struct {
	auditService *auditservice.Service
	conn         *amqp.Connection
	ch           *amqp.Channel
	db           *storage.Storage
	logger       *slog.Logger
}

// New создает воркер журнала аудита.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString, cfg.StorageTimeout, cfg.FetchWorkers)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitConnection, 5, 3*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}
	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("failed to close connection", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	return &App{
		auditService: auditservice.New(db, logger),
		conn:         conn,
		ch:           ch,
		db:           db,
		logger:       logger,
	}, nil
}

// Run запускает потребителя очереди и ждет сигнала остановки.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.AuditQueue, a.auditService.Handle(ctx))
	if err != nil {
		a.logger.Error("failed to start audit consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("audit logger shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	if err := a.db.DB.Close(); err != nil {
		a.logger.Error("failed to close db", slog.Any("err", err))
	}
	return nil
}
