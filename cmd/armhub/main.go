// Command armhub runs the ARM Hub seat desk: the HTTP API, schema
// migrations, the seat event audit consumer and maintenance tasks.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/config"
	"github.com/iliyamo/armhub-seatdesk/internal/database"
	"github.com/iliyamo/armhub-seatdesk/internal/logger"
	"github.com/iliyamo/armhub-seatdesk/internal/repository"
	"github.com/iliyamo/armhub-seatdesk/internal/repository/memstore"
	"github.com/iliyamo/armhub-seatdesk/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "armhub",
	Short: "ARM Hub reading room seat desk",
	Long: `Seat reservations for the ARM Hub reading and electronic rooms.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, consumeCmd, reapCmd, userCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the process logger.
func bootstrap() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.App.ServiceName)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}

func dbOptions(cfg config.Config) database.Options {
	return database.Options{
		User:         cfg.DB.User,
		Pass:         cfg.DB.Pass,
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		Name:         cfg.DB.Name,
		MaxOpenConns: cfg.DB.MaxOpenConns,
	}
}

// stores groups the persistence backends the workflows run on.
type stores struct {
	bookings service.BookingStore
	metadata service.MetadataStore
	news     service.NewsStore
	users    service.UserStore
	db       *sql.DB // nil for in-memory stores
	close    func()
}

// openStores connects to MySQL, or returns process-local stores when
// inMemory is set.
func openStores(ctx context.Context, cfg config.Config, inMemory bool) (stores, error) {
	if inMemory {
		return stores{
			bookings: memstore.NewBookings(),
			metadata: memstore.NewSeatMetadata(),
			news:     memstore.NewNews(),
			users:    memstore.NewUsers(),
			close:    func() {},
		}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := database.Open(ctx, dbOptions(cfg))
	if err != nil {
		return stores{}, err
	}
	return stores{
		bookings: repository.NewBookingRepo(db),
		metadata: repository.NewSeatMetadataRepo(db),
		news:     repository.NewNewsRepo(db),
		users:    repository.NewUserRepo(db),
		db:       db,
		close:    func() { _ = db.Close() },
	}, nil
}

// publisher returns the RabbitMQ publisher, or a no-op one when no broker
// is configured.
func publisher(cfg config.Config, log *zap.Logger) service.EventPublisher {
	if cfg.AMQP.URL == "" {
		log.Info("AMQP_URL not set, seat events are not published")
		return service.NopPublisher{}
	}
	return &service.AMQPPublisher{URL: cfg.AMQP.URL, Queue: cfg.AMQP.Queue, Log: log}
}
