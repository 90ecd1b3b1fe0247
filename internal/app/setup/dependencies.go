package setup

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/config"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	publisher "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/kafka"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/metrics"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/postgres"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/postgres/repository"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/razorpay"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type EventPublisher interface {
	domain.PublisherPort
	Close() error
}

type Dependencies struct {
	Config       *config.PaymentConfig
	DB           *gorm.DB
	SQLDB        *sql.DB
	Publisher    EventPublisher
	Gateway      *razorpay.Client
	Registry     *prometheus.Registry
	Metrics      *metrics.PaymentMetrics
	Repositories *Repositories
}

type Repositories struct {
	OrderRepo    domain.OrderRepository
	Catalog      domain.Catalog
	DanglingRepo domain.DanglingIntentRepository
}

func InitializeDependencies(cfg *config.PaymentConfig) (*Dependencies, error) {
	db, err := postgres.InitDB(cfg.OrderDB)
	if err != nil {
		return nil, fmt.Errorf("order db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("order db handle: %w", err)
	}

	eventPublisher, err := initPublisher(cfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("payment publisher: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, "orders"),
	)

	return &Dependencies{
		Config:    cfg,
		DB:        db,
		SQLDB:     sqlDB,
		Publisher: eventPublisher,
		Gateway: razorpay.NewClient(razorpay.Config{
			BaseURL:   cfg.Gateway.BaseURL,
			KeyID:     cfg.Gateway.KeyID,
			KeySecret: cfg.Gateway.KeySecret,
			Timeout:   cfg.Gateway.Timeout,
		}),
		Registry: registry,
		Metrics:  metrics.NewPaymentMetrics(registry),
		Repositories: &Repositories{
			OrderRepo:    repository.NewDefaultOrderRepository(db),
			Catalog:      repository.NewDefaultCatalogRepository(db, cfg.Gateway.Currency),
			DanglingRepo: repository.NewDefaultDanglingIntentRepository(db),
		},
	}, nil
}

// initPublisher falls back to a no-op publisher when no brokers are
// configured.
func initPublisher(cfg *config.PaymentConfig) (EventPublisher, error) {
	if len(cfg.KafkaService.Brokers) == 0 {
		slog.Warn("kafka brokers not configured, payment events are disabled")
		return publisher.NopPublisher{}, nil
	}
	return publisher.NewKafkaPublisher(publisher.KafkaConfig{
		Brokers:      cfg.KafkaService.Brokers,
		Topic:        cfg.KafkaService.Topic,
		WriteTimeout: cfg.Gateway.Timeout,
	})
}

func (d *Dependencies) Close() error {
	var errs []error
	if d.Publisher != nil {
		if err := d.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	if d.SQLDB != nil {
		if err := d.SQLDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close order db: %w", err))
		}
	}
	return errors.Join(errs...)
}
