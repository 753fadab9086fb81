package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"bountyboard/internal/addressing"
	boardstore "bountyboard/internal/board/store"
	"bountyboard/internal/platform/config"
	"bountyboard/internal/platform/database"
	platformredis "bountyboard/internal/platform/redis"
	registrymetrics "bountyboard/internal/registry/metrics"
	"bountyboard/internal/registry/models"
	"bountyboard/internal/registry/ports"
	"bountyboard/internal/registry/service"
	"bountyboard/internal/registry/store/memory"
	registrypg "bountyboard/internal/registry/store/postgres"
	"bountyboard/pkg/domain"
	"bountyboard/pkg/platform/audit"
	"bountyboard/pkg/platform/audit/outbox"
	"bountyboard/pkg/platform/audit/publishers/compliance"
	auditmemory "bountyboard/pkg/platform/audit/store/memory"
	auditpg "bountyboard/pkg/platform/audit/store/postgres"
)

type auditStore interface {
	audit.Store
	audit.Outbox
}

type app struct {
	backend string
	service *service.Service
	relay   *outbox.Relay
	checks  map[string]func(context.Context) error
	closers []func() error
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// build assembles stores, the board reader, the audit pipeline and the
// registry service for the configured backend.
func build(ctx context.Context, cfg config.Config, log *slog.Logger, reg prometheus.Registerer) (*app, error) {
	a := &app{checks: map[string]func(context.Context) error{}}

	var (
		tx      ports.StoreTx
		stores  ports.Stores
		boards  boardstore.Writer
		auditDB auditStore
	)
	if cfg.Database.URL != "" {
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		if err := database.Migrate(ctx, db); err != nil {
			a.close()
			return nil, err
		}
		a.backend = "postgres"
		a.checks["postgres"] = db.PingContext
		tx, stores = registrypg.NewTxRunner(db), registrypg.NewStores(db)
		boards = boardstore.NewPostgres(db)
		auditDB = auditpg.New(db)
	} else {
		ledger := memory.NewLedger()
		a.backend = "memory"
		tx, stores = ledger, ledger.Stores()
		boards = boardstore.NewInMemory()
		auditDB = auditmemory.NewInMemoryStore()
	}

	if cfg.BoardsFile != "" {
		if err := seedBoards(ctx, cfg.BoardsFile, boards); err != nil {
			a.close()
			return nil, err
		}
		log.Info("seeded bounty boards", "file", cfg.BoardsFile)
	}

	var reader ports.BoardReader = boards
	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		a.close()
		return nil, err
	}
	if redisClient != nil {
		a.closers = append(a.closers, redisClient.Close)
		a.checks["redis"] = redisClient.Health
		reader = boardstore.NewRedisCache(redisClient.Client, boards,
			boardstore.WithCacheTTL(cfg.Redis.CacheTTL),
			boardstore.WithCacheLogger(log),
		)
	}

	publisher := compliance.New(auditDB,
		compliance.WithLogger(log),
		compliance.WithMetrics(compliance.NewMetrics(reg)),
	)
	a.closers = append(a.closers, publisher.Close)

	opts := []service.Option{
		service.WithLogger(log),
		service.WithAuditPublisher(publisher),
		service.WithMetrics(registrymetrics.New(reg)),
		service.WithRentSchedule(models.RentSchedule{
			LamportsPerByteYear: cfg.Ledger.RentLamportsPerByteYear,
			ExemptionYears:      cfg.Ledger.RentExemptionYears,
		}),
		service.WithGovernanceAuthorityCheck(cfg.Ledger.EnforceGovernance),
	}
	if cfg.Ledger.ProgramID != "" {
		programID, err := domain.ParseAddress(cfg.Ledger.ProgramID)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("program id: %w", err)
		}
		opts = append(opts, service.WithScheme(addressing.New(programID)))
	}
	a.service, err = service.New(tx, stores, reader, opts...)
	if err != nil {
		a.close()
		return nil, err
	}

	if len(cfg.Kafka.Brokers) > 0 {
		relay, err := newRelay(ctx, cfg.Kafka, auditDB, log, reg)
		if err != nil {
			a.close()
			return nil, err
		}
		a.relay = relay.Relay
		a.closers = append(a.closers, relay.close)
	}
	return a, nil
}

func seedBoards(ctx context.Context, path string, w boardstore.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open board seed: %w", err)
	}
	defer f.Close()
	return boardstore.LoadSeed(ctx, f, w)
}

type kafkaRelay struct {
	*outbox.Relay
	client *kgo.Client
}

func (r kafkaRelay) close() error {
	r.client.Close()
	return nil
}

func newRelay(ctx context.Context, cfg config.KafkaConfig, source audit.Outbox, log *slog.Logger, reg prometheus.Registerer) (kafkaRelay, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return kafkaRelay{}, fmt.Errorf("kafka client: %w", err)
	}
	if err := outbox.EnsureTopic(ctx, kadm.NewClient(client), cfg.Topic, 3, -1); err != nil {
		client.Close()
		return kafkaRelay{}, err
	}
	relay := outbox.New(source, client,
		outbox.WithTopic(cfg.Topic),
		outbox.WithInterval(cfg.RelayInterval),
		outbox.WithBatchSize(cfg.BatchSize),
		outbox.WithLogger(log),
		outbox.WithMetrics(outbox.NewMetrics(reg)),
	)
	return kafkaRelay{Relay: relay, client: client}, nil
}
