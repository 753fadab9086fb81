package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"bountyboard/internal/platform/config"
	"bountyboard/internal/platform/httpserver"
	"bountyboard/internal/platform/logger"
	"bountyboard/internal/platform/metrics"
	"bountyboard/internal/platform/middleware"
	"bountyboard/internal/platform/ratelimit"
	"bountyboard/internal/registry/handler"
	"bountyboard/pkg/platform/httputil"
	"bountyboard/pkg/platform/middleware/metadata"
	"bountyboard/pkg/platform/middleware/requesttime"
	"bountyboard/pkg/platform/secrets"
	pstrings "bountyboard/pkg/platform/strings"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	bindFlags(pflag.CommandLine, &cfg)
	pflag.Parse()
	cfg.Kafka.Brokers = pstrings.DedupeAndTrim(cfg.Kafka.Brokers)
	cfg.Server.TrustedProxies = pstrings.DedupeAndTrim(cfg.Server.TrustedProxies)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New(cfg.Log.Format, cfg.Log.Level)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func bindFlags(fs *pflag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "HTTP listen address")
	fs.StringVar(&cfg.BoardsFile, "boards", cfg.BoardsFile, "YAML file seeding bounty boards and bounties")
	fs.StringVar(&cfg.Database.URL, "database-url", cfg.Database.URL, "Postgres URL; empty runs the in-memory ledger")
	fs.StringVar(&cfg.Redis.URL, "redis-url", cfg.Redis.URL, "Redis URL for the board cache; empty disables it")
	fs.StringSliceVar(&cfg.Kafka.Brokers, "kafka-brokers", cfg.Kafka.Brokers, "Kafka seed brokers for the audit relay")
	fs.StringVar(&cfg.Kafka.Topic, "audit-topic", cfg.Kafka.Topic, "Kafka topic for audit events")
	fs.StringVar(&cfg.Ledger.ProgramID, "program-id", cfg.Ledger.ProgramID, "base58 program ID used for address derivation")
	fs.Uint64Var(&cfg.Ledger.RentLamportsPerByteYear, "rent-lamports-per-byte-year", cfg.Ledger.RentLamportsPerByteYear, "rent price; 0 disables charging")
	fs.Uint64Var(&cfg.Ledger.RentExemptionYears, "rent-exemption-years", cfg.Ledger.RentExemptionYears, "years of rent charged up front")
	fs.BoolVar(&cfg.Ledger.EnforceGovernance, "enforce-governance", cfg.Ledger.EnforceGovernance, "require the board's recorded authority to add contributors")
	fs.StringSliceVar(&cfg.Server.TrustedProxies, "trusted-proxies", cfg.Server.TrustedProxies, "CIDRs or IPs of proxies whose forwarding headers are trusted")
	fs.IntVar(&cfg.Server.WriteRateLimit, "write-rate-limit", cfg.Server.WriteRateLimit, "signed writes allowed per client per window; 0 disables")
	fs.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "json or text")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "debug, info, warn or error")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.DefaultRegisterer

	app, err := build(ctx, cfg, log, reg)
	if err != nil {
		return err
	}
	defer app.close()

	adminHash, err := adminTokenHash(cfg.Server)
	if err != nil {
		return err
	}
	if adminHash == "" {
		log.Warn("no admin token configured, /admin routes are disabled")
	}

	trusted, err := metadata.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(metadata.ClientMetadata(trusted))
	router.Use(requesttime.Middleware)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Latency(metrics.New(reg)))
	router.Use(chimiddleware.Timeout(30 * time.Second))

	router.Get("/healthz", app.health)
	router.Handle("/metrics", promhttp.Handler())
	var limiter *ratelimit.Buckets
	if cfg.Server.WriteRateLimit > 0 {
		limiter = ratelimit.NewBuckets(cfg.Server.WriteRateLimit, cfg.Server.WriteRateWindow)
	}
	handler.New(app.service, log, adminHash,
		handler.WithWriteLimiter(ratelimit.PerClient(limiter, log)),
	).Register(router)

	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	if limiter != nil {
		g.Go(func() error {
			return limiter.Run(gctx)
		})
	}
	g.Go(func() error {
		log.Info("starting bountyboard registry", "addr", cfg.Server.Addr, "backend", app.backend)
		return httpserver.Run(gctx, srv, cfg.Server.ShutdownTimeout)
	})
	if app.relay != nil {
		g.Go(func() error {
			log.Info("starting audit outbox relay", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
			return app.relay.Run(gctx)
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("shutdown complete")
	return nil
}

func adminTokenHash(cfg config.Server) (string, error) {
	if cfg.AdminTokenHash != "" {
		return cfg.AdminTokenHash, nil
	}
	if cfg.AdminToken == "" {
		return "", nil
	}
	hash, err := secrets.Hash(cfg.AdminToken)
	if err != nil {
		return "", fmt.Errorf("hash admin token: %w", err)
	}
	return hash, nil
}

func (a *app) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	for name, check := range a.checks {
		if err := check(ctx); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "dependency": name})
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
