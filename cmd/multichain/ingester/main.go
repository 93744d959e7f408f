package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/multichain-backend/internal/metrics"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/audit"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/model"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/repository"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/service/ingester"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/spool"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/validator"
)

type config struct {
	SpoolDir           string        `long:"spool-dir" env:"MULTICHAIN_SPOOL_DIR" description:"directory with incoming envelopes" required:"true"`
	BatchSize          int           `long:"batch-size" env:"MULTICHAIN_INGESTER_BATCH_SIZE" description:"envelopes fetched per round" default:"64"`
	Workers            int           `long:"workers" env:"MULTICHAIN_INGESTER_WORKERS" description:"concurrent block workers" default:"8"`
	AuditFlushSize     int           `long:"audit-flush-size" env:"MULTICHAIN_AUDIT_FLUSH_SIZE" description:"validation rows per audit write" default:"1000"`
	AuditFlushInterval time.Duration `long:"audit-flush-interval" env:"MULTICHAIN_AUDIT_FLUSH_INTERVAL" description:"max delay of an audit write" default:"5s"`
	MetricsAddr        string        `long:"metrics-addr" env:"MULTICHAIN_INGESTER_METRICS_ADDR" description:"address for metrics server" default:":2112"`

	Store repository.Options `group:"Store Options"`
}

type recorder interface {
	Start(ctx context.Context)
	Stop()
	Record(ctx context.Context, v model.Validation) error
	Flush(ctx context.Context) error
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("multichain ingester failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := repository.Open(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close store", zap.Error(err))
		}
	}()

	v, err := validator.New(repo.Store, metrics.NewValidator(), logger)
	if err != nil {
		return err
	}

	var rec recorder = audit.Nop{}
	if repo.Validations != nil {
		rec, err = audit.NewRecorder(repo.Validations, metrics.NewAudit(), logger, audit.Config{
			FlushSize:     cfg.AuditFlushSize,
			FlushInterval: cfg.AuditFlushInterval,
		})
		if err != nil {
			return err
		}
	}
	// Stop flushes what is left, so the recorder must outlive the signal context.
	rec.Start(context.WithoutCancel(ctx))
	defer rec.Stop()

	dir, err := spool.Open(cfg.SpoolDir, logger)
	if err != nil {
		return err
	}

	svc, err := ingester.NewService(dir, v, repo.Store, rec, metrics.NewIngester(), logger, ingester.Config{
		BatchSize:   cfg.BatchSize,
		WorkerCount: cfg.Workers,
	})
	if err != nil {
		return err
	}

	logger.Info("ingester started", zap.String("spool_dir", cfg.SpoolDir))
	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("ingester stopped")
	return nil
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
