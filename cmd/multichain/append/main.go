package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/multichain-backend/internal/metrics"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/factory"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/repository"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/signature"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/spool"
)

type config struct {
	KeyFile            string `long:"key-file" env:"MULTICHAIN_KEY_FILE" description:"private key of the chain owner" required:"true"`
	Up                 uint32 `long:"up" description:"bytes uploaded in this interaction"`
	Down               uint32 `long:"down" description:"bytes downloaded in this interaction"`
	LinkPublicKey      string `long:"link-public-key" description:"base58 key of the counterparty block to answer"`
	LinkSequenceNumber uint32 `long:"link-sequence-number" description:"sequence number of the counterparty block to answer"`
	SpoolDir           string `long:"spool-dir" env:"MULTICHAIN_SPOOL_DIR" description:"also publish the new block to this spool directory"`

	Store repository.Options `group:"Store Options"`
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
		logger.Fatal("append failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	raw, err := os.ReadFile(cfg.KeyFile)
	if err != nil {
		return fmt.Errorf("read key file: %w", err)
	}
	key, err := signature.ParsePrivateKey(raw)
	if err != nil {
		return err
	}

	repo, err := repository.Open(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close store", zap.Error(err))
		}
	}()

	var link *block.Block
	if cfg.LinkPublicKey != "" {
		pk, err := block.ParsePublicKeyString(cfg.LinkPublicKey)
		if err != nil {
			return err
		}
		link, err = repo.Store.Block(ctx, pk, cfg.LinkSequenceNumber)
		if err != nil {
			return fmt.Errorf("load linked block: %w", err)
		}
		if link == nil {
			return fmt.Errorf("linked block %s:%d not found", cfg.LinkPublicKey, cfg.LinkSequenceNumber)
		}
	}

	appender, err := factory.NewAppender(repo.Store, metrics.NewAppender(), logger)
	if err != nil {
		return err
	}
	b, err := appender.Append(ctx, key, link, cfg.Up, cfg.Down)
	if err != nil {
		return err
	}
	logger.Info("block appended",
		zap.Stringer("block", b),
		zap.Stringer("hash", b.Hash()),
		zap.Bool("linked", b.IsLinked()),
	)

	if cfg.SpoolDir != "" {
		dir, err := spool.Open(cfg.SpoolDir, logger)
		if err != nil {
			return err
		}
		id, err := dir.Put(b.Hash().String(), b)
		if err != nil {
			return err
		}
		logger.Info("block spooled", zap.String("envelope", id))
	}

	fmt.Println(b.Hash().String())
	return nil
}
