package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/signature"
)

type config struct {
	KeyFile string `long:"key-file" env:"MULTICHAIN_KEY_FILE" description:"path of the private key file to create" required:"true"`
	Force   bool   `long:"force" description:"overwrite an existing key file"`
}

func main() {
	cfg := config{}

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

	if err := run(cfg, logger); err != nil {
		logger.Fatal("keygen failed", zap.Error(err))
	}
}

func run(cfg config, logger *zap.Logger) error {
	key, err := signature.GenerateKey()
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	mode := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if cfg.Force {
		mode = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(cfg.KeyFile, mode, 0o600)
	if err != nil {
		return fmt.Errorf("create key file: %w", err)
	}
	if _, err := f.Write(key.Bytes()); err != nil {
		_ = f.Close()
		return fmt.Errorf("write key file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close key file: %w", err)
	}

	pk := key.PublicKey()
	logger.Info("key generated", zap.String("key_file", cfg.KeyFile), zap.Stringer("public_key", pk))
	fmt.Println(pk.String())
	return nil
}
