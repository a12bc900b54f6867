package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/stacksline/stacks-wallet/internal/api"
	"github.com/stacksline/stacks-wallet/internal/config"
	"github.com/stacksline/stacks-wallet/internal/crypto"
	"github.com/stacksline/stacks-wallet/internal/session"
	"github.com/stacksline/stacks-wallet/internal/store"
	"github.com/stacksline/stacks-wallet/stacks"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := config.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	cfg := config.Get()

	index := store.NewIndexStore(config.GetIndexPath())
	keystores := store.NewKeystoreStore(config.GetKeystoreDir())
	sess := session.New(
		index,
		keystores,
		config.GetNetwork(),
		time.Duration(cfg.AutoLockMinutes)*time.Minute,
		time.Now,
	)
	svc := stacks.NewService(index, keystores, sess, config.GetNetwork(), crypto.DefaultParams)

	router := api.SetupRouter(svc, log)

	addr := ":" + cfg.Port
	log.Info().
		Str("addr", addr).
		Str("network", cfg.Network).
		Str("walletDir", cfg.WalletDir).
		Int("autoLockMinutes", cfg.AutoLockMinutes).
		Msg("starting wallet server")

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
