package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/G4F0334/gamemarket/internal/config"
	"github.com/G4F0334/gamemarket/internal/core/application"
	"github.com/G4F0334/gamemarket/internal/infrastructure/pubsub"
	dbbadger "github.com/G4F0334/gamemarket/internal/infrastructure/storage/db/badger"
	httpinterface "github.com/G4F0334/gamemarket/internal/interfaces/http"
	"github.com/G4F0334/gamemarket/pkg/stats"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	var (
		logLevel          = log.Level(config.GetInt(config.LogLevelKey))
		dbDir             = config.GetDbDir()
		httpAddress       = fmt.Sprintf(":%d", config.GetInt(config.HTTPListeningPortKey))
		txMaxAttempts     = config.GetInt(config.TxMaxAttemptsKey)
		signatureValidity = config.GetDuration(config.SignatureValidityKey)
		faucetEnabled     = config.GetBool(config.FaucetEnabledKey)
		faucetMaxAmount   = config.GetUint64(config.FaucetMaxAmountKey)
		webhookTimeout    = config.GetDuration(config.WebhookTimeoutKey)
		statsInterval     = time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
	)

	log.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if statsInterval > 0 {
		stats.EnableMemoryStatistics(ctx, statsInterval)
	}

	dbLogger := log.New()
	dbLogger.SetLevel(log.WarnLevel)

	repoManager, err := dbbadger.NewRepoManager(dbDir, txMaxAttempts, dbLogger)
	if err != nil {
		log.WithError(err).Fatal("failed to open market db")
	}
	log.Debug("market db opened")

	pubsubSvc, err := pubsub.NewService(dbDir, webhookTimeout, dbLogger)
	if err != nil {
		repoManager.Close()
		log.WithError(err).Fatal("failed to start webhook service")
	}
	log.Debug("webhook service started")

	appConfig := &application.Config{
		RepoManager:       repoManager,
		PubSub:            pubsubSvc,
		SignatureValidity: signatureValidity,
		FaucetEnabled:     faucetEnabled,
		FaucetMaxAmount:   faucetMaxAmount,
	}
	if faucetEnabled {
		log.Warnf("faucet enabled, max airdrop amount %d", faucetMaxAmount)
	}

	svc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Address: httpAddress,
		App:     appConfig,
	})
	if err != nil {
		pubsubSvc.Close()
		repoManager.Close()
		log.WithError(err).Fatal("failed to initialize http interface")
	}

	log.RegisterExitHandler(svc.Stop)
	log.RegisterExitHandler(func() {
		if err := pubsubSvc.Close(); err != nil {
			log.WithError(err).Warn("failed to close webhook db")
		}
	})
	log.RegisterExitHandler(repoManager.Close)

	log.Info("starting daemon")

	if err := svc.Start(); err != nil {
		log.WithError(err).Fatal("failed to start http interface")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	<-sigChan

	log.Info("shutting down daemon")
	cancel()
	log.Exit(0)
}
