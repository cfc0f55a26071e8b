package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SASASDAa/tgsg-sub000/internal/api"
	"github.com/SASASDAa/tgsg-sub000/internal/constants"
	"github.com/SASASDAa/tgsg-sub000/internal/engine"
	"github.com/SASASDAa/tgsg-sub000/internal/logging"
	"github.com/SASASDAa/tgsg-sub000/internal/matchmaking"
	"github.com/SASASDAa/tgsg-sub000/internal/service"
	"github.com/SASASDAa/tgsg-sub000/internal/version"
)

func main() {
	settings := loadSettingsOrExit()
	logging.SetLevel(settings.LogLevel)
	defer logging.Sync()

	cfg := loadConfigOrExit(settings.ConfigPath)
	cat := buildCatalogOrExit(cfg)
	repo := createRepositoryOrExit(settings.DBPath, cat)
	rng := newRand(settings.Seed)

	e := engine.New(cat, cfg.Rules)
	mm := matchmaking.NewStub(e, newRand(rng.Int63()))
	mm.Delay = cfg.Timings.MatchmakingDelay
	mm.DeckSize = cfg.DeckSize
	mm.CopyLimits = cfg.CopyLimits

	matches := service.NewManager(e, mm, repo, cfg.Rewards, rng, service.Options{
		BotDelay:    cfg.Timings.BotDelay,
		TurnTimeout: cfg.Timings.TurnTimeout,
	})
	defer matches.Shutdown()

	issuer, err := api.NewSessionIssuer(settings.SessionSecret, settings.SessionTTL, settings.SessionSecureCookie)
	if err != nil {
		logging.Fatal(constants.ErrFailedCreateSession, err, nil)
	}
	handler := api.NewGameHandler(repo, matches, api.HandlerOptions{
		Rewards:    cfg.Rewards,
		DeckSize:   cfg.DeckSize,
		CopyLimits: cfg.CopyLimits,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	startTimeoutScanner(ctx, matches)

	addr := settings.Addr(cfg)
	srv := &http.Server{Addr: addr, Handler: api.NewRouter(handler, issuer)}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Info("Server started: "+version.Current().String(), logging.Fields{
		constants.LogFieldAddr:       addr,
		constants.LogFieldConfigPath: settings.ConfigPath,
		constants.LogFieldDBPath:     settings.DBPath,
		constants.LogFieldCount:      len(cat.All()),
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("Failed to start server", err, nil)
	}
	logging.Info("Server stopped", nil)
}
