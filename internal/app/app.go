package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lyricss1/WeatherBot/internal/config"
	"github.com/lyricss1/WeatherBot/internal/metrics"
	"github.com/lyricss1/WeatherBot/internal/schedule"
	"github.com/lyricss1/WeatherBot/internal/store"
	"github.com/lyricss1/WeatherBot/internal/telegram"
	"github.com/lyricss1/WeatherBot/internal/weather"
)

type App struct {
	cfg    config.Config
	log    *zap.Logger
	bot    *tgbotapi.BotAPI
	opsSrv *http.Server
	met    *metrics.Metrics

	repo     store.Repo
	jobs     *schedule.Registry
	router   *telegram.Router
	dispatch *telegram.Dispatcher
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	met := metrics.New()

	mux := chi.NewRouter()
	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.HandlerFor(met.Registry(), promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, opsSrv: srv, met: met}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting weather bot",
		zap.String("http", a.cfg.HTTPAddr),
		zap.String("db", a.cfg.DBPath),
	)

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready")

	jobs, err := schedule.NewRegistry(a.log, a.met)
	if err != nil {
		a.log.Error("create job registry failed", zap.Error(err))
		_ = repo.Close()
		return err
	}
	a.jobs = jobs

	svc := weather.NewClient(a.cfg.OWMAPIKey, a.cfg.WeatherTimeout, a.log, a.met)
	a.router = telegram.NewRouter(a.bot, a.log, a.repo, svc, a.jobs, a.met)
	// Per-chat workers: one user's provider latency must not stall the others.
	a.dispatch = telegram.NewDispatcher(a.router, a.log)

	go func() {
		if err := a.opsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")

			// Create a short-lived shutdown context and cancel it immediately after use.
			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.opsSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if err := a.jobs.Shutdown(); err != nil {
				a.log.Warn("job registry shutdown error", zap.Error(err))
			}
			if a.repo != nil {
				_ = a.repo.Close()
			}
			return nil

		case upd := <-updCh:
			a.dispatch.Dispatch(ctx, upd)
		}
	}
}
