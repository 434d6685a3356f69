package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"PAIBot/internal/advisor"
	"PAIBot/internal/api"
	"PAIBot/internal/assessment"
	"PAIBot/internal/catalog"
	"PAIBot/internal/config"
	"PAIBot/internal/i18n"
	"PAIBot/internal/llm"
	"PAIBot/internal/recorder"
	"PAIBot/internal/scheduler"
	"PAIBot/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assessment HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log, err := newLogger(level, cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = log
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load(cfg.Assessment.CatalogFile)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	log.Info("track catalog loaded", zap.String("version", cat.Version()), zap.Int("tracks", cat.Len()))

	store := openStore(ctx, cfg, log)
	defer store.Close()

	rec := openRecorder(cfg, log)
	defer rec.Close()

	inf, err := llm.FromConfig(ctx, cfg.Inference, log)
	if err != nil {
		return fmt.Errorf("init inference: %w", err)
	}
	log.Info("inference provider ready", zap.String("provider", inf.Name()))

	proc := assessment.NewProcessor(inf, assessment.Settings{
		MaxRounds:           cfg.Assessment.MaxRounds,
		TurnCeiling:         cfg.Assessment.TurnCeiling,
		ConfidenceThreshold: cfg.Assessment.ConfidenceThreshold,
	}, log)
	svc := advisor.New(store, proc, cat, rec, log)

	sched := scheduler.NewScheduler(ctx, store, cfg.SessionTimeout(), log)
	if err := sched.RegisterAll(cfg.Schedule.SweepCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.NewRouter(api.Deps{
			Advisor: svc,
			Catalog: cat,
			Info: api.AppInfo{
				MaxRounds:           cfg.Assessment.MaxRounds,
				ConfidenceThreshold: cfg.Assessment.ConfidenceThreshold,
				SessionTimeout:      cfg.Session.TimeoutMinutes,
				CatalogVersion:      cat.Version(),
			},
			DefaultLocale: i18n.Parse(cfg.Assessment.DefaultLanguage),
			Logger:        log,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	log.Info("PAIBot stopped")
	return nil
}

// openStore uses SQLite when a path is configured and falls back to memory.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) session.Store {
	if cfg.Database.SQLitePath == "" {
		return session.NewMemoryStore()
	}
	st, err := session.NewSQLiteStore(ctx, cfg.Database.SQLitePath, log)
	if err != nil {
		log.Warn("init sqlite session store failed, using memory", zap.Error(err))
		return session.NewMemoryStore()
	}
	return st
}

func openRecorder(cfg *config.Config, log *zap.Logger) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
	if err != nil {
		log.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	return rec
}
