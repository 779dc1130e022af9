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

	"github.com/alexanderramin/studydesk/internal/assistant"
	"github.com/alexanderramin/studydesk/internal/cli"
	"github.com/alexanderramin/studydesk/internal/config"
	"github.com/alexanderramin/studydesk/internal/db"
	"github.com/alexanderramin/studydesk/internal/ics"
	"github.com/alexanderramin/studydesk/internal/llm"
	"github.com/alexanderramin/studydesk/internal/logging"
	"github.com/alexanderramin/studydesk/internal/repository"
	"github.com/alexanderramin/studydesk/internal/service"
	"github.com/alexanderramin/studydesk/internal/timeparse"
	"github.com/alexanderramin/studydesk/internal/workflow"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Config:      cfg,
		Logger:      logger,
		Workflows:   workflow.DefaultRegistry(),
		Now:         time.Now,
		Interactive: isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd()),
	}

	if cfg.Sample() {
		app.Events = service.NewEventService(service.NewSampleEventRepo(time.Now()), time.Now)
		logger.Info("using sample calendar")
	} else {
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		observer := service.NewLogUseCaseObserver(logger)
		app.Events = service.NewEventService(repository.NewSQLiteEventRepo(database), time.Now, observer)
		app.Imports = service.NewImportService(database, db.NewSQLiteUnitOfWork(database),
			ics.NewFetcher(nil, logger), time.Now, observer)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var client llm.LLMClient
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		observers := llm.MultiObserver{llm.NewMetricsObserver(reg)}
		if llmCfg.LogCalls {
			observers = append(observers, llm.NewLogObserver(logger))
		}
		client, err = llm.NewClient(llmCfg, observers)
		if err != nil {
			return fmt.Errorf("configuring llm: %w", err)
		}
	}
	app.Parser = timeparse.NewParser(client, logger)
	app.Completer = assistant.NewCompleter(client, logger)

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	return srv
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
