package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-survey/internal/config"
	"github.com/goliatone/go-survey/pkg/events"
	"github.com/goliatone/go-survey/pkg/orchestrator"
	"github.com/goliatone/go-survey/pkg/renderers/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var (
		addrFlag       = flag.String("addr", cfg.Server.Addr, "HTTP listen address")
		definitionFlag = flag.String("definition", cfg.Survey.Definition, "survey definition (YAML or JSON)")
		shutdownGrace  = flag.Duration("grace", 5*time.Second, "Shutdown grace period")
	)
	flag.Parse()

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	orch, err := orchestrator.Load(*definitionFlag, orchestrator.WithLogger(logger))
	if err != nil {
		log.Fatalf("definition: %v", err)
	}

	publisher, err := events.New(cfg.Publisher(logger))
	if err != nil {
		log.Fatalf("events: %v", err)
	}
	defer publisher.Close()

	server, err := web.New(orch,
		web.WithBasePath(cfg.Server.BasePath),
		web.WithCookieName(cfg.Server.Cookie),
		web.WithSecureCookies(cfg.Server.SecureCookie),
		web.WithSessionTTL(cfg.Server.SessionTTL),
		web.WithMaxSessions(cfg.Server.MaxSessions),
		web.WithExportFilename(cfg.Survey.ExportFilename),
		web.WithPublisher(publisher),
		web.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	httpServer := &http.Server{
		Addr:              *addrFlag,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening", "addr", *addrFlag, "survey", orch.Label(), "base_path", cfg.Server.BasePath, "publisher", cfg.Events.Publisher)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		log.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
