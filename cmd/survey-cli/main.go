package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goliatone/go-survey/internal/config"
	"github.com/goliatone/go-survey/pkg/events"
	"github.com/goliatone/go-survey/pkg/export"
	"github.com/goliatone/go-survey/pkg/orchestrator"
	"github.com/goliatone/go-survey/pkg/renderers/tui"
	"github.com/goliatone/go-survey/pkg/survey"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	definition := flag.String("definition", cfg.Survey.Definition, "survey definition (YAML or JSON)")
	importPath := flag.String("import", "", "answers to resume from (JSON export)")
	output := flag.String("output", "", "where to write the answers (default from survey.export_filename)")
	xlsx := flag.Bool("xlsx", false, "also write a spreadsheet next to the JSON export")
	flag.Parse()

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	orch, err := orchestrator.Load(*definition, orchestrator.WithLogger(logger))
	if err != nil {
		log.Fatalf("definition: %v", err)
	}

	publisher, err := events.New(cfg.Publisher(logger))
	if err != nil {
		log.Fatalf("events: %v", err)
	}
	defer publisher.Close()

	host, err := tui.New(tui.WithOutput(os.Stdout), tui.WithLogger(logger))
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}

	sv := orch.Survey(host)
	if *importPath != "" {
		if err := export.ReadFile(*importPath, sv); err != nil {
			if errors.Is(err, survey.ErrParse) {
				log.Fatalf("import failed, state unchanged: %v", err)
			}
			log.Fatalf("import: %v", err)
		}
		fmt.Printf("Resumed %d answers from %s\n", sv.Answers().Len(), *importPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	submitted, err := run(ctx, orch, host, publisher, logger)
	if err != nil && !errors.Is(err, tui.ErrAborted) && !errors.Is(err, context.Canceled) {
		log.Fatalf("survey: %v", err)
	}

	path := *output
	if path == "" {
		path = export.Filename(cfg.Survey.ExportFilename, orch.Label())
	}
	if err := export.WriteFile(path, sv); err != nil {
		log.Fatalf("export: %v", err)
	}
	if *xlsx {
		data, err := export.XLSX(sv.Answers())
		if err != nil {
			log.Fatalf("export: %v", err)
		}
		xlsxPath := strings.TrimSuffix(path, ".json") + ".xlsx"
		if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
			log.Fatalf("export: %v", err)
		}
	}

	if submitted {
		fmt.Printf("Answers submitted and written to %s\n", path)
	} else {
		fmt.Printf("Answers saved to %s, resume with -import %s\n", path, path)
	}
}

// run draws passes until the survey is submitted or the user aborts.
func run(ctx context.Context, orch *orchestrator.Orchestrator, host *tui.Host, publisher events.Publisher, logger *slog.Logger) (bool, error) {
	for {
		var result orchestrator.Result
		err := host.Pass(ctx, func(ctx context.Context) error {
			var err error
			result, err = orch.Pass(ctx, host, publishSubmitted(ctx, publisher, logger))
			return err
		})
		if err != nil {
			return false, err
		}
		if result.Submitted {
			return true, nil
		}
	}
}

// publishSubmitted returns the submit callback. Failures are logged; the
// answers are still written to disk afterwards.
func publishSubmitted(ctx context.Context, publisher events.Publisher, logger *slog.Logger) func(*survey.Survey) {
	return func(sv *survey.Survey) {
		data, err := sv.Export()
		if err != nil {
			logger.Error("export answers for event", "survey", sv.Label(), "error", err)
			return
		}
		if err := publisher.Publish(ctx, events.Submitted(sv.Label(), "", data)); err != nil {
			logger.Error("publish survey event", "survey", sv.Label(), "event_type", events.EventSurveySubmitted, "error", err)
		}
	}
}
