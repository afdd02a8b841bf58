package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/config"
	"github.com/MrLeaw/aws-clf-c02-quiz/internal/delivery/terminal"
	"github.com/MrLeaw/aws-clf-c02-quiz/internal/logger"
	"github.com/MrLeaw/aws-clf-c02-quiz/internal/repository"
	"github.com/MrLeaw/aws-clf-c02-quiz/internal/service"
)

const usage = `usage: quiz [command]

commands:
  run     take the quiz (default)
  dupes   list questions that appear more than once in the catalog
  check   report inconsistencies in the saved progress`

func main() {
	cmd := "run"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var code int
	switch cmd {
	case "run":
		code = run(ctx, cfg, lg)
	case "dupes":
		code = dupes(ctx, cfg, lg)
	case "check":
		code = check(ctx, cfg, lg)
	default:
		fmt.Fprintln(os.Stderr, usage)
		code = 2
	}

	stop()
	_ = lg.Sync()
	os.Exit(code)
}

func newSource(cfg *config.Config) *repository.CatalogRepository {
	if cfg.Source.Path != "" {
		return repository.NewFileCatalog(cfg.Source.Path)
	}
	return repository.NewHTTPCatalog(cfg.Source.URL, cfg.Source.Timeout)
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) int {
	store, closeStore, err := openStore(ctx, cfg, lg)
	if err != nil {
		lg.Error("failed to open progress store", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Could not open progress store: %v\n", err)
		return 1
	}
	defer closeStore()

	screen := terminal.NewScreen(os.Stdout)
	screen.RenderLoading()

	quiz := service.NewQuizService(newSource(cfg), store, lg)
	if err := start(ctx, quiz, cfg.Source.Attempts, lg); err != nil {
		lg.Error("failed to load questions", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Could not load questions: %v\n", err)
		return 1
	}

	handler := terminal.NewHandler(quiz, screen, os.Stdin, lg)

	// Reads from stdin cannot be interrupted, so the handler runs on its own
	// goroutine and a signal ends the process without waiting for it.
	errCh := make(chan error, 1)
	go func() { errCh <- handler.Run(ctx) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			lg.Error("quiz stopped", zap.Error(err))
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	case <-ctx.Done():
		lg.Info("shutdown signal received")
		fmt.Println()
	}
	return 0
}

// start fetches the catalog, retrying with a short pause between attempts.
func start(ctx context.Context, quiz *service.QuizService, attempts int, lg *zap.Logger) error {
	attempts = max(attempts, 1)

	var err error
	for i := range attempts {
		if err = quiz.Start(ctx); err == nil {
			return nil
		}
		lg.Warn("catalog fetch failed", zap.Int("attempt", i+1), zap.Error(err))

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * time.Second):
		}
	}
	return err
}

func dupes(ctx context.Context, cfg *config.Config, lg *zap.Logger) int {
	source := newSource(cfg)
	catalog, err := source.Load(ctx)
	if err != nil {
		lg.Error("failed to load questions", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Could not load questions from %s: %v\n", source.Location(), err)
		return 1
	}

	report := service.FindDuplicates(catalog)
	for _, d := range report.Duplicates {
		fmt.Println("Duplicate question found:")
		fmt.Println("Location 1:", d.First.Label())
		fmt.Println("Location 2:", d.Repeat.Label())
		fmt.Println()
	}
	fmt.Printf("Total questions: %d\n", report.Total)
	fmt.Printf("Unique questions: %d\n", report.Unique)
	fmt.Printf("Duplicates: %d\n", len(report.Duplicates))
	return 0
}

func check(ctx context.Context, cfg *config.Config, lg *zap.Logger) int {
	store, closeStore, err := openStore(ctx, cfg, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open progress store: %v\n", err)
		return 1
	}
	defer closeStore()

	progress, issues, err := service.NewProgressService(store).Inspect(ctx)
	switch {
	case errors.Is(err, service.ErrNoProgress):
		fmt.Println("No saved progress.")
		return 0
	case err != nil:
		fmt.Fprintf(os.Stderr, "Could not read progress: %v\n", err)
		return 1
	}

	fmt.Printf("Answered: %d, wrong: %d, samples: %d\n",
		len(progress.AlreadyAnsweredUUIDs), len(progress.WrongAnsweredUUIDs), len(progress.Times))

	if issues.Empty() {
		fmt.Println("No issues found.")
		return 0
	}
	for _, id := range issues.DuplicateAnswered {
		fmt.Println("Duplicate answered id:", id)
	}
	for _, id := range issues.WrongNotAnswered {
		fmt.Println("Wrong id missing from answered list:", id)
	}
	if issues.CounterMismatch {
		fmt.Println("Total count does not match the answered list.")
	}
	if issues.CorrectExceeds {
		fmt.Println("Correct count exceeds total count.")
	}
	return 1
}
