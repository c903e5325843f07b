package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/kumargauravtiwari/youtube-summarizer/internal/adapter"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/app"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/config"
	"github.com/kumargauravtiwari/youtube-summarizer/internal/domain"
)

const requestTimeout = 5 * time.Minute

// linkNotes is the outcome for one link. Error is set only when the model
// failed; transcript problems are reported through Result.
type linkNotes struct {
	URL    string         `json:"url"`
	Result *domain.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Generates notes for one or more links without the chat bot:
//
//	go run ./cmd/tools/notes [-json] [-out notes.json] [-parallel 2] <url>...
func main() {
	asJSON := flag.Bool("json", false, "print results as JSON")
	outFile := flag.String("out", "", "also write JSON results to this file")
	parallel := flag.Int("parallel", 2, "links processed at once")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: notes [-json] [-out file] [-parallel n] <youtube-url>...")
		os.Exit(2)
	}

	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if !cfg.HasSummarizer() {
		logger.Warn("no summarization credential configured; set GEMINI_API_KEY or GOOGLE_API_KEY")
	}

	ctx := context.Background()
	container, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to assemble services", zap.Error(err))
	}
	if err := run(ctx, container, cfg, logger, flag.Args(), *asJSON, *outFile, *parallel); err != nil {
		container.Close()
		logger.Fatal("notes run failed", zap.Error(err))
	}
	container.Close()
}

func run(ctx context.Context, container *app.Container, cfg *config.Config, logger *zap.Logger, urls []string, asJSON bool, outFile string, parallel int) error {
	results := make([]linkNotes, len(urls))

	p := pool.New().WithMaxGoroutines(max(parallel, 1))
	for idx, rawURL := range urls {
		p.Go(func() {
			reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
			defer cancel()

			results[idx] = linkNotes{URL: rawURL}
			result, err := container.Notes.Notes(reqCtx, rawURL)
			if err != nil {
				logger.Error("notes generation failed", zap.String("url", rawURL), zap.Error(err))
				results[idx].Error = summaryErrorText(err, cfg.Notes.ExposeErrorDetails)
				return
			}
			results[idx].Result = result
		})
	}
	p.Wait()

	formatter := adapter.NewResponseFormatter(cfg.Bot.Prefix, false, cfg.Notes.ExposeErrorDetails)
	if asJSON {
		if err := json.NewEncoder(os.Stdout).Encode(results); err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
	} else {
		printResults(os.Stdout, formatter, results)
	}

	if outFile != "" {
		if err := writeResults(outFile, results); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		logger.Info("results written", zap.Int("count", len(results)), zap.String("output", outFile))
	}
	return nil
}

func summaryErrorText(err error, exposeDetails bool) string {
	if exposeDetails {
		return err.Error()
	}
	return "summarization failed"
}

func printResults(w io.Writer, formatter *adapter.ResponseFormatter, results []linkNotes) {
	for idx, r := range results {
		if idx > 0 {
			fmt.Fprintln(w, "\n---")
		}
		if r.Error != "" {
			fmt.Fprintln(w, formatter.FormatSummaryError())
			continue
		}
		fmt.Fprintln(w, formatter.FormatResult(r.Result))
	}
}

func writeResults(path string, results []linkNotes) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
