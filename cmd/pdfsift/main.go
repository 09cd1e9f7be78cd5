package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pdfsift/pdfsift/internal/agent"
	"github.com/pdfsift/pdfsift/internal/common"
	"github.com/pdfsift/pdfsift/internal/extract"
	"github.com/pdfsift/pdfsift/internal/llm"
	"github.com/pdfsift/pdfsift/internal/llm/deepseek"
	"github.com/pdfsift/pdfsift/internal/llm/ollama"
	"github.com/pdfsift/pdfsift/internal/report"
	"github.com/pdfsift/pdfsift/internal/task"
	"github.com/pdfsift/pdfsift/internal/textproc"
)

// Exit codes: 0 success (including degraded fallback results), 1 file or
// extraction errors, 2 usage errors.
const (
	exitOK    = 0
	exitFile  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pdfsift", flag.ContinueOnError)
	fs.SetOutput(stderr)

	taskID := fs.String("task", "general", "analysis task (see --list-tasks)")
	format := fs.String("format", "text", "report format: text or json")
	output := fs.String("output", "", "write the report to this file instead of stdout")
	useCloud := fs.Bool("use-cloud", false, "use the hosted DeepSeek backend instead of local Ollama")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	configPath := fs.String("config", "", "path to a YAML config file")
	listTasks := fs.Bool("list-tasks", false, "list available analysis tasks and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: pdfsift [flags] <file.pdf>\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *listTasks {
		for _, def := range task.List() {
			fmt.Fprintf(stdout, "%-10s %s\n", def.ID, def.Description)
		}
		return exitOK
	}

	mode, err := report.ParseMode(*format)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		fs.Usage()
		return exitUsage
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	pdfPath := fs.Arg(0)

	// resolve the task before touching the file so a typo in --task fails
	// fast regardless of the PDF
	def, err := task.Resolve(*taskID)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitUsage
	}

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitUsage
	}

	backend, agentCfg, err := buildBackend(cfg, *useCloud, logger)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitUsage
	}

	extracted, err := extract.ExtractFile(pdfPath, logger)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFile
	}

	text := textproc.Normalize(extracted.Pages)
	if text == "" {
		fmt.Fprintln(stderr, "error: no text could be extracted from PDF")
		return exitFile
	}

	if *verbose {
		stats := textproc.Stats(text)
		logger.Debug("document.stats",
			"pages", extracted.PageCount,
			"bytes", extracted.ByteSize,
			"chars", stats.Characters,
			"words", stats.Words,
			"sentences", stats.Sentences,
			"reading_minutes", stats.ReadingTimeMinutes,
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), backendTimeout(cfg, *useCloud))
	defer cancel()

	result := agent.New(backend, agentCfg, logger).Analyze(ctx, text, def)

	rendered, err := report.Format(result, mode)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitUsage
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
			fmt.Fprintln(stderr, "error: write report:", err)
			return exitFile
		}
		logger.Debug("report.written", "path", *output)
		return exitOK
	}

	fmt.Fprintln(stdout, rendered)
	return exitOK
}

// buildBackend picks exactly one backend. An explicit --use-cloud request is
// never silently downgraded to the local backend.
func buildBackend(cfg *common.Config, useCloud bool, logger *slog.Logger) (llm.Backend, agent.Config, error) {
	if useCloud {
		if err := cfg.ValidateCloud(); err != nil {
			return nil, agent.Config{}, err
		}
		client := deepseek.NewClient(deepseek.Config{
			APIKey:      cfg.Cloud.APIKey,
			BaseURL:     cfg.Cloud.BaseURL,
			Model:       cfg.Cloud.Model,
			Temperature: cfg.Cloud.Temperature,
			Timeout:     cfg.Cloud.Timeout,
		}, logger)
		return client, agent.Config{Temperature: cfg.Cloud.Temperature, MaxTokens: cfg.Cloud.MaxTokens}, nil
	}

	client := ollama.NewClient(cfg.Local.Host, cfg.Local.Model, cfg.Local.Timeout, logger)
	return client, agent.Config{Temperature: cfg.Local.Temperature, MaxTokens: cfg.Local.MaxTokens}, nil
}

func backendTimeout(cfg *common.Config, useCloud bool) time.Duration {
	if useCloud {
		return cfg.Cloud.Timeout + 10*time.Second
	}
	return cfg.Local.Timeout + 10*time.Second
}
