// Gymbro is an AI fitness coach that runs against a local Ollama model.
//
// It keeps a single in-process conversation, extracts the user's fitness
// level and goals as they chat, and can generate two artifacts on
// request: a 3-day workout plan (text) and a progress report (CSV).
// Configuration is loaded from a single YAML file discovered
// automatically (see [config.DefaultSearchPaths]); GYMBRO_* environment
// variables override individual settings.
//
// Usage:
//
//	gymbro                   Start an interactive coaching session
//	gymbro chat              Same as above
//	gymbro ask <question>    Ask a single question (for testing)
//	gymbro version           Print version and build information
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gymbro-ai/gymbro/internal/agent"
	"github.com/gymbro-ai/gymbro/internal/buildinfo"
	"github.com/gymbro-ai/gymbro/internal/config"
	"github.com/gymbro-ai/gymbro/internal/llm"
	"github.com/gymbro-ai/gymbro/internal/plan"
	"github.com/gymbro-ai/gymbro/internal/report"
	"github.com/gymbro-ai/gymbro/internal/router"
	"github.com/gymbro-ai/gymbro/internal/tools"
	"github.com/gymbro-ai/gymbro/internal/workoutlog"
)

// main constructs the OS-level environment and delegates to run, keeping
// os.Exit and the standard streams out of the application logic so the
// lifecycle can be driven from tests.
func main() {
	ctx := context.Background()

	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// run is the real entry point. Arguments are parsed by hand: the flag
// package relies on package-level globals, and our surface is small
// enough that manual parsing stays clearer than a CLI framework.
func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	var configPath string
	var outputFmt string // "text" (default) or "json"
	var command string
	var cmdArgs []string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-config" && i+1 < len(args):
			configPath = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-config="):
			configPath = strings.TrimPrefix(args[i], "-config=")
		case (args[i] == "-o" || args[i] == "--output") && i+1 < len(args):
			outputFmt = args[i+1]
			i++
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			return printUsage(stdout)
		case !strings.HasPrefix(args[i], "-") && command == "":
			command = args[i]
		default:
			if command != "" {
				cmdArgs = append(cmdArgs, args[i])
			} else {
				return fmt.Errorf("unknown flag: %s (try -help)", args[i])
			}
		}
	}

	if command == "" {
		command = "chat"
	}

	switch command {
	case "version":
		return printVersion(stdout, outputFmt)
	case "help":
		return printUsage(stdout)
	case "chat", "ask":
	default:
		return fmt.Errorf("unknown command %q (try -help)", command)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	// Logs go to stderr so the conversation on stdout stays clean.
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	logger.Debug("starting", "build", buildinfo.String())

	session, cleanup, err := buildSession(logger, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if command == "ask" {
		if len(cmdArgs) == 0 {
			return fmt.Errorf("usage: gymbro ask <question>")
		}
		reply, err := session.Turn(ctx, strings.Join(cmdArgs, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, reply)
		return nil
	}

	return runChat(ctx, stdin, stdout, session, llm.NewClient(cfg.Ollama.URL))
}

func loadConfig(explicit string) (*config.Config, error) {
	path, err := config.FindConfig(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		// No config file anywhere: run on defaults. Env overrides still
		// apply so GYMBRO_MODEL etc. keep working without a file.
		cfg := config.Default()
		return cfg, nil
	}
	return config.Load(path)
}

// buildSession wires the full turn pipeline: workout log store, output
// writers, tool registry, router, executor, model client, session.
func buildSession(logger *slog.Logger, cfg *config.Config) (*agent.Session, func(), error) {
	mode, err := router.ParseMode(cfg.Chat.Routing)
	if err != nil {
		return nil, nil, err
	}

	store, err := workoutlog.Open(filepath.Join(cfg.DataDir, "gymbro.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("open workout log: %w", err)
	}
	if n, err := store.SeedSampleData(); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("seed workout log: %w", err)
	} else if n > 0 {
		logger.Info("seeded workout log with sample data", "entries", n)
	}

	reg := tools.NewRegistry()
	reg.Register(plan.Tool(plan.NewWriter(cfg.Outputs.WorkoutPlanPath())))
	reg.Register(report.Tool(store, report.NewWriter(cfg.Outputs.ProgressReportPath())))

	session := agent.NewSession(
		logger,
		llm.NewClient(cfg.Ollama.URL),
		router.New(logger, reg),
		reg,
		tools.NewExecutor(logger, reg),
		agent.Config{
			Model:              cfg.Ollama.Model,
			Temperature:        cfg.Ollama.Temperature,
			NumPredict:         cfg.Ollama.NumPredict,
			NumCtx:             cfg.Ollama.NumCtx,
			MaxContextMessages: cfg.Chat.MaxContextMessages,
			Mode:               mode,
		},
	)

	return session, func() { store.Close() }, nil
}

func printVersion(w io.Writer, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(buildinfo.Info())
	}
	_, err := fmt.Fprintln(w, buildinfo.String())
	return err
}

func printUsage(w io.Writer) error {
	usage := `gymbro - AI fitness coach on a local Ollama model

Usage:
  gymbro [flags]               Start an interactive coaching session
  gymbro [flags] chat          Same as above
  gymbro [flags] ask <text>    Ask a single question and exit
  gymbro version               Print version information

Flags:
  -config <path>   Config file (default: search ./config.yaml,
                   ~/.config/gymbro/config.yaml, /etc/gymbro/config.yaml)
  -o <format>      Output format for version: text or json
  -help            Show this help

Type "exit", "quit", or "bye" inside a session to leave.
`
	_, err := io.WriteString(w, usage)
	return err
}
