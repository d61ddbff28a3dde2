package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/ahmadalnaib/project-board/internal/navigator"
	"github.com/ahmadalnaib/project-board/internal/querystate"
	"github.com/ahmadalnaib/project-board/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("board", flag.ContinueOnError)
	server := flagSet.String("server", "http://localhost:8080", "Base URL of the project board server")
	resource := flagSet.String("list", "projects", "List to open (projects|tasks)")
	start := flagSet.String("url", "", "Start from a list URL, e.g. /tasks?status=pending&page=2")
	timeout := flagSet.Duration("timeout", 15*time.Second, "Request timeout")
	logFile := flagSet.String("log-file", "", "Write debug logs to this file")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	view, ok := tui.ViewFor(*resource)
	if !ok {
		return fmt.Errorf("unknown list %q", *resource)
	}
	initial := querystate.New(view.Path, nil)
	if *start != "" {
		parsed, err := querystate.ParseURL(*start)
		if err != nil {
			return err
		}
		if parsed.Path() != "" && parsed.Path() != view.Path {
			if view, ok = tui.ViewFor(parsed.Path()[1:]); !ok {
				return fmt.Errorf("unknown list path %q", parsed.Path())
			}
		}
		initial = querystate.New(view.Path, parsed.Params())
	}

	logger, closeLog, err := newLogger(*logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	dispatcher, err := navigator.NewHTTPDispatcher(*server, &http.Client{Timeout: *timeout})
	if err != nil {
		return err
	}
	nav := navigator.New(dispatcher, initial, navigator.WithLogger(logger))

	program := tea.NewProgram(tui.New(view, nav), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}
