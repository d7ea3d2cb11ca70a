// lumi - a gentle companion chat for your terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/lumi-tui/internal/config"
	"github.com/jeranaias/lumi-tui/internal/notify"
	"github.com/jeranaias/lumi-tui/internal/speech"
	"github.com/jeranaias/lumi-tui/internal/storage"
	"github.com/jeranaias/lumi-tui/internal/tasks"
	"github.com/jeranaias/lumi-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			fmt.Printf("lumi %s (%s, built %s)\n", Version, GitCommit, BuildDate)
			return
		case "help", "--help", "-h":
			printUsage()
			return
		}
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "lumi is an interactive application; run it from a terminal")
		os.Exit(1)
	}

	setupDebugLog()

	if err := config.EnsureConfigDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not create ~/.lumi: %v\n", err)
		os.Exit(1)
	}
	settings := config.NewStore()
	cfg := settings.Get()

	// Task persistence is best-effort: a broken database degrades to an
	// in-memory session.
	taskStore := tasks.NewStore()
	var persist *storage.TaskStore
	if path, err := storage.DefaultPath(); err == nil {
		db, err := storage.Open(path)
		if err != nil {
			log.Printf("task persistence unavailable: %v", err)
		} else {
			persist = db
			defer persist.Close()
			if loaded, err := persist.Load(); err == nil {
				taskStore.Replace(loaded)
			} else {
				log.Printf("could not load saved tasks: %v", err)
			}
		}
	}

	var recognizer speech.Recognizer
	if cfg.TranscriberCmd != "" {
		recognizer = speech.NewCommandRecognizer(cfg.TranscriberCmd)
	}

	m := chat.New(chat.Options{
		Settings:   settings,
		TaskStore:  taskStore,
		Persist:    persist,
		Recognizer: recognizer,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The reminder scheduler runs on its own timer, independent of any
	// in-flight chat activity. Fired reminders reach the UI as messages.
	scheduler := tasks.NewScheduler(taskStore, notify.NewTerminalNotifier())
	go scheduler.Run(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-scheduler.Events():
				p.Send(chat.ReminderFiredMsg{Task: ev.Task})
			}
		}
	}()

	// Settings edited outside the app (or by another instance) are
	// picked up live.
	stopWatch, err := settings.Watch(func(cfg config.Config) {
		p.Send(chat.ConfigReloadedMsg{Cfg: cfg})
	})
	if err != nil {
		log.Printf("config watcher unavailable: %v", err)
	} else {
		defer stopWatch()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running lumi: %v\n", err)
		os.Exit(1)
	}
}

// setupDebugLog routes the standard logger to ~/.lumi/debug.log when
// LUMI_DEBUG is set, and discards it otherwise so log output cannot
// corrupt the alternate screen.
func setupDebugLog() {
	log.SetOutput(io.Discard)
	if os.Getenv("LUMI_DEBUG") == "" {
		return
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return
	}
	f, err := tea.LogToFile(filepath.Join(dir, "debug.log"), "lumi")
	if err != nil {
		return
	}
	log.SetOutput(f)
}

func printUsage() {
	fmt.Print(`lumi - a gentle companion chat for your terminal

Usage:
  lumi            start the app
  lumi version    print version information
  lumi help       show this help

Inside the app, type /help for the command list.

Environment:
  LUMI_API_KEY    API key fallback when none is saved in settings
  LUMI_PROVIDER   override the provider (gemini or openai)
  LUMI_MODEL      override the model id
  LUMI_THEME      override the theme (light or dark)
  LUMI_DEBUG      write a debug log to ~/.lumi/debug.log
`)
}
