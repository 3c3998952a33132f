// docchat TUI - chat with your documents from the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/cli"
	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference so the API gateway's 401 handler, which runs on
// request goroutines, can inject messages into the update loop.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdLogin:
		exitOnError(cli.HandleLogin(args))
	case cli.CmdLogout:
		exitOnError(cli.HandleLogout(args))
	case cli.CmdSignup:
		exitOnError(cli.HandleSignup(args))
	case cli.CmdWhoami:
		exitOnError(cli.HandleWhoami(args))
	case cli.CmdSessions:
		exitOnError(cli.HandleSessions(args))
	case cli.CmdUpload:
		exitOnError(cli.HandleUpload(args))
	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(args))
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI wires the services and starts the Bubble Tea program.
func runTUI(args cli.Args) {
	env, err := cli.NewEnv(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := env.Config

	setupLogging(cfg)

	theme := styles.NewTheme()
	app := NewApp(cfg, theme, env)

	// Central 401 interception: the gateway fires on a request goroutine,
	// the app handles the swap to the auth screen on the update loop.
	env.Client.OnUnauthorized(func() {
		programMu.Lock()
		p := programRef
		programMu.Unlock()
		if p != nil {
			p.Send(UnauthorizedMsg{})
		}
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(app, opts...)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running docchat: %v\n", err)
		os.Exit(1)
	}

	// Persist the split ratio the user dragged to.
	if ratio := app.chatView.Ratio(); ratio != cfg.UI.SplitRatio {
		cfg.UI.SplitRatio = ratio
		if err := config.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		}
	}
}

// setupLogging routes the standard logger to the log file, or discards it.
// The TUI owns the terminal, so logs must never hit stdout.
func setupLogging(cfg *config.Config) {
	if !cfg.Log.Enabled {
		log.SetOutput(io.Discard)
		return
	}

	path, err := cfg.LogPath()
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	if err := config.EnsureConfigDir(); err != nil {
		log.SetOutput(io.Discard)
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
}
