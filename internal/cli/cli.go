// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements argument parsing and the headless subcommands.
// Running docchat with no arguments starts the TUI; everything else is a
// one-shot command that prints to stdout and exits.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (overridden at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdSignup
	CmdWhoami
	CmdSessions
	CmdUpload
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON    bool
	BaseURL string // --api overrides config api.base_url

	// Command-specific
	Email     string
	File      string
	ConfigKey string
	ConfigVal string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `docchat - chat with your documents from the terminal

Usage:
  docchat                    Start the TUI (default)
  docchat login              Sign in and store the token
  docchat signup             Create an account
  docchat logout             Clear stored credentials
  docchat whoami             Show the signed-in user
  docchat sessions           List your sessions
  docchat upload <file>      Upload a document and create a session
  docchat config [show|get|set]  Configuration
  docchat version            Show version information
  docchat help               Show this help

Flags:
  --api <url>                Override the backend base URL
  --email <address>          Email for login/signup (prompted otherwise)
  --json                     Machine-readable output where supported

Environment:
  DOCCHAT_API_URL            Backend base URL
  DOCCHAT_TOKEN              Bearer token override (skips the keyring)
  DOCCHAT_THEME              UI theme (dark, light, high-contrast)
  DOCCHAT_NO_LOG             Disable the log file

Configuration lives at ~/.docchat/config.toml.`

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	args := Args{}
	raw := os.Args[1:]

	var positional []string
	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		switch {
		case arg == "--json":
			args.JSON = true
		case arg == "--api" && i+1 < len(raw):
			i++
			args.BaseURL = raw[i]
		case strings.HasPrefix(arg, "--api="):
			args.BaseURL = strings.TrimPrefix(arg, "--api=")
		case arg == "--email" && i+1 < len(raw):
			i++
			args.Email = raw[i]
		case strings.HasPrefix(arg, "--email="):
			args.Email = strings.TrimPrefix(arg, "--email=")
		case arg == "-h" || arg == "--help":
			return CmdHelp, args
		default:
			positional = append(positional, arg)
		}
	}
	args.Raw = positional

	if len(positional) == 0 {
		return CmdTUI, args
	}

	cmd := positional[0]
	rest := positional[1:]
	args.Raw = rest

	switch cmd {
	case "login":
		return CmdLogin, args
	case "logout":
		return CmdLogout, args
	case "signup":
		return CmdSignup, args
	case "whoami":
		return CmdWhoami, args
	case "sessions", "session":
		return CmdSessions, args
	case "upload":
		if len(rest) > 0 {
			args.File = rest[0]
		}
		return CmdUpload, args
	case "config":
		if len(rest) > 1 {
			args.ConfigKey = rest[1]
		}
		if len(rest) > 2 {
			args.ConfigVal = rest[2]
		}
		return CmdConfig, args
	case "version", "-v", "--version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s\n", cmd, usageText)
		os.Exit(2)
		return CmdHelp, args
	}
}

// HandleHelp prints usage information.
func HandleHelp() {
	fmt.Println(usageText)
}

// HandleVersion prints version information.
func HandleVersion(args Args) {
	if args.JSON {
		fmt.Printf(`{"version": %q, "commit": %q, "built": %q}`+"\n", Version, GitCommit, BuildDate)
		return
	}
	fmt.Printf("docchat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
