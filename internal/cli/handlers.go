// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/auth"
	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/util"
)

// =============================================================================
// AUTH COMMANDS
// =============================================================================

// HandleLogin signs in and stores the credential pair.
func HandleLogin(args Args) error {
	env, err := NewEnv(args)
	if err != nil {
		return err
	}

	email := args.Email
	if email == "" {
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := env.Flows.SignIn(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("sign in failed: %s", api.HumanMessage(err, "could not reach the backend"))
	}

	fmt.Printf("Signed in as %s\n", user.Email)
	return nil
}

// HandleSignup creates an account and stores the credential pair.
func HandleSignup(args Args) error {
	env, err := NewEnv(args)
	if err != nil {
		return err
	}

	email := args.Email
	if email == "" {
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}

	user, err := env.Flows.SignUp(context.Background(), email, password, confirm)
	if err != nil {
		return fmt.Errorf("sign up failed: %s", api.HumanMessage(err, "could not reach the backend"))
	}

	fmt.Printf("Account created. Signed in as %s\n", user.Email)
	return nil
}

// HandleLogout clears stored credentials.
func HandleLogout(args Args) error {
	env, err := NewEnv(args)
	if err != nil {
		return err
	}

	if env.Creds.State() != auth.StateSignedIn {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := env.Flows.SignOut(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}

// HandleWhoami verifies the stored token against the backend.
func HandleWhoami(args Args) error {
	env, err := NewEnv(args)
	if err != nil {
		return err
	}

	if env.Creds.State() != auth.StateSignedIn {
		fmt.Println("Not signed in.")
		return nil
	}

	user, err := env.Flows.Restore(context.Background())
	if err != nil {
		return fmt.Errorf("token check failed: %s", api.HumanMessage(err, "could not reach the backend"))
	}

	if args.JSON {
		return json.NewEncoder(os.Stdout).Encode(user)
	}
	fmt.Printf("Signed in as %s\n", user.Email)
	return nil
}

// =============================================================================
// SESSION COMMANDS
// =============================================================================

// HandleSessions lists the user's sessions.
func HandleSessions(args Args) error {
	env, err := NewEnv(args)
	if err != nil {
		return err
	}
	if env.Creds.State() != auth.StateSignedIn {
		return fmt.Errorf("not signed in; run 'docchat login' first")
	}

	sessions, err := env.Client.ListSessions(context.Background(), api.Page{})
	if err != nil {
		return fmt.Errorf("failed to list sessions: %s", api.HumanMessage(err, "could not reach the backend"))
	}

	if args.JSON {
		return json.NewEncoder(os.Stdout).Encode(sessions)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions. Upload a document to start one.")
		return nil
	}
	for _, s := range sessions {
		title := "(untitled)"
		if s.Title != nil && *s.Title != "" {
			title = *s.Title
		}
		fmt.Printf("%-12s  %-40s  %s\n", s.SessionToken, util.TruncateRunes(title, 40), s.CreatedAt)
	}
	return nil
}

// uploadExtensions mirrors the document types the backend accepts.
var uploadExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".md":   true,
	".txt":  true,
}

// HandleUpload uploads a document and creates a session for it.
func HandleUpload(args Args) error {
	if args.File == "" {
		return fmt.Errorf("usage: docchat upload <file>")
	}

	env, err := NewEnv(args)
	if err != nil {
		return err
	}
	if env.Creds.State() != auth.StateSignedIn {
		return fmt.Errorf("not signed in; run 'docchat login' first")
	}

	ext := strings.ToLower(filepath.Ext(args.File))
	if !uploadExtensions[ext] {
		return fmt.Errorf("unsupported file type %q (use .pdf, .docx, .md, or .txt)", ext)
	}

	f, err := os.Open(args.File)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", args.File, err)
	}
	defer f.Close()

	data, err := env.Client.CreateSession(context.Background(), filepath.Base(args.File), f)
	if err != nil {
		return fmt.Errorf("upload failed: %s", api.HumanMessage(err, "could not reach the backend"))
	}

	if args.JSON {
		return json.NewEncoder(os.Stdout).Encode(data)
	}
	fmt.Printf("Uploaded %s\nSession token: %s\n", filepath.Base(args.File), data.SessionToken)
	return nil
}

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// HandleConfig implements 'docchat config [show|get|set]'.
func HandleConfig(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	sub := "show"
	if len(args.Raw) > 0 {
		sub = args.Raw[0]
	}

	switch sub {
	case "show":
		fmt.Printf("api.base_url       = %s\n", cfg.API.BaseURL)
		fmt.Printf("api.timeout_secs   = %d\n", cfg.API.TimeoutSecs)
		fmt.Printf("ui.theme           = %s\n", cfg.UI.Theme)
		fmt.Printf("ui.split_ratio     = %d\n", cfg.UI.SplitRatio)
		fmt.Printf("ui.mouse_enabled   = %t\n", cfg.UI.MouseEnabled)
		fmt.Printf("ui.markdown        = %t\n", cfg.UI.Markdown)
		fmt.Printf("upload.max_file_size_mb = %d\n", cfg.Upload.MaxFileSizeMB)
		fmt.Printf("log.enabled        = %t\n", cfg.Log.Enabled)
		return nil

	case "get":
		if args.ConfigKey == "" {
			return fmt.Errorf("usage: docchat config get <key>")
		}
		val, err := cfg.Get(args.ConfigKey)
		if err != nil {
			return err
		}
		fmt.Println(val)
		return nil

	case "set":
		if args.ConfigKey == "" || args.ConfigVal == "" {
			return fmt.Errorf("usage: docchat config set <key> <value>")
		}
		if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", args.ConfigKey, args.ConfigVal)
		return nil

	default:
		return fmt.Errorf("unknown config subcommand %q (use show, get, or set)", sub)
	}
}

// =============================================================================
// PROMPT HELPERS
// =============================================================================

// promptLine reads one line from stdin.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing it.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}
