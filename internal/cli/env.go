// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/auth"
	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/storage"
)

// =============================================================================
// SHARED WIRING
// =============================================================================

// Env bundles the wired application services. Both the headless commands and
// the TUI build one of these at startup.
type Env struct {
	Config *config.Config
	Creds  *auth.Store
	Client *api.Client
	Flows  *auth.Flows
}

// NewEnv loads configuration and wires the credential store, API client, and
// auth flows. Tokens go to the OS keyring when one is available, falling back
// to a file under ~/.docchat; profiles always live on disk.
func NewEnv(args Args) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if args.BaseURL != "" {
		cfg.API.BaseURL = args.BaseURL
	}
	config.SetGlobal(cfg)

	tokens, err := tokenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open credential storage: %w", err)
	}
	profiles, err := storage.NewFileStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open profile storage: %w", err)
	}

	creds := auth.NewStore(tokens, profiles)
	if err := creds.Load(); err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, creds)
	return &Env{
		Config: cfg,
		Creds:  creds,
		Client: client,
		Flows:  auth.NewFlows(client, creds),
	}, nil
}

// tokenStore picks the token backend: the OS keyring when it opens, the file
// store otherwise. Headless hosts commonly have no keyring daemon.
func tokenStore() (storage.Store, error) {
	if ks, err := storage.NewKeyringStore(); err == nil {
		return ks, nil
	}
	return storage.NewFileStore()
}
