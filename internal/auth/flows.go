// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"

	"github.com/jeranaias/docchat-tui/internal/api"
)

// Flows orchestrates sign-in, sign-up, and session restoration against the
// gateway, keeping the credential store consistent: success sets token and
// profile as a pair, failure clears both. Half-set credentials are treated
// as a data-integrity bug, so there is no path that writes only one side.
type Flows struct {
	client *api.Client
	creds  *Store
}

// NewFlows wires auth orchestration over the gateway and credential store.
func NewFlows(client *api.Client, creds *Store) *Flows {
	return &Flows{client: client, creds: creds}
}

// SignIn validates input, exchanges credentials for a token, and commits
// the result to the credential store. Validation failures return before any
// network traffic.
func (f *Flows) SignIn(ctx context.Context, email, password string) (*api.User, error) {
	if err := ValidateSignIn(email, password); err != nil {
		return nil, err
	}

	data, err := f.client.SignIn(ctx, email, password)
	if err != nil {
		_ = f.creds.Clear()
		return nil, err
	}

	if err := f.creds.SetCredential(data.Token, &data.User); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// SignUp registers an account; the backend signs the new user straight in,
// so the store is committed the same way as SignIn.
func (f *Flows) SignUp(ctx context.Context, email, password, confirm string) (*api.User, error) {
	if err := ValidateSignUp(email, password, confirm); err != nil {
		return nil, err
	}

	data, err := f.client.SignUp(ctx, email, password)
	if err != nil {
		_ = f.creds.Clear()
		return nil, err
	}

	if err := f.creds.SetCredential(data.Token, &data.User); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// Restore validates a rehydrated token against /auth/me and refreshes the
// stored profile. A 401 is handled by the gateway's interceptor (which
// clears the store); any other failure leaves the credential as-is so a
// flaky network does not sign the user out.
func (f *Flows) Restore(ctx context.Context) (*api.User, error) {
	data, err := f.client.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := f.creds.SetUser(&data.User); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// SignOut clears the credential store.
func (f *Flows) SignOut() error {
	return f.creds.Clear()
}
