// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

// SignUp registers a new account and returns the issued token and profile.
func (c *Client) SignUp(ctx context.Context, email, password string) (*AuthData, error) {
	var data AuthData
	err := c.postJSON(ctx, "/auth/signup", AuthRequest{Email: email, Password: password}, &data, requestOpts{})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// SignIn exchanges credentials for a token and profile. A 401 here is
// returned as ErrInvalidCredentials and never triggers the global
// de-authentication path.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthData, error) {
	var data AuthData
	err := c.postJSON(ctx, "/auth/signin", AuthRequest{Email: email, Password: password}, &data, requestOpts{signIn: true})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// Me validates the current token and returns the profile bound to it. Used
// at startup to restore a rehydrated session.
func (c *Client) Me(ctx context.Context) (*AuthData, error) {
	var data AuthData
	if err := c.getJSON(ctx, "/auth/me", nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
