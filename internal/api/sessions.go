// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// CreateSession uploads a document as multipart form data under the "file"
// field and returns the server-assigned session identifiers. The caller has
// already vetted the file type; the backend re-validates regardless.
func (c *Client) CreateSession(ctx context.Context, filename string, content io.Reader) (*CreateSessionData, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/session/create"), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var data CreateSessionData
	if err := c.do(ctx, req, &data, requestOpts{}); err != nil {
		return nil, err
	}
	return &data, nil
}

// Chat posts one user message to a session and returns the assistant reply.
// The session is addressed by its token in the session_id field, matching
// the backend contract.
func (c *Client) Chat(ctx context.Context, sessionToken, message string) (*ChatData, error) {
	var data ChatData
	err := c.postJSON(ctx, "/session/chat", chatRequest{SessionID: sessionToken, Message: message}, &data, requestOpts{})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// ListSessions returns the user's sessions. Pagination parameters are sent
// only when set on the page; absent values are omitted from the query
// entirely rather than defaulted.
func (c *Client) ListSessions(ctx context.Context, page Page) ([]Session, error) {
	var data SessionsData
	if err := c.getJSON(ctx, "/session/", page.query(), &data); err != nil {
		return nil, err
	}
	return data.Sessions, nil
}

// GetSession fetches one session's detail: its metadata, document info, and
// stored turns. Turns arrive newest-first.
func (c *Client) GetSession(ctx context.Context, sessionToken string, page Page) (*SessionDetailData, error) {
	var data SessionDetailData
	if err := c.getJSON(ctx, "/session/"+url.PathEscape(sessionToken), page.query(), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// query renders the page as URL query values, omitting unset fields.
func (p Page) query() url.Values {
	q := url.Values{}
	if p.Offset != nil {
		q.Set("offset", strconv.Itoa(*p.Offset))
	}
	if p.Limit != nil {
		q.Set("limit", strconv.Itoa(*p.Limit))
	}
	return q
}
