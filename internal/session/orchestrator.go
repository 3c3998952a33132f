// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/api"
	"github.com/jeranaias/docchat-tui/internal/model"
)

// =============================================================================
// STATE MACHINE
// =============================================================================

// State is the orchestrator's lifecycle state.
type State int

const (
	// StateAwaitingUpload means no session is bound; the chat surface should
	// prompt for a document instead of accepting input.
	StateAwaitingUpload State = iota
	// StateIdle means a session is bound and a message can be sent.
	StateIdle
	// StateSending means a send is in flight; further sends are rejected
	// until the reply (or fallback) lands.
	StateSending
)

// String returns a readable name for the state.
func (s State) String() string {
	switch s {
	case StateAwaitingUpload:
		return "awaiting-upload"
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	default:
		return "unknown"
	}
}

// Fallback texts substituted for a failed reply. The wording distinguishes
// a backend-reported failure from a network one: only the latter invites a
// retry, since the backend may have already recorded the turn.
const (
	FallbackApplication = "Sorry, I encountered an error processing your request."
	FallbackTransport   = "Sorry, I encountered an error. Please try again."
)

// Send rejection errors, surfaced inline by the input widget.
var (
	ErrNoSession    = errors.New("no document session is active")
	ErrSendInFlight = errors.New("previous message is still awaiting a reply")
	ErrEmptyMessage = errors.New("message is empty")
)

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Binding identifies the session the orchestrator is attached to, plus the
// document metadata the side pane renders.
type Binding struct {
	Token        string
	DocumentName string
	DocumentURL  string
}

// Orchestrator drives the chat lifecycle for the bound session.
type Orchestrator struct {
	client *api.Client

	state      State
	binding    Binding
	transcript *model.Transcript

	// generation is bumped on every bind/reset; replies stamped with an
	// older generation belong to an abandoned view and are dropped.
	generation uint64

	// seeded guards against re-seeding when a session view is re-entered.
	seeded bool
}

// NewOrchestrator creates an unbound orchestrator.
func NewOrchestrator(client *api.Client) *Orchestrator {
	return &Orchestrator{
		client:     client,
		state:      StateAwaitingUpload,
		transcript: model.NewTranscript(),
	}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	return o.state
}

// Session returns the current binding. Zero value when unbound.
func (o *Orchestrator) Session() Binding {
	return o.binding
}

// Transcript returns the transcript the orchestrator owns.
func (o *Orchestrator) Transcript() *model.Transcript {
	return o.transcript
}

// Generation returns the current view generation, for tests.
func (o *Orchestrator) Generation() uint64 {
	return o.generation
}

// Bind attaches the orchestrator to a session and resets the transcript.
// Any reply still in flight for the previous binding becomes stale.
func (o *Orchestrator) Bind(b Binding) {
	o.generation++
	o.binding = b
	o.state = StateIdle
	o.seeded = false
	o.transcript.Clear()
}

// Reset detaches the orchestrator, returning it to the awaiting-upload
// state. Used on sign-out and when a session is abandoned.
func (o *Orchestrator) Reset() {
	o.generation++
	o.binding = Binding{}
	o.state = StateAwaitingUpload
	o.seeded = false
	o.transcript.Clear()
}

// =============================================================================
// HISTORY SEEDING
// =============================================================================

// SeedHistory loads stored turns into the transcript, exactly once per
// binding. The detail endpoint returns turns newest-first; they are reversed
// here so the transcript reads chronologically. Unknown roles render as
// assistant turns rather than being dropped.
func (o *Orchestrator) SeedHistory(turns []api.SessionChat) {
	if o.seeded {
		return
	}

	msgs := make([]model.Message, 0, len(turns))
	for i := len(turns) - 1; i >= 0; i-- {
		turn := turns[i]
		if turn.Role == string(model.RoleUser) {
			msgs = append(msgs, model.NewUserMessage(turn.Message))
		} else {
			msgs = append(msgs, model.NewAssistantMessage(turn.Message))
		}
	}

	o.transcript.Seed(msgs)
	o.seeded = true
}

// =============================================================================
// SEND LIFECYCLE
// =============================================================================

// ReplyMsg resolves an in-flight send. Generation stamps the binding the
// send belonged to.
type ReplyMsg struct {
	Generation uint64
	Response   string
	Err        error
}

// Send appends the user's message optimistically, moves to StateSending, and
// returns the command that performs the network call. The rejection errors
// above are returned without touching the transcript.
func (o *Orchestrator) Send(ctx context.Context, content string) (tea.Cmd, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	switch o.state {
	case StateAwaitingUpload:
		return nil, ErrNoSession
	case StateSending:
		return nil, ErrSendInFlight
	}

	o.transcript.AppendUser(content)
	o.state = StateSending

	gen := o.generation
	token := o.binding.Token
	client := o.client
	return func() tea.Msg {
		data, err := client.Chat(ctx, token, content)
		if err != nil {
			return ReplyMsg{Generation: gen, Err: err}
		}
		return ReplyMsg{Generation: gen, Response: data.Response}
	}, nil
}

// HandleReply applies a resolved send: success appends the assistant's
// reply, failure appends the matching fallback. The optimistic user message
// is retained either way. Returns the terminal message and true when the
// reply was applied; stale or unexpected replies report false.
func (o *Orchestrator) HandleReply(msg ReplyMsg) (model.Message, bool) {
	if msg.Generation != o.generation || o.state != StateSending {
		return model.Message{}, false
	}

	o.state = StateIdle

	switch {
	case msg.Err == nil:
		return o.transcript.AppendAssistant(msg.Response), true
	case isEnvelopeFailure(msg.Err):
		return o.transcript.AppendFallback(FallbackApplication), true
	default:
		return o.transcript.AppendFallback(FallbackTransport), true
	}
}

// isEnvelopeFailure reports whether the backend itself rejected the turn
// (success:false on HTTP 200). Error statuses and network failures take the
// retry-worded fallback instead.
func isEnvelopeFailure(err error) bool {
	var apiErr *api.APIError
	return errors.As(err, &apiErr) && apiErr.Status == 0
}
