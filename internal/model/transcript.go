// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Transcript is the ordered message sequence for one session view.
//
// Not safe for concurrent use: the Bubble Tea update loop is the only
// mutator, so all access is serialized by the event loop.
type Transcript struct {
	messages []Message
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a message to the end of the transcript and returns it.
func (t *Transcript) Append(msg Message) Message {
	t.messages = append(t.messages, msg)
	return msg
}

// AppendUser appends a user message.
func (t *Transcript) AppendUser(content string) Message {
	return t.Append(NewUserMessage(content))
}

// AppendAssistant appends an assistant message.
func (t *Transcript) AppendAssistant(content string) Message {
	return t.Append(NewAssistantMessage(content))
}

// AppendFallback appends the assistant-shaped error substitute.
func (t *Transcript) AppendFallback(content string) Message {
	return t.Append(NewFallbackMessage(content))
}

// Seed replaces the transcript content wholesale. Used exactly once per
// session load, with turns already reordered to chronological.
func (t *Transcript) Seed(msgs []Message) {
	t.messages = append([]Message(nil), msgs...)
}

// Messages returns the transcript in insertion order. The returned slice is
// shared; callers must not mutate it.
func (t *Transcript) Messages() []Message {
	return t.messages
}

// Last returns the most recent message, or false when empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// IsEmpty reports whether the transcript has no messages.
func (t *Transcript) IsEmpty() bool {
	return len(t.messages) == 0
}

// Clear removes all messages.
func (t *Transcript) Clear() {
	t.messages = nil
}
