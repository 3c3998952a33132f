// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_DisplayName(t *testing.T) {
	assert.Equal(t, "You", RoleUser.DisplayName())
	assert.Equal(t, "Assistant", RoleAssistant.DisplayName())
	assert.Equal(t, "system", Role("system").DisplayName())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAssistant.Valid())
	assert.False(t, Role("tool").Valid())
	assert.False(t, Role("").Valid())
}

func TestNewMessage(t *testing.T) {
	msg := NewUserMessage("hello")
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, RoleUser, msg.Role)
	assert.Equal(t, "hello", msg.Content)
	assert.False(t, msg.CreatedAt.IsZero())
	assert.False(t, msg.IsFallback)

	other := NewUserMessage("hello")
	assert.NotEqual(t, msg.ID, other.ID)
}

func TestNewFallbackMessage(t *testing.T) {
	msg := NewFallbackMessage("Sorry, I encountered an error. Please try again.")
	assert.Equal(t, RoleAssistant, msg.Role)
	assert.True(t, msg.IsFallback)
}

func TestTranscript_AppendOrder(t *testing.T) {
	tr := NewTranscript()
	assert.True(t, tr.IsEmpty())

	tr.AppendUser("first")
	tr.AppendAssistant("second")
	tr.AppendUser("third")

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "second", msgs[1].Content)
	assert.Equal(t, "third", msgs[2].Content)

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, "third", last.Content)
}

func TestTranscript_Seed(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("stale")

	seed := []Message{
		NewUserMessage("T1"),
		NewAssistantMessage("T2"),
	}
	tr.Seed(seed)

	msgs := tr.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "T1", msgs[0].Content)
	assert.Equal(t, "T2", msgs[1].Content)

	// Seeding copies the input slice
	seed[0].Content = "mutated"
	assert.Equal(t, "T1", tr.Messages()[0].Content)
}

func TestTranscript_LastEmpty(t *testing.T) {
	tr := NewTranscript()
	_, ok := tr.Last()
	assert.False(t, ok)
}
