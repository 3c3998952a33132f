// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual UI components for the docchat TUI.

# Components

  - SplitPane: the resizable two-pane layout controller. Owns the divider
    drag state machine and the chat/document width split.
  - DocPane: renders the bound document's metadata and link.
  - StatusBar: the bottom status line with connection state and shortcuts.
  - Spinner: loading indicators, ASCII-safe.
  - ErrorToast / ToastManager: non-blocking corner notifications that
    auto-dismiss, so errors never steal focus from the chat input.

All components follow Bubble Tea conventions: value-semantics models with
Update returning the new model, and View producing a string.
*/
package components
