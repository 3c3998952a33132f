// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseArgs(t *testing.T, argv ...string) (Command, Args) {
	t.Helper()

	old := os.Args
	t.Cleanup(func() { os.Args = old })
	os.Args = append([]string{"docchat"}, argv...)
	return Parse()
}

func TestParse_DefaultIsTUI(t *testing.T) {
	cmd, _ := parseArgs(t)
	assert.Equal(t, CmdTUI, cmd)
}

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{[]string{"login"}, CmdLogin},
		{[]string{"logout"}, CmdLogout},
		{[]string{"signup"}, CmdSignup},
		{[]string{"whoami"}, CmdWhoami},
		{[]string{"sessions"}, CmdSessions},
		{[]string{"session"}, CmdSessions},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"--help"}, CmdHelp},
	}

	for _, tt := range tests {
		cmd, _ := parseArgs(t, tt.argv...)
		assert.Equal(t, tt.want, cmd, "argv %v", tt.argv)
	}
}

func TestParse_UploadTakesFile(t *testing.T) {
	cmd, args := parseArgs(t, "upload", "report.pdf")
	assert.Equal(t, CmdUpload, cmd)
	assert.Equal(t, "report.pdf", args.File)
}

func TestParse_ConfigSet(t *testing.T) {
	cmd, args := parseArgs(t, "config", "set", "ui.split_ratio", "35")
	assert.Equal(t, CmdConfig, cmd)
	assert.Equal(t, "ui.split_ratio", args.ConfigKey)
	assert.Equal(t, "35", args.ConfigVal)
}

func TestParse_GlobalFlags(t *testing.T) {
	cmd, args := parseArgs(t, "--json", "--api=http://dev:8000", "sessions")
	assert.Equal(t, CmdSessions, cmd)
	assert.True(t, args.JSON)
	assert.Equal(t, "http://dev:8000", args.BaseURL)
}

func TestParse_EmailFlag(t *testing.T) {
	_, args := parseArgs(t, "login", "--email", "a@b.com")
	assert.Equal(t, "a@b.com", args.Email)
}
