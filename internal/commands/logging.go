package commands

import (
	"strings"

	"github.com/goliatone/go-newsroom/internal/logging"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// CommandLogger returns the commands module logger narrowed to one command
// group, tagged so every handler entry can be filtered by group.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	name := strings.TrimSpace(group)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"command_group": name,
	})
}
