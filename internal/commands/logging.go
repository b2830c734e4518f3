package commands

import (
	"strings"

	"github.com/mikecat1024/notion-to-markdown/internal/logging"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

const commandModuleRoot = "notionmd.commands"

// CommandLogger returns the logger for one command module, tagged with the
// component and module name.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
