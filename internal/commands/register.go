// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (mod, utils, dev)
package commands

import (
	"github.com/PancyStudios/PancyGuardGo/internal/commands/dev"
	"github.com/PancyStudios/PancyGuardGo/internal/commands/mod"
	"github.com/PancyStudios/PancyGuardGo/internal/commands/utils"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands
	utils.RegisterUtilsCommands(client)

	// Moderation commands (/mod warn, /mod ban, /mod timeout...)
	mod.RegisterModCommands(client)

	// Dev commands (registered only in the dev guild)
	dev.RegisterDevCommands(client)
}
