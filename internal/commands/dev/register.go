package dev

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// RegisterDevCommands registers all dev commands as /dev subcommands
// (only in the dev guild)
func RegisterDevCommands(client *discord.ExtendedClient) {
	evalCmd := CreateEvalCommand()

	// Build the /dev command group with all subcommands
	devGroup := client.CommandHandler.BuildCommandGroup(
		"dev",
		"Comandos de desarrollo",
		evalCmd,
	)

	// Register the command group as dev-only command
	client.CommandHandler.AddDevCommand(devGroup)
}
