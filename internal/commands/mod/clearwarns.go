// Package mod - /mod clearwarns command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createClearWarnsCommand creates the /mod clearwarns subcommand
func createClearWarnsCommand() *discord.Command {
	return discord.NewCommand(
		"clearwarns",
		"Elimina todas las advertencias de un usuario",
		"mod",
		clearWarnsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario cuyas advertencias se eliminarán",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionAdministrator)
}

// clearWarnsHandler handles the /mod clearwarns command
func clearWarnsHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	issuer, err := issuerSnapshot(ctx)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo verificar tu autoridad.")
	}

	removed, c, err := moderation.Get().ClearWarns(issuer, user.ID)
	if err != nil {
		return replyModError(ctx, err)
	}

	if removed == 0 {
		return ctx.Reply(fmt.Sprintf("🧹 **%s** no tenía advertencias (caso #%d).", user.Username, c.ID))
	}
	return ctx.Reply(fmt.Sprintf("🧹 Se han eliminado **%d** advertencias de **%s** (caso #%d).", removed, user.Username, c.ID))
}
