// Package mod - /mod untimeout command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createUntimeoutCommand creates the /mod untimeout subcommand
func createUntimeoutCommand() *discord.Command {
	return discord.NewCommand(
		"untimeout",
		"Retira el silencio de un usuario",
		"mod",
		untimeoutHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario al que retirar el silencio",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers)
}

// untimeoutHandler handles the /mod untimeout command
func untimeoutHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}

	issuer, err := issuerSnapshot(ctx)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo verificar tu autoridad.")
	}

	c, err := moderation.Get().Untimeout(issuer, user.ID)
	if err != nil {
		return replyModError(ctx, err)
	}

	return ctx.Reply(fmt.Sprintf("🔊 El silencio de **%s** ha sido retirado (caso #%d).", user.Username, c.ID))
}
