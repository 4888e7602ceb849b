// Package mod - /mod tempban command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createTempBanCommand creates the /mod tempban subcommand
func createTempBanCommand() *discord.Command {
	minMinutes := 1.0
	return discord.NewCommand(
		"tempban",
		"Banea a un usuario temporalmente",
		"mod",
		tempBanHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a banear",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "minutos",
			Description: "Duración del baneo en minutos",
			Required:    true,
			MinValue:    &minMinutes,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del baneo",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers)
}

// tempBanHandler handles the /mod tempban command
func tempBanHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("usuario")
	if user == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	minutes := int(ctx.GetIntOption("minutos"))
	reason := ctx.GetStringOption("razon")

	issuer, err := issuerSnapshot(ctx)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo verificar tu autoridad.")
	}

	c, err := moderation.Get().TempBan(issuer, user.ID, minutes, reason)
	if err != nil {
		return replyModError(ctx, err)
	}

	return ctx.Reply(fmt.Sprintf(
		"⏳ **%s** ha sido baneado por **%d** minutos (caso #%d).\n**Razón:** %s\nEl baneo se levantará automáticamente.",
		user.Username, minutes, c.ID, c.Reason,
	))
}
