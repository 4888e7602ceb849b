// Package mod - /mod timeout command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createTimeoutCommand creates the /mod timeout subcommand
func createTimeoutCommand() *discord.Command {
	minMinutes := 1.0
	maxMinutes := float64(moderation.MaxTimeoutMinutes)
	return discord.NewCommand(
		"timeout",
		"Silencia a un usuario temporalmente",
		"mod",
		timeoutHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a silenciar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "minutos",
			Description: "Duración en minutos (máx. 28 días)",
			Required:    true,
			MinValue:    &minMinutes,
			MaxValue:    maxMinutes,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del silencio",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers)
}

// timeoutHandler handles the /mod timeout command
func timeoutHandler(ctx *discord.CommandContext) error {
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

	c, err := moderation.Get().Timeout(issuer, user.ID, minutes, reason)
	if err != nil {
		return replyModError(ctx, err)
	}

	return ctx.Reply(fmt.Sprintf(
		"🔇 **%s** ha sido silenciado por **%d** minutos (caso #%d).\n**Razón:** %s",
		user.Username, minutes, c.ID, c.Reason,
	))
}
