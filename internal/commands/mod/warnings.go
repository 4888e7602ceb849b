package mod

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createWarningsCommand creates the /mod warns subcommand
func createWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"warns",
		"Lista de advertencias de un usuario",
		"mod",
		warningsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "[STAFF] Usuario a buscar (opcional)",
			Required:    false,
		},
	).RequiresDatabase()
}

func warningsHandler(ctx *discord.CommandContext) error {
	// 1. Determinar objetivo y permisos
	targetUser := ctx.GetUserOption("usuario")
	isSelf := false

	perms, err := ctx.Session.UserChannelPermissions(ctx.User().ID, ctx.Interaction.ChannelID)
	if err != nil {
		perms = 0
	}
	isModerator := (perms & discordgo.PermissionManageMessages) != 0

	if targetUser == nil {
		targetUser = ctx.User()
		isSelf = true
	}

	// Si intenta ver advertencias de otro y no es moderador
	if !isSelf && !isModerator {
		return ctx.ReplyEphemeral("❌ No tienes permisos para ver la lista de advertencias de otro usuario.")
	}

	warnings := moderation.Get().Warnings().ListFor(targetUser.ID)

	if len(warnings) == 0 {
		return ctx.ReplyEphemeralEmbed(&discordgo.MessageEmbed{
			Title:       fmt.Sprintf("🔖 - Lista de advertencias de %s", targetUser.Username),
			Color:       0x00FF00, // Green
			Description: fmt.Sprintf("No se han encontrado advertencias del usuario en este servidor\n\n> 💫 - **Cantidad de advertencias:** 0\n> 🕒 - **Fecha de consulta:** <t:%d>", time.Now().Unix()),
			Footer: &discordgo.MessageEmbedFooter{
				Text: "🛡️ - Developed by PancyStudios",
			},
		})
	}

	embedList := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🔖 - Lista de advertencias de %s (%s)", targetUser.Username, targetUser.ID),
		Color: 0xFFA500, // Orange
		Footer: &discordgo.MessageEmbedFooter{
			Text: "🛡️ - Developed by PancyStudios",
		},
	}

	// Solo las 10 más recientes para no desbordar el embed
	shown := warnings
	if len(shown) > 10 {
		shown = shown[len(shown)-10:]
	}

	var description string
	for _, warn := range shown {
		modName := "Oculto"
		if isModerator {
			modUser, err := ctx.Session.User(warn.Moderator)
			if err == nil {
				modName = modUser.Username
			} else {
				modName = warn.Moderator
			}
		}

		description += fmt.Sprintf("> **Advertencia:** %s \n> **Moderador:** %s \n> **ID:** %d \n\n", warn.Reason, modName, warn.ID)
	}

	description += fmt.Sprintf("> 💫 - **Cantidad de advertencias:** %d \n> 🕒 - **Fecha de consulta:** <t:%d>", len(warnings), time.Now().Unix())
	embedList.Description = description

	return ctx.ReplyEphemeralEmbed(embedList)
}
