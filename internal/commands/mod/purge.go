// Package mod - /mod purge command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createPurgeCommand creates the /mod purge subcommand
func createPurgeCommand() *discord.Command {
	minAmount := float64(moderation.MinPurgeAmount)
	maxAmount := float64(moderation.MaxPurgeAmount)
	return discord.NewCommand(
		"purge",
		"Borra mensajes recientes del canal",
		"mod",
		purgeHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "cantidad",
			Description: "Cantidad de mensajes a borrar (2-100)",
			Required:    true,
			MinValue:    &minAmount,
			MaxValue:    maxAmount,
		},
	).WithUserPermissions(discordgo.PermissionManageMessages).
		WithBotPermissions(discordgo.PermissionManageMessages)
}

// purgeHandler handles the /mod purge command
func purgeHandler(ctx *discord.CommandContext) error {
	amount := int(ctx.GetIntOption("cantidad"))

	issuer, err := issuerSnapshot(ctx)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo verificar tu autoridad.")
	}

	deleted, c, err := moderation.Get().Purge(issuer, ctx.Interaction.ChannelID, amount)
	if err != nil {
		return replyModError(ctx, err)
	}

	// Los mensajes de más de 14 días no pueden borrarse en lote
	if deleted < amount {
		return ctx.ReplyEphemeral(fmt.Sprintf(
			"🧹 Se han borrado **%d** de %d mensajes (caso #%d). Los mensajes de más de 14 días no se pueden borrar en lote.",
			deleted, amount, c.ID,
		))
	}
	return ctx.ReplyEphemeral(fmt.Sprintf("🧹 Se han borrado **%d** mensajes (caso #%d).", deleted, c.ID))
}
