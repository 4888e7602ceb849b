// Package mod - /mod cancelunban command
package mod

import (
	"errors"
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createCancelUnbanCommand creates the /mod cancelunban subcommand
func createCancelUnbanCommand() *discord.Command {
	minID := 1.0
	return discord.NewCommand(
		"cancelunban",
		"Cancela el unban automático de un tempban",
		"mod",
		cancelUnbanHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "caso",
			Description: "Número del caso de tempban",
			Required:    true,
			MinValue:    &minID,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers)
}

// cancelUnbanHandler handles the /mod cancelunban command
func cancelUnbanHandler(ctx *discord.CommandContext) error {
	caseID := int(ctx.GetIntOption("caso"))

	issuer, err := issuerSnapshot(ctx)
	if err != nil {
		return ctx.ReplyEphemeral("❌ No se pudo verificar tu autoridad.")
	}

	// Cancelar un unban equivale a convertir el tempban en permanente, así
	// que exige el mismo nivel que banear.
	if d := moderation.Authorize(moderation.Get().Ladder(), &issuer, nil, moderation.RequiredTier[models.ActionBan]); !d.Allowed {
		return replyModError(ctx, &moderation.PermissionDeniedError{Reason: d.Reason})
	}

	if err := moderation.Get().CancelScheduledUnban(caseID); err != nil {
		if errors.Is(err, moderation.ErrCaseNotFound) {
			return ctx.ReplyEphemeral(fmt.Sprintf("❌ El caso #%d no tiene un unban pendiente.", caseID))
		}
		return err
	}

	return ctx.Reply(fmt.Sprintf("🔒 El unban automático del caso #%d ha sido cancelado. El baneo es ahora permanente.", caseID))
}
