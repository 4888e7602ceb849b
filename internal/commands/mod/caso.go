// Package mod - /mod caso command
package mod

import (
	"errors"
	"fmt"
	"sort"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createCasoCommand creates the /mod caso subcommand
func createCasoCommand() *discord.Command {
	minID := 1.0
	return discord.NewCommand(
		"caso",
		"Consulta un caso de moderación por su número",
		"mod",
		casoHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "numero",
			Description: "Número del caso",
			Required:    true,
			MinValue:    &minID,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// casoHandler handles the /mod caso command
func casoHandler(ctx *discord.CommandContext) error {
	caseID := int(ctx.GetIntOption("numero"))

	c, err := moderation.Get().Ledger().Find(caseID)
	if err != nil {
		if errors.Is(err, moderation.ErrCaseNotFound) {
			return ctx.ReplyEphemeral(fmt.Sprintf("❌ No existe el caso #%d.", caseID))
		}
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📋 Caso #%d — %s", c.ID, c.Action),
		Color: 0x3498DB,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Moderador", Value: fmt.Sprintf("<@%s>", c.Moderator), Inline: true},
			{Name: "Razón", Value: c.Reason, Inline: false},
			{Name: "Fecha", Value: fmt.Sprintf("<t:%d>", c.Timestamp), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "🛡️ - Developed by PancyStudios",
		},
	}
	if c.Target != "" {
		embed.Fields = append([]*discordgo.MessageEmbedField{
			{Name: "Usuario", Value: fmt.Sprintf("<@%s>", c.Target), Inline: true},
		}, embed.Fields...)
	}

	if len(c.Extra) > 0 {
		keys := make([]string, 0, len(c.Extra))
		for k := range c.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var details string
		for _, k := range keys {
			details += fmt.Sprintf("> **%s:** %s\n", k, c.Extra[k])
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Detalles", Value: details, Inline: false,
		})
	}

	return ctx.ReplyEphemeralEmbed(embed)
}
