// Package events provides event handlers for interaction events.
// The confirmation buttons of the ack channels are resolved here.
package events

import (
	"errors"
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// RegisterInteractionEvents registers all interaction-related event handlers
func RegisterInteractionEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onInteractionCreate)
}

// onInteractionCreate is called when an interaction is created (buttons, menus, modals, etc.)
// Note: Slash commands are already handled by the CommandHandler
func onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	logger.Debug(fmt.Sprintf("🔘 Componente clickeado: %s", customID), "Interaction")

	caseID, _, ok := moderation.ParseAckCustomID(customID)
	if !ok {
		logger.Debug(fmt.Sprintf("Componente no manejado: %s", customID), "Interaction")
		return
	}

	handleAckButton(s, i, caseID)
}

// handleAckButton resolves the confirmation of a case. Only the sanctioned
// user can press it; everyone else gets an ephemeral notice.
func handleAckButton(s *discordgo.Session, i *discordgo.InteractionCreate, caseID int) {
	actorID := i.Member.User.ID

	_, err := moderation.Get().Acknowledge(actorID, caseID)
	if err != nil {
		var content string
		switch {
		case errors.Is(err, moderation.ErrWorkflowAccessDenied):
			content = "❌ Esta confirmación no es tuya."
		case errors.Is(err, moderation.ErrWorkflowNotFound):
			content = "❌ Este caso ya fue confirmado o no existe."
		default:
			logger.Error(fmt.Sprintf("Error confirmando el caso %d: %v", caseID, err), "Interaction")
			content = "❌ No se pudo registrar la confirmación. Inténtalo de nuevo."
		}

		respondErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if respondErr != nil {
			logger.Error(fmt.Sprintf("Error respondiendo interacción: %v", respondErr), "Interaction")
		}
		return
	}

	// El canal de confirmación se elimina al resolver, así que la respuesta
	// llega por privado.
	logger.Info(fmt.Sprintf("✅ Caso %d confirmado por %s", caseID, actorID), "Interaction")
}
