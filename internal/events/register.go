// Package events provides a registry for organizing bot events.
// Events are organized by category (member, message, interaction, etc.)
package events

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registrando eventos del bot...", "Events")

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Interaction events (confirmation buttons)
	RegisterInteractionEvents(client)

	// Member events (join/leave, mirrored to the mod-log)
	RegisterMemberEvents(client)

	// Message events (edit/delete, mirrored to the mod-log)
	RegisterMessageEvents(client)

	// Shard events (connect/disconnect/resume)
	RegisterShardEvents(client)

	logger.Success("✅ Todos los eventos registrados correctamente", "Events")
}
