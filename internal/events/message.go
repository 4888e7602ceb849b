// Package events provides event handlers for message events
package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMessageEvents registers all message-related event handlers
func RegisterMessageEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onMessageUpdate)
	client.Session.AddHandler(onMessageDelete)
}

// onMessageUpdate is called when a message is edited
func onMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	logger.Debug(fmt.Sprintf("✏️ Mensaje editado por %s en canal %s",
		m.Author.Username, m.ChannelID), "Message")

	modLog := config.Get().ModLogChannelID
	if modLog == "" || modLog == m.ChannelID {
		return
	}

	embed := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("✏️ Mensaje de <@%s> editado en <#%s>.", m.Author.ID, m.ChannelID),
		Color:       0xF1C40F,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if m.BeforeUpdate != nil && m.BeforeUpdate.Content != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Antes", Value: truncate(m.BeforeUpdate.Content, 1024),
		})
	}
	if m.Content != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Después", Value: truncate(m.Content, 1024),
		})
	}

	if _, err := s.ChannelMessageSendEmbed(modLog, embed); err != nil {
		logger.Error(fmt.Sprintf("Error enviando edición al mod-log: %v", err), "Message")
	}
}

// onMessageDelete is called when a message is deleted
func onMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	logger.Debug(fmt.Sprintf("🗑️ Mensaje eliminado: ID %s en canal %s",
		m.ID, m.ChannelID), "Message")

	modLog := config.Get().ModLogChannelID
	if modLog == "" || modLog == m.ChannelID {
		return
	}

	embed := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("🗑️ Mensaje eliminado en <#%s>.", m.ChannelID),
		Color:       0x95A5A6,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	// El contenido solo está disponible si el mensaje estaba en caché
	if m.BeforeDelete != nil && m.BeforeDelete.Content != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Contenido", Value: truncate(m.BeforeDelete.Content, 1024),
		})
		if m.BeforeDelete.Author != nil {
			embed.Description = fmt.Sprintf("🗑️ Mensaje de <@%s> eliminado en <#%s>.",
				m.BeforeDelete.Author.ID, m.ChannelID)
		}
	}

	if _, err := s.ChannelMessageSendEmbed(modLog, embed); err != nil {
		logger.Error(fmt.Sprintf("Error enviando borrado al mod-log: %v", err), "Message")
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
