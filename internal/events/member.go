// Package events provides event handlers for member events
package events

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildMemberAdd)
	client.Session.AddHandler(onGuildMemberRemove)
}

// onGuildMemberAdd is called when a new member joins the server
func onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	logger.Info(fmt.Sprintf("👋 Nuevo miembro: %s en servidor %s",
		m.User.Username, m.GuildID), "Member")

	modLog := config.Get().ModLogChannelID
	if modLog == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("📥 <@%s> ha entrado al servidor.", m.User.ID),
		Color:       0x2ECC71,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: m.User.AvatarURL("64"),
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "ID: " + m.User.ID,
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := s.ChannelMessageSendEmbed(modLog, embed); err != nil {
		logger.Error(fmt.Sprintf("Error enviando entrada al mod-log: %v", err), "Member")
	}
}

// onGuildMemberRemove is called when a member leaves the server
func onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	logger.Info(fmt.Sprintf("👋 Adiós: %s salió del servidor %s",
		m.User.Username, m.GuildID), "Member")

	modLog := config.Get().ModLogChannelID
	if modLog == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("📤 **%s** ha salido del servidor.", m.User.Username),
		Color:       0xE74C3C,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: m.User.AvatarURL("64"),
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "ID: " + m.User.ID,
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := s.ChannelMessageSendEmbed(modLog, embed); err != nil {
		logger.Error(fmt.Sprintf("Error enviando salida al mod-log: %v", err), "Member")
	}
}
