// Package discord contains the platform side of moderation: the effector
// translates abstract moderation effects into discordgo calls.
package discord

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

var sessionEffector *SessionEffector

// InitEffector stores the global effector instance for command handlers.
func InitEffector(e *SessionEffector) {
	sessionEffector = e
}

// Effector returns the global effector instance.
func Effector() *SessionEffector {
	return sessionEffector
}

// SessionEffector implements moderation.Effector over a discordgo session,
// bound to the guild the bot moderates.
type SessionEffector struct {
	Session       *discordgo.Session
	GuildID       string
	AckCategoryID string
}

// NewSessionEffector creates the effector for the configured guild.
func NewSessionEffector(session *discordgo.Session, guildID, ackCategoryID string) *SessionEffector {
	return &SessionEffector{
		Session:       session,
		GuildID:       guildID,
		AckCategoryID: ackCategoryID,
	}
}

// member fetches a guild member, preferring the state cache.
func (e *SessionEffector) member(userID string) (*discordgo.Member, error) {
	if m, err := e.Session.State.Member(e.GuildID, userID); err == nil {
		return m, nil
	}
	return e.Session.GuildMember(e.GuildID, userID)
}

// ResolveMember builds the permission snapshot of a member. The top role
// position and the manage-messages capability come from the guild role list.
func (e *SessionEffector) ResolveMember(userID string) (*moderation.MemberSnapshot, error) {
	m, err := e.member(userID)
	if err != nil {
		return nil, moderation.ErrTargetNotFound
	}

	guild, err := e.Session.State.Guild(e.GuildID)
	if err != nil {
		guild, err = e.Session.Guild(e.GuildID)
		if err != nil {
			return nil, err
		}
	}

	snapshot := &moderation.MemberSnapshot{
		UserID:  userID,
		RoleIDs: m.Roles,
		IsOwner: guild.OwnerID == userID,
	}

	roleByID := make(map[string]*discordgo.Role, len(guild.Roles))
	for _, r := range guild.Roles {
		roleByID[r.ID] = r
	}
	for _, roleID := range m.Roles {
		r, ok := roleByID[roleID]
		if !ok {
			continue
		}
		if r.Position > snapshot.TopRolePosition {
			snapshot.TopRolePosition = r.Position
		}
		if r.Permissions&discordgo.PermissionManageMessages != 0 ||
			r.Permissions&discordgo.PermissionAdministrator != 0 {
			snapshot.CanManageMessages = true
		}
	}

	return snapshot, nil
}

// Timeout applies a communication timeout until the given time.
func (e *SessionEffector) Timeout(userID string, until time.Time, reason string) error {
	return e.Session.GuildMemberTimeout(e.GuildID, userID, &until)
}

// RemoveTimeout lifts an active communication timeout.
func (e *SessionEffector) RemoveTimeout(userID string) error {
	return e.Session.GuildMemberTimeout(e.GuildID, userID, nil)
}

// Kick removes a member from the guild.
func (e *SessionEffector) Kick(userID, reason string) error {
	return e.Session.GuildMemberDeleteWithReason(e.GuildID, userID, reason)
}

// Ban bans a user. Works by id, so the user does not need to be a member.
func (e *SessionEffector) Ban(userID, reason string) error {
	return e.Session.GuildBanCreateWithReason(e.GuildID, userID, reason, 0)
}

// Unban lifts a ban.
func (e *SessionEffector) Unban(userID string) error {
	return e.Session.GuildBanDelete(e.GuildID, userID)
}

// Purge deletes up to amount recent messages from a channel and returns how
// many were actually deleted. Bulk delete silently skips messages older than
// 14 days, so the count can be lower than requested.
func (e *SessionEffector) Purge(channelID string, amount int) (int, error) {
	messages, err := e.Session.ChannelMessages(channelID, amount, "", "", "")
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		ids = append(ids, msg.ID)
	}

	if err := e.Session.ChannelMessagesBulkDelete(channelID, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Notify sends a private message to the user.
func (e *SessionEffector) Notify(userID, message string) error {
	channel, err := e.Session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = e.Session.ChannelMessageSend(channel.ID, message)
	return err
}

// OpenAckChannel creates the private confirmation channel: only the
// sanctioned user (and the bot) can see it, and it carries the embed with
// the confirm button.
func (e *SessionEffector) OpenAckChannel(w moderation.Workflow, c models.Case) (string, error) {
	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   e.GuildID, // @everyone
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    w.TargetID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionReadMessageHistory,
		},
		{
			ID:    e.Session.State.User.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
		},
	}

	channel, err := e.Session.GuildChannelCreateComplex(e.GuildID, discordgo.GuildChannelCreateData{
		Name:                 fmt.Sprintf("caso-%d", c.ID),
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             e.AckCategoryID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return "", err
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📋 Caso #%d — %s", c.ID, c.Action),
		Description: fmt.Sprintf(
			"<@%s>, has recibido una sanción.\n**Razón:** %s\n\nPulsa el botón para confirmar que la has leído.",
			w.TargetID, c.Reason),
		Color: 0xFFA500,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "🛡️ PancyGuard Go",
		},
	}

	_, err = e.Session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Content: fmt.Sprintf("<@%s>", w.TargetID),
		Embeds:  []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Confirmar lectura",
						Style:    discordgo.SuccessButton,
						Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
						CustomID: moderation.AckCustomID(c.ID, w.ReleasesRestriction),
					},
				},
			},
		},
	})
	if err != nil {
		// Channel without its button is useless, clean it up
		if _, derr := e.Session.ChannelDelete(channel.ID); derr != nil {
			logger.Warn("No se pudo eliminar el canal de confirmación huérfano "+channel.ID, "Effector")
		}
		return "", err
	}

	return channel.ID, nil
}

// CloseAckChannel tears down a confirmation channel.
func (e *SessionEffector) CloseAckChannel(channelID string) error {
	_, err := e.Session.ChannelDelete(channelID)
	return err
}
