package common

import (
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// IsAdmin reports whether the interaction member holds the administrator
// permission. Member data comes from the interaction itself, so no
// privileged intent is needed.
func IsAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}

	for _, roleID := range i.Member.Roles {
		role, err := s.State.Role(i.GuildID, roleID)
		if err != nil || role == nil {
			roles, err := s.GuildRoles(i.GuildID)
			if err != nil {
				log.Errorf("Error fetching roles from API: %v", err)
				continue
			}

			for _, r := range roles {
				if r.ID == roleID {
					role = r
					break
				}
			}

			if role == nil {
				log.Warnf("Role %s not found in guild %s", roleID, i.GuildID)
				continue
			}
		}

		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	return false
}

// Respond sends a plain text interaction reply.
func Respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Errorf("Error sending interaction response: %v", err)
	}
}

// RespondEmbed sends an embed interaction reply.
func RespondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Errorf("Error sending interaction response: %v", err)
	}
}

// SendError logs the failure and tells the user something went wrong.
func SendError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	guildID := ""
	if i != nil {
		guildID = i.GuildID
	}
	log.WithField("guild", guildID).Errorf("command failed: %v", err)

	if i != nil {
		Respond(s, i, "An error occurred, please try again later.", true)
	}
}

// DateKey formats t as the per-day counter key. The six hour shift
// counts late-night sessions toward the prior day.
func DateKey(t time.Time) string {
	return t.Add(-6 * time.Hour).Format("01/02/2006")
}

// Directory resolves display names through the Discord session, falling
// back to the raw user id when the member cannot be found.
type Directory struct {
	Session *discordgo.Session
}

func (d *Directory) DisplayName(guildID, userID string) string {
	if guild, err := d.Session.State.Guild(guildID); err == nil && guild != nil {
		for _, member := range guild.Members {
			if member.User != nil && member.User.ID == userID {
				return memberName(member)
			}
		}
	}

	member, err := d.Session.GuildMember(guildID, userID)
	if err == nil && member != nil {
		return memberName(member)
	}
	return userID
}

func memberName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User != nil {
		if member.User.GlobalName != "" {
			return member.User.GlobalName
		}
		if member.User.Username != "" {
			return member.User.Username
		}
	}
	return "Unknown User"
}
