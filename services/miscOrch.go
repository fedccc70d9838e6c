package services

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"guildPointsBot/models"
	"guildPointsBot/services/common"
)

// SendFeedback handles /feedback, appending to the global feedback
// collection.
func SendFeedback(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	message := i.ApplicationCommandData().Options[0].StringValue()

	fb := models.Feedback{
		Message: message,
		UserID:  i.Member.User.ID,
		GuildID: i.GuildID,
	}
	if err := b.Store.AppendFeedback(context.Background(), fb); err != nil {
		common.SendError(s, i, err)
		return
	}

	common.Respond(s, i, "Thanks for the feedback!", true)
}
