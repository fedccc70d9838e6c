package services

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// HandleSlashCommand routes an application command to its handler. Each
// command maps to exactly one service operation.
func HandleSlashCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	switch i.ApplicationCommandData().Name {
	case "create-bet":
		CreateBet(s, i, b)
	case "bet":
		PlaceBet(s, i, b)
	case "close-bet":
		CloseBet(s, i, b)
	case "complete-bet":
		CompleteBet(s, i, b)
	case "all-bets":
		AllBets(s, i, b)
	case "show-bet":
		ShowBet(s, i, b)
	case "my-bets":
		MyBets(s, i, b)
	case "points":
		ShowPoints(s, i, b)
	case "add-points":
		AddPoints(s, i, b)
	case "rewards":
		ShowRewards(s, i, b)
	case "add-reward":
		AddReward(s, i, b)
	case "redeem":
		RedeemReward(s, i, b)
	case "total-log":
		TotalLog(s, i, b)
	case "today-log":
		TodayLog(s, i, b)
	case "week-log":
		WeekLog(s, i, b)
	case "my-log":
		MyLog(s, i, b)
	case "feedback":
		SendFeedback(s, i, b)
	}
}

func RegisterCommands(s *discordgo.Session) error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "create-bet",
			Description: "Create a new bet anyone can wager on",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "title",
					Description: "What the bet is about",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
				{
					Name:        "options",
					Description: "Comma-separated list of options (e.g. yes, no)",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:        "bet",
			Description: "Wager points on an open bet",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "bet-id",
					Description: "Id of the bet",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
				{
					Name:        "option",
					Description: "Option number as shown by /show-bet",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
				{
					Name:        "amount",
					Description: "Points to wager",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "close-bet",
			Description: "Close submissions for a bet (creator or admin)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "bet-id",
					Description: "Id of the bet",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "complete-bet",
			Description: "Complete a bet and pay out the winners (creator or admin)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "bet-id",
					Description: "Id of the bet",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
				{
					Name:        "winning-option",
					Description: "Winning option number",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "all-bets",
			Description: "List all active bets",
		},
		{
			Name:        "show-bet",
			Description: "Show one bet with its options and stakes",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "bet-id",
					Description: "Id of the bet",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "my-bets",
			Description: "Show your open wagers",
		},
		{
			Name:        "points",
			Description: "Show the points leaderboard",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "page",
					Description: "Page number",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    false,
				},
			},
		},
		{
			Name:        "add-points",
			Description: "🛡 Adjust a user's points - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "User to adjust",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "amount",
					Description: "Points to add (negative to take away)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "rewards",
			Description: "List the rewards that can be redeemed with points",
		},
		{
			Name:        "add-reward",
			Description: "🛡 Add or update a reward - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "title",
					Description: "Name of the reward",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
				{
					Name:        "cost",
					Description: "Cost in points",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "redeem",
			Description: "Redeem a reward with your points",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "reward-id",
					Description: "Reward number as shown by /rewards",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "total-log",
			Description: "Show total tracked voice time",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "page",
					Description: "Page number",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    false,
				},
			},
		},
		{
			Name:        "today-log",
			Description: "Show tracked voice time for today",
		},
		{
			Name:        "week-log",
			Description: "Show tracked voice time for the last week",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "page",
					Description: "Page number",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    false,
				},
			},
		},
		{
			Name:        "my-log",
			Description: "Show your own tracked voice time",
		},
		{
			Name:        "feedback",
			Description: "Send feedback to the bot authors",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "message",
					Description: "Your feedback",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
	}

	registeredCommands := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		rcmd, err := s.ApplicationCommandCreate(s.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%v' command: %v", cmd.Name, err)
		}
		registeredCommands[i] = rcmd
	}

	return nil
}
