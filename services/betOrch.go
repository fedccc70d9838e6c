package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"guildPointsBot/models"
	"guildPointsBot/services/common"
)

// CreateBet handles /create-bet. Any member may create a bet.
func CreateBet(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	options := i.ApplicationCommandData().Options
	title := options[0].StringValue()

	labels := parseOptionLabels(options[1].StringValue())
	if len(labels) < 2 {
		common.Respond(s, i, "A bet needs at least two distinct options, separated by commas.", true)
		return
	}

	startedAt := time.Now().Format("01/02/2006 15:04")
	betID, err := b.Wagers.CreateBet(context.Background(), i.GuildID, i.Member.User.ID, title, startedAt, labels)
	if err != nil {
		renderError(s, i, err)
		return
	}

	bet, err := b.Wagers.Bet(context.Background(), i.GuildID, betID)
	if err != nil {
		renderError(s, i, err)
		return
	}

	embed := betEmbed(bet)
	embed.Title = fmt.Sprintf("📢 New Bet Created (Id: %d)", betID)
	common.RespondEmbed(s, i, embed, false)
}

// PlaceBet handles /bet. No server-side permission gate; any member may
// wager while the bet is open.
func PlaceBet(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	options := i.ApplicationCommandData().Options
	betID := int(options[0].IntValue())
	optionOrdinal := int(options[1].IntValue())
	amount := int(options[2].IntValue())

	if amount <= 0 {
		common.Respond(s, i, "Please enter an amount greater than zero.", true)
		return
	}

	bet, err := b.Wagers.PlaceWager(context.Background(), i.GuildID, i.Member.User.ID, betID, optionOrdinal, amount)
	if err != nil {
		renderError(s, i, err)
		return
	}

	wager := bet.Wagers[i.Member.User.ID]
	common.Respond(s, i, fmt.Sprintf("Placed **%d** points on **%s** for bet `%s`. Your total stake is **%d**.",
		amount, wager.Option, bet.Title, wager.Amount), false)
}

// CloseBet handles /close-bet. The wager service enforces creator/admin.
func CloseBet(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	betID := int(i.ApplicationCommandData().Options[0].IntValue())

	bet, err := b.Wagers.CloseBet(context.Background(), i.GuildID, i.Member.User.ID, common.IsAdmin(s, i), betID)
	if err != nil {
		renderError(s, i, err)
		return
	}

	common.Respond(s, i, fmt.Sprintf("Submissions for bet `%s` are now closed.", bet.Title), false)
}

// CompleteBet handles /complete-bet and announces the payouts.
func CompleteBet(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	options := i.ApplicationCommandData().Options
	betID := int(options[0].IntValue())
	winningOrdinal := int(options[1].IntValue())

	bet, payouts, err := b.Wagers.CompleteBet(context.Background(), i.GuildID, i.Member.User.ID, common.IsAdmin(s, i), betID, winningOrdinal)
	if err != nil {
		renderError(s, i, err)
		return
	}

	winners := ""
	total := 0
	for name, amount := range payouts {
		winners += fmt.Sprintf("%s - Won %d points\n", name, amount)
		total += amount
	}
	if winners == "" {
		winners = "No winning wagers."
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏁 Bet Completed: %s", bet.Title),
		Description: fmt.Sprintf("**%s** is the winning option.\nTotal payout: **%d** points.", bet.WinningOption, total),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Winners", Value: winners},
		},
		Color: 0x2ecc71,
	}
	common.RespondEmbed(s, i, embed, false)
}

// AllBets handles /all-bets. On a store failure it degrades to a
// friendly message rather than crashing the command stream.
func AllBets(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	bets, err := b.Wagers.ActiveBets(context.Background(), i.GuildID)
	if err != nil {
		common.SendError(s, i, err)
		return
	}

	if len(bets) == 0 {
		common.Respond(s, i, "There are no active bets right now.", true)
		return
	}

	var lines []string
	for _, bet := range bets {
		status := "open"
		if bet.Closed {
			status = "closed"
		}
		lines = append(lines, fmt.Sprintf("`%d` **%s** — pool %d points (%s)", bet.ID, bet.Title, bet.Pool(), status))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎲 Active Bets",
		Description: strings.Join(lines, "\n"),
		Color:       0x3498db,
	}
	common.RespondEmbed(s, i, embed, false)
}

// ShowBet handles /show-bet.
func ShowBet(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	betID := int(i.ApplicationCommandData().Options[0].IntValue())

	bet, err := b.Wagers.Bet(context.Background(), i.GuildID, betID)
	if err != nil {
		renderError(s, i, err)
		return
	}

	common.RespondEmbed(s, i, betEmbed(bet), false)
}

// MyBets handles /my-bets.
func MyBets(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	bets, err := b.Wagers.BetsForUser(context.Background(), i.GuildID, i.Member.User.ID)
	if err != nil {
		common.SendError(s, i, err)
		return
	}

	if len(bets) == 0 {
		common.Respond(s, i, "You have no active bets.", true)
		return
	}

	response := fmt.Sprintf("You have %d active bets:\n", len(bets))
	for _, bet := range bets {
		wager := bet.Wagers[i.Member.User.ID]
		response += fmt.Sprintf("* `%d` %s - %d points on %s\n", bet.ID, bet.Title, wager.Amount, wager.Option)
	}
	common.Respond(s, i, response, true)
}

func betEmbed(bet *models.Bet) *discordgo.MessageEmbed {
	status := "Open"
	if bet.Completed {
		status = fmt.Sprintf("Completed — winner: %s", bet.WinningOption)
	} else if bet.Closed {
		status = "Closed"
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(bet.Options)+1)
	for ordinal, label := range bet.SortedOptions() {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%d️⃣ %s", ordinal+1, label),
			Value: fmt.Sprintf("Staked: %d points", bet.Options[label]),
		})
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  "Status",
		Value: fmt.Sprintf("%s • pool %d points • started %s", status, bet.Pool(), bet.CreatedAt),
	})

	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("Bet %d: %s", bet.ID, bet.Title),
		Fields: fields,
		Color:  0x3498db,
	}
}

func parseOptionLabels(raw string) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, part := range strings.Split(raw, ",") {
		label := strings.TrimSpace(part)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}
