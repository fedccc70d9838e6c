package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"guildPointsBot/services/common"
	"guildPointsBot/services/ledgerService"
)

const pageSize = 10

// ShowPoints handles /points: a paged leaderboard of balances.
func ShowPoints(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	page := 1
	if options := i.ApplicationCommandData().Options; len(options) > 0 {
		page = int(options[0].IntValue())
	}

	balances, err := b.Ledger.FetchBalances(context.Background(), i.GuildID)
	if err != nil {
		common.SendError(s, i, err)
		return
	}
	if len(balances) == 0 {
		common.Respond(s, i, "Nobody has any points yet.", true)
		return
	}

	type entry struct {
		userID string
		points int
	}
	entries := make([]entry, 0, len(balances))
	for userID, points := range balances {
		entries = append(entries, entry{userID, points})
	}
	sort.Slice(entries, func(x, y int) bool {
		if entries[x].points != entries[y].points {
			return entries[x].points > entries[y].points
		}
		return entries[x].userID < entries[y].userID
	})

	start, end, page, lastPage := pageBounds(len(entries), page)
	directory := common.Directory{Session: s}
	var lines []string
	for rank := start; rank < end; rank++ {
		lines = append(lines, fmt.Sprintf("%d. **%s** — %d points",
			rank+1, directory.DisplayName(i.GuildID, entries[rank].userID), entries[rank].points))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "💰 Discord Points",
		Description: strings.Join(lines, "\n"),
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Page %d of %d", page, lastPage)},
		Color:       0xf1c40f,
	}
	common.RespondEmbed(s, i, embed, false)
}

// AddPoints handles /add-points: an administrative grant that bypasses
// any sufficiency check and may push a balance up or down.
func AddPoints(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	if !common.IsAdmin(s, i) {
		common.Respond(s, i, "You are not authorized to use this command.", true)
		return
	}

	options := i.ApplicationCommandData().Options
	targetUser := options[0].UserValue(s)
	amount := int(options[1].IntValue())

	newBalance, err := b.Ledger.AdjustBalance(context.Background(), i.GuildID, targetUser.ID, amount)
	if err != nil {
		common.SendError(s, i, err)
		return
	}

	common.Respond(s, i, fmt.Sprintf("Gave **%d** points to **%s**; they now have **%d**.",
		amount, targetUser.Username, newBalance), false)
}

// ShowRewards handles /rewards.
func ShowRewards(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	rewards, err := b.Ledger.ListRewards(context.Background(), i.GuildID)
	if err != nil {
		common.SendError(s, i, err)
		return
	}
	if len(rewards) == 0 {
		common.Respond(s, i, "No rewards have been added yet.", true)
		return
	}

	var lines []string
	for ordinal, title := range ledgerService.SortedRewardTitles(rewards) {
		lines = append(lines, fmt.Sprintf("`%d` **%s** — %d points", ordinal+1, title, rewards[title]))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎁 Rewards",
		Description: strings.Join(lines, "\n"),
		Color:       0x9b59b6,
	}
	common.RespondEmbed(s, i, embed, false)
}

// AddReward handles /add-reward. Admin only, enforced here in the
// transport layer.
func AddReward(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	if !common.IsAdmin(s, i) {
		common.Respond(s, i, "You are not authorized to use this command.", true)
		return
	}

	options := i.ApplicationCommandData().Options
	title := strings.TrimSpace(options[0].StringValue())
	cost := int(options[1].IntValue())

	if title == "" || cost <= 0 {
		common.Respond(s, i, "Please provide a reward title and a cost greater than zero.", true)
		return
	}

	if err := b.Ledger.AddReward(context.Background(), i.GuildID, title, cost); err != nil {
		common.SendError(s, i, err)
		return
	}
	common.Respond(s, i, fmt.Sprintf("Added reward **%s** for **%d** points.", title, cost), false)
}

// RedeemReward handles /redeem.
func RedeemReward(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	ordinal := int(i.ApplicationCommandData().Options[0].IntValue())

	title, cost, err := b.Ledger.RedeemReward(context.Background(), i.GuildID, i.Member.User.ID, ordinal)
	if err != nil {
		renderError(s, i, err)
		return
	}

	common.Respond(s, i, fmt.Sprintf("<@%s> redeemed **%s** for **%d** points!", i.Member.User.ID, title, cost), false)
}

// pageBounds clamps a 1-based page number onto [start, end) indices and
// returns the clamped page alongside the page count.
func pageBounds(total, page int) (int, int, int, int) {
	lastPage := (total + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if page > lastPage {
		page = lastPage
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end, page, lastPage
}
