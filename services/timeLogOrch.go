package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"guildPointsBot/services/common"
)

// TotalLog handles /total-log: a paged leaderboard of accumulated
// presence time.
func TotalLog(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	page := 1
	if options := i.ApplicationCommandData().Options; len(options) > 0 {
		page = int(options[0].IntValue())
	}

	totals, err := b.Times.TotalTimes(context.Background(), i.GuildID)
	if err != nil {
		common.SendError(s, i, err)
		return
	}
	if len(totals) == 0 {
		common.Respond(s, i, "No time has been tracked yet.", true)
		return
	}

	renderTimeBoard(s, i, "⏱ Total Time", totals, page)
}

// TodayLog handles /today-log.
func TodayLog(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	dates, err := b.Times.DateTimes(context.Background(), i.GuildID)
	if err != nil {
		common.SendError(s, i, err)
		return
	}

	today := dates[common.DateKey(time.Now())]
	if len(today) == 0 {
		common.Respond(s, i, "No time has been tracked today.", true)
		return
	}

	renderTimeBoard(s, i, "⏱ Time Today", today, 1)
}

// WeekLog handles /week-log: totals over the last seven date keys.
func WeekLog(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	page := 1
	if options := i.ApplicationCommandData().Options; len(options) > 0 {
		page = int(options[0].IntValue())
	}

	dates, err := b.Times.DateTimes(context.Background(), i.GuildID)
	if err != nil {
		common.SendError(s, i, err)
		return
	}

	week := make(map[string]int)
	for day := 0; day < 7; day++ {
		key := common.DateKey(time.Now().AddDate(0, 0, -day))
		for userID, count := range dates[key] {
			week[userID] += count
		}
	}
	if len(week) == 0 {
		common.Respond(s, i, "No time has been tracked this week.", true)
		return
	}

	renderTimeBoard(s, i, "⏱ Time This Week", week, page)
}

// MyLog handles /my-log: the caller's total and today's time.
func MyLog(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bundle) {
	userID := i.Member.User.ID

	totals, err := b.Times.TotalTimes(context.Background(), i.GuildID)
	if err != nil {
		common.SendError(s, i, err)
		return
	}
	dates, err := b.Times.DateTimes(context.Background(), i.GuildID)
	if err != nil {
		common.SendError(s, i, err)
		return
	}

	today := dates[common.DateKey(time.Now())]
	common.Respond(s, i, fmt.Sprintf("You have **%s** tracked in total and **%s** today.",
		formatMinutes(totals[userID]), formatMinutes(today[userID])), true)
}

func renderTimeBoard(s *discordgo.Session, i *discordgo.InteractionCreate, title string, counts map[string]int, page int) {
	type entry struct {
		userID  string
		minutes int
	}
	entries := make([]entry, 0, len(counts))
	for userID, minutes := range counts {
		entries = append(entries, entry{userID, minutes})
	}
	sort.Slice(entries, func(x, y int) bool {
		if entries[x].minutes != entries[y].minutes {
			return entries[x].minutes > entries[y].minutes
		}
		return entries[x].userID < entries[y].userID
	})

	start, end, page, lastPage := pageBounds(len(entries), page)
	directory := common.Directory{Session: s}
	var lines []string
	for rank := start; rank < end; rank++ {
		lines = append(lines, fmt.Sprintf("%d. **%s** — %s",
			rank+1, directory.DisplayName(i.GuildID, entries[rank].userID), formatMinutes(entries[rank].minutes)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: strings.Join(lines, "\n"),
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Page %d of %d", page, lastPage)},
		Color:       0x1abc9c,
	}
	common.RespondEmbed(s, i, embed, false)
}

// One accrual tick is one minute of presence.
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
