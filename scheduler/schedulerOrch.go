// Package scheduler drives the presence tracker: a cron tick that
// enumerates active voice members per guild and feeds them to the
// accrual entry point.
package scheduler

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"guildPointsBot/services"
	"guildPointsBot/services/common"
)

// SetupCron starts the accrual tick on the given six-field cron spec.
func SetupCron(s *discordgo.Session, b *services.Bundle, spec string) (*cron.Cron, error) {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc(spec, func() {
		TrackPresence(s, b)
	})
	if err != nil {
		return nil, err
	}

	cronService.Start()
	return cronService, nil
}

// TrackPresence records one tick of presence for every active voice
// member of every guild. A failing guild is logged and skipped; the
// tick is not retried until the next schedule.
func TrackPresence(s *discordgo.Session, b *services.Bundle) {
	dateKey := common.DateKey(time.Now())

	for _, guild := range s.State.Guilds {
		users := activeVoiceUsers(guild, s.State.User.ID)
		if len(users) == 0 {
			continue
		}

		err := b.Times.RecordActivity(context.Background(), guild.ID, dateKey, users)
		if err != nil {
			log.WithField("guild", guild.ID).Errorf("presence tick failed: %v", err)
		}
	}
}

// activeVoiceUsers filters out deafened members, the AFK channel, and
// the bot itself.
func activeVoiceUsers(guild *discordgo.Guild, botID string) []string {
	var users []string
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == "" || vs.ChannelID == guild.AfkChannelID {
			continue
		}
		if vs.Deaf || vs.SelfDeaf {
			continue
		}
		if vs.UserID == botID {
			continue
		}
		users = append(users, vs.UserID)
	}
	return users
}
