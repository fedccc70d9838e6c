package services

import (
	"github.com/bwmarrin/discordgo"

	"guildPointsBot/models"
	"guildPointsBot/services/common"
	"guildPointsBot/services/ledgerService"
	"guildPointsBot/services/timeService"
	"guildPointsBot/services/wagerService"
	"guildPointsBot/store"
)

// Bundle holds the service handles, built once at startup and passed
// into every command handler and cron job.
type Bundle struct {
	Ledger *ledgerService.Service
	Wagers *wagerService.Service
	Times  *timeService.Service
	Store  store.Store
}

func NewBundle(st store.Store, directory wagerService.MemberDirectory) *Bundle {
	ledger := ledgerService.New(st)
	return &Bundle{
		Ledger: ledger,
		Wagers: wagerService.New(st, ledger, directory),
		Times:  timeService.New(st, ledger),
		Store:  st,
	}
}

// renderError turns a service error into a user-facing reply: validation
// failures echo their message, anything else is logged and masked.
func renderError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	if ve, ok := models.AsValidation(err); ok {
		common.Respond(s, i, ve.Message, true)
		return
	}
	common.SendError(s, i, err)
}
