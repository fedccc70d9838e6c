// Package timeService accrues voice-presence time. The presence tracker
// calls RecordActivity once per tick with the currently active users;
// each counter update is its own read/mutate/write cycle against a
// separate document.
package timeService

import (
	"context"
	"encoding/json"

	"guildPointsBot/models"
	"guildPointsBot/services/ledgerService"
	"guildPointsBot/store"
)

type Service struct {
	store  store.Store
	ledger *ledgerService.Service
}

func New(st store.Store, ledger *ledgerService.Service) *Service {
	return &Service{store: st, ledger: ledger}
}

// RecordActivity bumps the total and per-date counters for every active
// user by one tick and grants starting points to users seen for the
// first time. The date key is computed by the caller. An error aborts
// the remaining steps for this tick; the next tick starts fresh.
func (s *Service) RecordActivity(ctx context.Context, guildID, dateKey string, users []string) error {
	if len(users) == 0 {
		return nil
	}

	if err := s.incrementTotals(ctx, guildID, users); err != nil {
		return err
	}
	if err := s.incrementDates(ctx, guildID, dateKey, users); err != nil {
		return err
	}
	return s.ledger.GrantInitialPoints(ctx, guildID, users)
}

// TotalTimes returns per-user tick counts since tracking began, or an
// empty map when nothing is recorded yet.
func (s *Service) TotalTimes(ctx context.Context, guildID string) (map[string]int, error) {
	data, ok, err := s.store.Get(ctx, guildID, store.DocTotal)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]int{}, nil
	}

	var totals models.TotalTimes
	if err := json.Unmarshal(data, &totals); err != nil {
		return nil, &store.StoreError{Op: "decode", GuildID: guildID, Doc: store.DocTotal, Err: err}
	}
	if totals.Users == nil {
		totals.Users = map[string]int{}
	}
	return totals.Users, nil
}

// DateTimes returns per-user tick counts grouped by date key.
func (s *Service) DateTimes(ctx context.Context, guildID string) (models.DateTimes, error) {
	data, ok, err := s.store.Get(ctx, guildID, store.DocDate)
	if err != nil {
		return nil, err
	}
	if !ok {
		return models.DateTimes{}, nil
	}

	var dates models.DateTimes
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, &store.StoreError{Op: "decode", GuildID: guildID, Doc: store.DocDate, Err: err}
	}
	if dates == nil {
		dates = models.DateTimes{}
	}
	return dates, nil
}

func (s *Service) incrementTotals(ctx context.Context, guildID string, users []string) error {
	totals, err := s.TotalTimes(ctx, guildID)
	if err != nil {
		return err
	}

	for _, userID := range users {
		totals[userID]++
	}
	return s.store.Set(ctx, guildID, store.DocTotal, models.TotalTimes{Users: totals})
}

func (s *Service) incrementDates(ctx context.Context, guildID, dateKey string, users []string) error {
	dates, err := s.DateTimes(ctx, guildID)
	if err != nil {
		return err
	}

	day := dates[dateKey]
	if day == nil {
		day = map[string]int{}
	}
	for _, userID := range users {
		day[userID]++
	}
	dates[dateKey] = day
	return s.store.Set(ctx, guildID, store.DocDate, dates)
}
