// Package wagerService owns the bet lifecycle: creation, wager
// placement, closing, and pari-mutuel settlement. Bets live in one
// per-guild document next to their id counter; balance changes go
// through the ledger service as a separate document write, so a bet
// write and its balance write are not atomic with each other.
package wagerService

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"guildPointsBot/models"
	"guildPointsBot/services/ledgerService"
	"guildPointsBot/store"
)

// MemberDirectory resolves a user id to the name shown in payout
// summaries. The transport layer provides the Discord-backed
// implementation.
type MemberDirectory interface {
	DisplayName(guildID, userID string) string
}

type Service struct {
	store     store.Store
	ledger    *ledgerService.Service
	directory MemberDirectory
}

func New(st store.Store, ledger *ledgerService.Service, directory MemberDirectory) *Service {
	return &Service{store: st, ledger: ledger, directory: directory}
}

func (s *Service) fetchLedger(ctx context.Context, guildID string) (*models.BetLedger, error) {
	data, ok, err := s.store.Get(ctx, guildID, store.DocBets)
	if err != nil {
		return nil, err
	}
	if !ok {
		return models.NewBetLedger(), nil
	}

	ledger := models.NewBetLedger()
	if err := json.Unmarshal(data, ledger); err != nil {
		return nil, &store.StoreError{Op: "decode", GuildID: guildID, Doc: store.DocBets, Err: err}
	}
	if ledger.Bets == nil {
		ledger.Bets = make(map[int]*models.Bet)
	}
	return ledger, nil
}

// CreateBet stores a new open bet with all option stakes at zero and
// returns its id, which is the incremented per-guild counter. Any
// member may create a bet; there is no permission gate at this layer.
func (s *Service) CreateBet(ctx context.Context, guildID, creatorID, title, startedAt string, options []string) (int, error) {
	ledger, err := s.fetchLedger(ctx, guildID)
	if err != nil {
		return 0, err
	}

	stakes := make(map[string]int, len(options))
	for _, label := range options {
		stakes[label] = 0
	}

	ledger.NumBets++
	id := ledger.NumBets
	ledger.Bets[id] = &models.Bet{
		ID:        id,
		Title:     title,
		Options:   stakes,
		Wagers:    make(map[string]models.Wager),
		CreatedBy: creatorID,
		CreatedAt: startedAt,
	}

	if err := s.store.Set(ctx, guildID, store.DocBets, ledger); err != nil {
		return 0, err
	}
	return id, nil
}

// PlaceWager stakes amount on the option addressed by its 1-based
// ordinal within the lexicographically sorted label set. A repeat wager
// on the user's existing option adds to it; a different option is
// rejected. Validation order is fixed, and any rejection leaves both
// the bet and the balance untouched.
func (s *Service) PlaceWager(ctx context.Context, guildID, userID string, betID, optionOrdinal, amount int) (*models.Bet, error) {
	balances, err := s.ledger.FetchBalances(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if balance, ok := balances[userID]; !ok || balance < amount {
		return nil, models.Validation(models.ErrInsufficientFunds, "Not enough points")
	}

	ledger, err := s.fetchLedger(ctx, guildID)
	if err != nil {
		return nil, err
	}
	bet, ok := ledger.Bets[betID]
	if !ok {
		return nil, models.Validation(models.ErrInvalidBetID, "Not a valid Bet Id")
	}
	if bet.Closed || bet.Completed {
		return nil, models.Validation(models.ErrBetClosed, "Bet no longer has open submissions")
	}

	label, ok := bet.OptionByOrdinal(optionOrdinal)
	if !ok {
		return nil, models.Validation(models.ErrInvalidOption, "Not a valid Bet Option")
	}

	existing, hasWager := bet.Wagers[userID]
	if hasWager && existing.Option != label {
		return nil, models.Validation(models.ErrConflictingOption, "Cannot bet for more than one option")
	}

	bet.Options[label] += amount
	if hasWager {
		existing.Amount += amount
		bet.Wagers[userID] = existing
	} else {
		bet.Wagers[userID] = models.Wager{Option: label, Amount: amount}
	}

	// Two independent writes; a crash between them leaves the stake
	// recorded without the debit.
	if err := s.store.Set(ctx, guildID, store.DocBets, ledger); err != nil {
		return nil, err
	}
	if _, err := s.ledger.AdjustBalance(ctx, guildID, userID, -amount); err != nil {
		return nil, err
	}
	return bet, nil
}

// CloseBet stops further wagers. Only the creator or an administrator
// may close a bet. Closing an already-closed bet succeeds and changes
// nothing.
func (s *Service) CloseBet(ctx context.Context, guildID, actorID string, isAdmin bool, betID int) (*models.Bet, error) {
	ledger, err := s.fetchLedger(ctx, guildID)
	if err != nil {
		return nil, err
	}
	bet, ok := ledger.Bets[betID]
	if !ok {
		return nil, models.Validation(models.ErrInvalidBetID, "Not a valid Bet Id")
	}
	if bet.CreatedBy != actorID && !isAdmin {
		return nil, models.Validation(models.ErrNotAuthorized,
			"Only the person that started the bet or an admin can close submissions for the bet")
	}

	bet.Closed = true
	if err := s.store.Set(ctx, guildID, store.DocBets, ledger); err != nil {
		return nil, err
	}
	return bet, nil
}

// CompleteBet settles the bet pari-mutuel style: the whole pool is
// divided among the winning option's wagers in proportion to their
// stakes, with fractional points truncated (the house keeps the
// remainder). Payouts are keyed by display name. A bet completes at
// most once.
func (s *Service) CompleteBet(ctx context.Context, guildID, actorID string, isAdmin bool, betID, winningOrdinal int) (*models.Bet, map[string]int, error) {
	ledger, err := s.fetchLedger(ctx, guildID)
	if err != nil {
		return nil, nil, err
	}
	bet, ok := ledger.Bets[betID]
	if !ok {
		return nil, nil, models.Validation(models.ErrInvalidBetID, "Not a valid Bet Id")
	}
	if bet.CreatedBy != actorID && !isAdmin {
		return nil, nil, models.Validation(models.ErrNotAuthorized,
			"Only the person that started the bet or an admin can complete/payout the bet")
	}
	if bet.Completed {
		return nil, nil, models.Validation(models.ErrAlreadyCompleted, "Bet has already been completed")
	}

	winningLabel, ok := bet.OptionByOrdinal(winningOrdinal)
	if !ok {
		return nil, nil, models.Validation(models.ErrInvalidOption, "Not a valid Bet Option")
	}

	pool := bet.Pool()
	multipliers := make(map[string]float64, len(bet.Options))
	for label, stake := range bet.Options {
		if stake > 0 {
			multipliers[label] = float64(pool) / float64(stake)
		}
	}

	bet.Completed = true
	bet.WinningOption = winningLabel

	// A zero-stake winning option has no multiplier and no matching
	// wagers, so the payout loop is naturally empty.
	userIDs := make([]string, 0, len(bet.Wagers))
	for userID := range bet.Wagers {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	type credit struct {
		userID string
		amount int
	}
	var credits []credit
	for _, userID := range userIDs {
		wager := bet.Wagers[userID]
		if wager.Option != winningLabel {
			continue
		}
		payout := int(float64(wager.Amount) * multipliers[winningLabel])
		credits = append(credits, credit{userID: userID, amount: payout})
	}

	if err := s.store.Set(ctx, guildID, store.DocBets, ledger); err != nil {
		return nil, nil, err
	}

	payouts := make(map[string]int, len(credits))
	for _, c := range credits {
		if _, err := s.ledger.AdjustBalance(ctx, guildID, c.userID, c.amount); err != nil {
			return nil, nil, fmt.Errorf("crediting payout for %s: %w", c.userID, err)
		}
		payouts[s.directory.DisplayName(guildID, c.userID)] = c.amount
	}
	return bet, payouts, nil
}

// Bet returns a single bet by id.
func (s *Service) Bet(ctx context.Context, guildID string, betID int) (*models.Bet, error) {
	ledger, err := s.fetchLedger(ctx, guildID)
	if err != nil {
		return nil, err
	}
	bet, ok := ledger.Bets[betID]
	if !ok {
		return nil, models.Validation(models.ErrInvalidBetID, "Not a valid Bet Id")
	}
	return bet, nil
}

// ActiveBets returns every bet not yet completed, ordered by id.
func (s *Service) ActiveBets(ctx context.Context, guildID string) ([]*models.Bet, error) {
	ledger, err := s.fetchLedger(ctx, guildID)
	if err != nil {
		return nil, err
	}

	var active []*models.Bet
	for _, bet := range ledger.Bets {
		if !bet.Completed {
			active = append(active, bet)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}

// BetsForUser returns the open bets the user holds a wager on, ordered
// by id.
func (s *Service) BetsForUser(ctx context.Context, guildID, userID string) ([]*models.Bet, error) {
	ledger, err := s.fetchLedger(ctx, guildID)
	if err != nil {
		return nil, err
	}

	var mine []*models.Bet
	for _, bet := range ledger.Bets {
		if _, ok := bet.Wagers[userID]; ok && !bet.Completed {
			mine = append(mine, bet)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].ID < mine[j].ID })
	return mine, nil
}
