// Package ledgerService owns per-guild point balances and the reward
// catalog. Every mutation is a full-document rewrite of the backing map.
package ledgerService

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"guildPointsBot/models"
	"guildPointsBot/store"
)

// StartingPoints is granted once, the first time a user appears in the
// balance map. It is not a repeated bonus.
const StartingPoints = 100

type Service struct {
	store store.Store
}

func New(st store.Store) *Service {
	return &Service{store: st}
}

// FetchBalances returns the stored balance map, or an empty map when no
// document exists yet. A store failure propagates; it is never masked
// as empty data.
func (s *Service) FetchBalances(ctx context.Context, guildID string) (map[string]int, error) {
	data, ok, err := s.store.Get(ctx, guildID, store.DocPoints)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]int{}, nil
	}

	var balances map[string]int
	if err := json.Unmarshal(data, &balances); err != nil {
		return nil, &store.StoreError{Op: "decode", GuildID: guildID, Doc: store.DocPoints, Err: err}
	}
	if balances == nil {
		balances = map[string]int{}
	}
	return balances, nil
}

// GrantInitialPoints initializes the balance of every listed user not
// already present in the map. Users with a recorded balance, even zero,
// are left unchanged.
func (s *Service) GrantInitialPoints(ctx context.Context, guildID string, users []string) error {
	balances, err := s.FetchBalances(ctx, guildID)
	if err != nil {
		return err
	}

	changed := false
	for _, userID := range users {
		if _, ok := balances[userID]; !ok {
			balances[userID] = StartingPoints
			changed = true
		}
	}
	if !changed {
		return nil
	}

	return s.store.Set(ctx, guildID, store.DocPoints, balances)
}

// AdjustBalance adds delta to the user's balance, creating the entry at
// zero first if absent, and returns the new balance. It does not
// enforce non-negativity; callers performing debits check sufficiency
// beforehand.
func (s *Service) AdjustBalance(ctx context.Context, guildID, userID string, delta int) (int, error) {
	balances, err := s.FetchBalances(ctx, guildID)
	if err != nil {
		return 0, err
	}

	balances[userID] += delta
	if err := s.store.Set(ctx, guildID, store.DocPoints, balances); err != nil {
		return 0, err
	}
	return balances[userID], nil
}

func (s *Service) ListRewards(ctx context.Context, guildID string) (map[string]int, error) {
	data, ok, err := s.store.Get(ctx, guildID, store.DocRewards)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]int{}, nil
	}

	var rewards map[string]int
	if err := json.Unmarshal(data, &rewards); err != nil {
		return nil, &store.StoreError{Op: "decode", GuildID: guildID, Doc: store.DocRewards, Err: err}
	}
	if rewards == nil {
		rewards = map[string]int{}
	}
	return rewards, nil
}

// AddReward upserts a catalog entry; an existing title gets its cost
// overwritten.
func (s *Service) AddReward(ctx context.Context, guildID, title string, cost int) error {
	rewards, err := s.ListRewards(ctx, guildID)
	if err != nil {
		return err
	}

	rewards[title] = cost
	return s.store.Set(ctx, guildID, store.DocRewards, rewards)
}

// SortedRewardTitles returns catalog titles in lexicographic order; the
// 1-based position is the reward's external ordinal.
func SortedRewardTitles(rewards map[string]int) []string {
	titles := make([]string, 0, len(rewards))
	for title := range rewards {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// RedeemReward resolves the ordinal against the sorted catalog, checks
// the user's balance covers the cost, and debits it. It returns the
// redeemed title and cost.
func (s *Service) RedeemReward(ctx context.Context, guildID, userID string, ordinal int) (string, int, error) {
	rewards, err := s.ListRewards(ctx, guildID)
	if err != nil {
		return "", 0, err
	}

	titles := SortedRewardTitles(rewards)
	if ordinal < 1 || ordinal > len(titles) {
		return "", 0, models.Validation(models.ErrInvalidReward, "Not a valid Reward Id")
	}
	title := titles[ordinal-1]
	cost := rewards[title]

	balances, err := s.FetchBalances(ctx, guildID)
	if err != nil {
		return "", 0, err
	}
	if balances[userID] < cost {
		return "", 0, models.Validation(models.ErrInsufficientFunds,
			fmt.Sprintf("You need %d points to redeem '%s'", cost, title))
	}

	if _, err := s.AdjustBalance(ctx, guildID, userID, -cost); err != nil {
		return "", 0, err
	}
	return title, cost, nil
}
