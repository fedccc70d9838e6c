package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Wager is a single user's position on a bet. A user holds at most one
// position per bet; repeat wagers on the same option add to Amount.
type Wager struct {
	Option string `json:"betOption"`
	Amount int    `json:"amount"`
}

// Bet is one pari-mutuel bet. Options map each label to the total stake
// accumulated on it, which always equals the sum of the matching wagers.
type Bet struct {
	ID            int              `json:"betId"`
	Title         string           `json:"betTitle"`
	Options       map[string]int   `json:"options"`
	Wagers        map[string]Wager `json:"acceptedBy"`
	CreatedBy     string           `json:"startedBy"`
	CreatedAt     string           `json:"startedAt"`
	Completed     bool             `json:"completed"`
	WinningOption string           `json:"winningOption"`
	Closed        bool             `json:"closed"`
}

// UnmarshalJSON tolerates documents that hold startedBy as a bare
// numeric user id instead of a string, as older writers recorded it.
func (b *Bet) UnmarshalJSON(data []byte) error {
	type betAlias Bet
	aux := struct {
		*betAlias
		CreatedBy json.RawMessage `json:"startedBy"`
	}{betAlias: (*betAlias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch {
	case len(aux.CreatedBy) == 0, string(aux.CreatedBy) == "null":
		b.CreatedBy = ""
	case aux.CreatedBy[0] == '"':
		if err := json.Unmarshal(aux.CreatedBy, &b.CreatedBy); err != nil {
			return fmt.Errorf("startedBy: %w", err)
		}
	default:
		b.CreatedBy = string(aux.CreatedBy)
	}
	return nil
}

// SortedOptions returns the option labels in lexicographic order. The
// 1-based position in this slice is the option's external ordinal.
func (b *Bet) SortedOptions() []string {
	labels := make([]string, 0, len(b.Options))
	for label := range b.Options {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// OptionByOrdinal resolves a 1-based ordinal against the sorted labels.
func (b *Bet) OptionByOrdinal(ordinal int) (string, bool) {
	labels := b.SortedOptions()
	if ordinal < 1 || ordinal > len(labels) {
		return "", false
	}
	return labels[ordinal-1], true
}

// Pool is the total stake across all options.
func (b *Bet) Pool() int {
	total := 0
	for _, stake := range b.Options {
		total += stake
	}
	return total
}

// BetLedger is the per-guild "bets" document: a monotonically increasing
// counter plus every bet ever created, keyed by its id. Bets are never
// deleted; completed bets remain as historical records.
type BetLedger struct {
	NumBets int
	Bets    map[int]*Bet
}

func NewBetLedger() *BetLedger {
	return &BetLedger{Bets: make(map[int]*Bet)}
}

// MarshalJSON keeps the stored shape flat: {"numBets": N, "1": {...}, ...}.
func (l *BetLedger) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, len(l.Bets)+1)
	raw["numBets"] = l.NumBets
	for id, bet := range l.Bets {
		raw[strconv.Itoa(id)] = bet
	}
	return json.Marshal(raw)
}

func (l *BetLedger) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.Bets = make(map[int]*Bet, len(raw))
	for key, val := range raw {
		if key == "numBets" {
			if err := json.Unmarshal(val, &l.NumBets); err != nil {
				return fmt.Errorf("numBets: %w", err)
			}
			continue
		}

		id, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("bet key %q is not numeric", key)
		}

		var bet Bet
		if err := json.Unmarshal(val, &bet); err != nil {
			return fmt.Errorf("bet %d: %w", id, err)
		}
		l.Bets[id] = &bet
	}
	return nil
}
