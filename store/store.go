// Package store provides the whole-document persistence adapter. Every
// document is read and written in full; there are no partial updates,
// no version stamps, and no cross-document atomicity. Two concurrent
// writers to the same document can lose an update, which the services
// accept as a property of the deployment scale.
package store

import (
	"context"
	"errors"
	"fmt"

	"guildPointsBot/models"
)

// Per-guild document names.
const (
	DocTotal   = "total"
	DocDate    = "date"
	DocPoints  = "discordPoints"
	DocRewards = "rewards"
	DocBets    = "bets"
)

// Store is the get/set-whole-document contract. Get reports absence as
// (nil, false, nil); a backend failure surfaces as a *StoreError and is
// never converted into a false empty result at this layer.
type Store interface {
	Get(ctx context.Context, guildID, name string) ([]byte, bool, error)
	Set(ctx context.Context, guildID, name string, v any) error
	AppendFeedback(ctx context.Context, fb models.Feedback) error
}

// StoreError wraps a backend failure (unreachable store, malformed data).
type StoreError struct {
	Op      string
	GuildID string
	Doc     string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s/%s: %v", e.Op, e.GuildID, e.Doc, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op, guildID, doc string, err error) *StoreError {
	return &StoreError{Op: op, GuildID: guildID, Doc: doc, Err: err}
}

// AsStoreError unwraps err into a *StoreError if it is one.
func AsStoreError(err error) (*StoreError, bool) {
	var se *StoreError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
