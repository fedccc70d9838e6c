package store

import (
	"context"
	"testing"

	"guildPointsBot/models"
)

func TestMemoryStoreAppendFeedback(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	first := models.Feedback{Message: "more bets please", UserID: "u1", GuildID: "g1"}
	second := models.Feedback{Message: "longer weeks", UserID: "u2", GuildID: "g2"}
	if err := st.AppendFeedback(ctx, first); err != nil {
		t.Fatalf("AppendFeedback: %v", err)
	}
	if err := st.AppendFeedback(ctx, second); err != nil {
		t.Fatalf("second AppendFeedback: %v", err)
	}

	got := st.Feedback()
	if len(got) != 2 {
		t.Fatalf("expected 2 feedback records, got %d", len(got))
	}
	if got[0] != first || got[1] != second {
		t.Errorf("records out of order: %+v", got)
	}

	// The accessor hands back a copy.
	got[0].Message = "mutated"
	if st.Feedback()[0].Message != first.Message {
		t.Error("mutating the returned slice must not touch the store")
	}
}

func TestMemoryStoreGetCopies(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if err := st.Set(ctx, "g1", DocPoints, map[string]int{"u1": 100}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, ok, err := st.Get(ctx, "g1", DocPoints)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	data[0] = '!'

	again, _, err := st.Get(ctx, "g1", DocPoints)
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if again[0] == '!' {
		t.Error("mutating a returned document must not touch the store")
	}
}
