package ledgerService

import (
	"context"
	"testing"

	"guildPointsBot/models"
	"guildPointsBot/store"
)

const testGuild = "guild-1"

func assertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func TestFetchBalancesEmptyGuild(t *testing.T) {
	svc := New(store.NewMemoryStore())

	balances, err := svc.FetchBalances(context.Background(), testGuild)
	if err != nil {
		t.Fatalf("FetchBalances: %v", err)
	}
	assertEqual(t, 0, len(balances), "balances for untouched guild")
}

func TestGrantInitialPointsFiresOnce(t *testing.T) {
	svc := New(store.NewMemoryStore())
	ctx := context.Background()

	if err := svc.GrantInitialPoints(ctx, testGuild, []string{"u1"}); err != nil {
		t.Fatalf("first grant: %v", err)
	}
	if err := svc.GrantInitialPoints(ctx, testGuild, []string{"u1"}); err != nil {
		t.Fatalf("second grant: %v", err)
	}

	balances, _ := svc.FetchBalances(ctx, testGuild)
	assertEqual(t, StartingPoints, balances["u1"], "balance after double grant")
}

func TestGrantInitialPointsSkipsRecordedBalances(t *testing.T) {
	st := store.NewMemoryStore()
	svc := New(st)
	ctx := context.Background()

	// A recorded balance of zero is distinct from never having appeared.
	if err := st.Set(ctx, testGuild, store.DocPoints, map[string]int{"broke": 0}); err != nil {
		t.Fatalf("seeding balances: %v", err)
	}

	if err := svc.GrantInitialPoints(ctx, testGuild, []string{"broke", "fresh"}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	balances, _ := svc.FetchBalances(ctx, testGuild)
	assertEqual(t, 0, balances["broke"], "recorded zero balance untouched")
	assertEqual(t, StartingPoints, balances["fresh"], "new user granted")
}

func TestAdjustBalance(t *testing.T) {
	svc := New(store.NewMemoryStore())
	ctx := context.Background()

	newBalance, err := svc.AdjustBalance(ctx, testGuild, "u1", 40)
	if err != nil {
		t.Fatalf("AdjustBalance: %v", err)
	}
	assertEqual(t, 40, newBalance, "balance created at zero then adjusted")

	// Administrative adjustments bypass any sufficiency check.
	newBalance, err = svc.AdjustBalance(ctx, testGuild, "u1", -100)
	if err != nil {
		t.Fatalf("AdjustBalance negative: %v", err)
	}
	assertEqual(t, -60, newBalance, "negative balance allowed here")
}

func TestAddRewardUpserts(t *testing.T) {
	svc := New(store.NewMemoryStore())
	ctx := context.Background()

	if err := svc.AddReward(ctx, testGuild, "movie night", 500); err != nil {
		t.Fatalf("AddReward: %v", err)
	}
	if err := svc.AddReward(ctx, testGuild, "movie night", 300); err != nil {
		t.Fatalf("AddReward update: %v", err)
	}

	rewards, _ := svc.ListRewards(ctx, testGuild)
	assertEqual(t, 1, len(rewards), "reward count")
	assertEqual(t, 300, rewards["movie night"], "cost overwritten")
}

func TestRedeemReward(t *testing.T) {
	st := store.NewMemoryStore()
	svc := New(st)
	ctx := context.Background()

	if err := st.Set(ctx, testGuild, store.DocPoints, map[string]int{"u1": 120}); err != nil {
		t.Fatalf("seeding balances: %v", err)
	}
	// Sorted catalog: 1 -> "choose the game", 2 -> "movie night".
	if err := svc.AddReward(ctx, testGuild, "movie night", 50); err != nil {
		t.Fatalf("AddReward: %v", err)
	}
	if err := svc.AddReward(ctx, testGuild, "choose the game", 100); err != nil {
		t.Fatalf("AddReward: %v", err)
	}

	title, cost, err := svc.RedeemReward(ctx, testGuild, "u1", 2)
	if err != nil {
		t.Fatalf("RedeemReward: %v", err)
	}
	assertEqual(t, "movie night", title, "redeemed title")
	assertEqual(t, 50, cost, "redeemed cost")

	balances, _ := svc.FetchBalances(ctx, testGuild)
	assertEqual(t, 70, balances["u1"], "balance after redemption")
}

func TestRedeemRewardFailures(t *testing.T) {
	tests := []struct {
		name     string
		ordinal  int
		balance  int
		expected models.ErrorKind
	}{
		{"ordinal too low", 0, 500, models.ErrInvalidReward},
		{"ordinal too high", 3, 500, models.ErrInvalidReward},
		{"cannot afford", 1, 10, models.ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemoryStore()
			svc := New(st)
			ctx := context.Background()

			if err := st.Set(ctx, testGuild, store.DocPoints, map[string]int{"u1": tt.balance}); err != nil {
				t.Fatalf("seeding balances: %v", err)
			}
			if err := svc.AddReward(ctx, testGuild, "movie night", 50); err != nil {
				t.Fatalf("AddReward: %v", err)
			}
			if err := svc.AddReward(ctx, testGuild, "choose the game", 100); err != nil {
				t.Fatalf("AddReward: %v", err)
			}

			_, _, err := svc.RedeemReward(ctx, testGuild, "u1", tt.ordinal)
			ve, ok := models.AsValidation(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			assertEqual(t, tt.expected, ve.Kind, "error kind")

			balances, _ := svc.FetchBalances(ctx, testGuild)
			assertEqual(t, tt.balance, balances["u1"], "balance unchanged after rejection")
		})
	}
}
