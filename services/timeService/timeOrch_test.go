package timeService

import (
	"context"
	"testing"

	"guildPointsBot/services/ledgerService"
	"guildPointsBot/store"
)

const (
	testGuild = "guild-1"
	testDate  = "01/15/2026"
)

func assertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func newTestService() (*Service, *ledgerService.Service) {
	st := store.NewMemoryStore()
	ledger := ledgerService.New(st)
	return New(st, ledger), ledger
}

func TestRecordActivityAccumulates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for tick := 0; tick < 3; tick++ {
		if err := svc.RecordActivity(ctx, testGuild, testDate, []string{"u1", "u2"}); err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
	}
	if err := svc.RecordActivity(ctx, testGuild, testDate, []string{"u1"}); err != nil {
		t.Fatalf("final tick: %v", err)
	}

	totals, err := svc.TotalTimes(ctx, testGuild)
	if err != nil {
		t.Fatalf("TotalTimes: %v", err)
	}
	assertEqual(t, 4, totals["u1"], "u1 total ticks")
	assertEqual(t, 3, totals["u2"], "u2 total ticks")

	dates, err := svc.DateTimes(ctx, testGuild)
	if err != nil {
		t.Fatalf("DateTimes: %v", err)
	}
	assertEqual(t, 4, dates[testDate]["u1"], "u1 ticks for the day")
	assertEqual(t, 3, dates[testDate]["u2"], "u2 ticks for the day")
}

func TestRecordActivitySplitsByDate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if err := svc.RecordActivity(ctx, testGuild, "01/15/2026", []string{"u1"}); err != nil {
		t.Fatalf("day one: %v", err)
	}
	if err := svc.RecordActivity(ctx, testGuild, "01/16/2026", []string{"u1"}); err != nil {
		t.Fatalf("day two: %v", err)
	}

	dates, _ := svc.DateTimes(ctx, testGuild)
	assertEqual(t, 2, len(dates), "distinct date keys")
	assertEqual(t, 1, dates["01/15/2026"]["u1"], "first day ticks")
	assertEqual(t, 1, dates["01/16/2026"]["u1"], "second day ticks")

	totals, _ := svc.TotalTimes(ctx, testGuild)
	assertEqual(t, 2, totals["u1"], "totals span both days")
}

func TestRecordActivityGrantsStartingPointsOnce(t *testing.T) {
	svc, ledger := newTestService()
	ctx := context.Background()

	if err := svc.RecordActivity(ctx, testGuild, testDate, []string{"u1"}); err != nil {
		t.Fatalf("first tick: %v", err)
	}
	if err := svc.RecordActivity(ctx, testGuild, testDate, []string{"u1"}); err != nil {
		t.Fatalf("second tick: %v", err)
	}

	balances, err := ledger.FetchBalances(ctx, testGuild)
	if err != nil {
		t.Fatalf("FetchBalances: %v", err)
	}
	assertEqual(t, ledgerService.StartingPoints, balances["u1"], "starting grant applied once")
}

func TestRecordActivityEmptyTick(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if err := svc.RecordActivity(ctx, testGuild, testDate, nil); err != nil {
		t.Fatalf("empty tick: %v", err)
	}

	totals, _ := svc.TotalTimes(ctx, testGuild)
	assertEqual(t, 0, len(totals), "no counters written for an empty tick")
}
