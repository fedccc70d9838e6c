package models

import (
	"encoding/json"
	"testing"
)

func TestOptionOrdinalsFollowSortedLabels(t *testing.T) {
	bet := &Bet{Options: map[string]int{"zebra": 0, "apple": 0, "mango": 0}}

	tests := []struct {
		ordinal int
		label   string
		ok      bool
	}{
		{1, "apple", true},
		{2, "mango", true},
		{3, "zebra", true},
		{0, "", false},
		{4, "", false},
	}

	for _, tt := range tests {
		label, ok := bet.OptionByOrdinal(tt.ordinal)
		if label != tt.label || ok != tt.ok {
			t.Errorf("ordinal %d: expected (%q, %v), got (%q, %v)", tt.ordinal, tt.label, tt.ok, label, ok)
		}
	}
}

func TestBetLedgerWireShape(t *testing.T) {
	ledger := NewBetLedger()
	ledger.NumBets = 2
	ledger.Bets[1] = &Bet{ID: 1, Title: "first", Options: map[string]int{"yes": 10, "no": 0},
		Wagers: map[string]Wager{"u1": {Option: "yes", Amount: 10}}, CreatedBy: "u1", Completed: true, WinningOption: "yes"}
	ledger.Bets[2] = &Bet{ID: 2, Title: "second", Options: map[string]int{"a": 0, "b": 0},
		Wagers: map[string]Wager{}, CreatedBy: "u2", Closed: true}

	data, err := json.Marshal(ledger)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// The document stays flat: the counter and stringified bet ids live
	// side by side at the top level.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	for _, key := range []string{"numBets", "1", "2"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	var decoded BetLedger
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.NumBets != 2 || len(decoded.Bets) != 2 {
		t.Fatalf("decoded counter %d with %d bets", decoded.NumBets, len(decoded.Bets))
	}
	if decoded.Bets[1].WinningOption != "yes" || !decoded.Bets[1].Completed {
		t.Errorf("bet 1 lost settlement state: %+v", decoded.Bets[1])
	}
	if decoded.Bets[2].Wagers == nil || len(decoded.Bets[2].Wagers) != 0 {
		t.Errorf("bet 2 wagers should decode empty, got %+v", decoded.Bets[2].Wagers)
	}
	if got := decoded.Bets[1].Wagers["u1"].Amount; got != 10 {
		t.Errorf("bet 1 wager amount: expected 10, got %d", got)
	}
}

func TestBetDecodesNumericStartedBy(t *testing.T) {
	// Older writers recorded startedBy as a bare number.
	doc := `{"betId":1,"betTitle":"legacy","options":{"yes":0},"acceptedBy":{},"startedBy":123456789012345678}`

	var bet Bet
	if err := json.Unmarshal([]byte(doc), &bet); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if bet.CreatedBy != "123456789012345678" {
		t.Errorf("expected numeric startedBy as string, got %q", bet.CreatedBy)
	}
	if bet.Title != "legacy" || len(bet.Options) != 1 {
		t.Errorf("sibling fields lost during decode: %+v", bet)
	}

	var modern Bet
	if err := json.Unmarshal([]byte(`{"betId":2,"startedBy":"u1"}`), &modern); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if modern.CreatedBy != "u1" {
		t.Errorf("expected string startedBy untouched, got %q", modern.CreatedBy)
	}
}

func TestBetLedgerRejectsNonNumericKeys(t *testing.T) {
	var ledger BetLedger
	err := json.Unmarshal([]byte(`{"numBets":1,"oops":{}}`), &ledger)
	if err == nil {
		t.Error("expected an error for a non-numeric bet key")
	}
}
