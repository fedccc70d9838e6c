package models

// TotalTimes is the per-guild "total" document: minutes of tracked voice
// presence per user since the bot joined.
type TotalTimes struct {
	Users map[string]int `json:"users"`
}

// DateTimes is the per-guild "date" document: per-day presence counters
// keyed by an MM/DD/YYYY date string supplied by the caller.
type DateTimes map[string]map[string]int
