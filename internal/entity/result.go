package entity

import "time"

const (
	OutcomeWin       = "win"
	OutcomeDraw      = "draw"
	OutcomeAbandoned = "abandoned"
)

// Result summarizes a finished match.
type Result struct {
	ID        string        `json:"id"`
	Size      int           `json:"size"`
	WinLength int           `json:"win_length"`
	Outcome   string        `json:"outcome"`
	Winner    Symbol        `json:"winner"`
	Moves     []PlayedMove  `json:"moves"`
	Board     string        `json:"board"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

func (that *Result) IsDraw() bool {
	return that.Outcome == OutcomeDraw
}

func (that *Result) IsAbandoned() bool {
	return that.Outcome == OutcomeAbandoned
}

// TallyKey is the field under which the outcome is counted.
func (that *Result) TallyKey() string {
	if that.Outcome == OutcomeWin {
		return that.Winner.String()
	}
	return that.Outcome
}
