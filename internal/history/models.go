package history

import (
	"time"
)

// Entry records one executed search. Recording is opt-in; the search
// engine itself never writes here.
type Entry struct {
	ID            uint64    `json:"id"`
	Pattern       string    `json:"pattern"`
	Path          string    `json:"path"`
	CaseSensitive bool      `json:"case_sensitive"`
	Matches       int       `json:"matches"`
	ExecutedAt    time.Time `json:"executed_at"`
}
