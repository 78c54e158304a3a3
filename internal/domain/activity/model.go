package activity

import "time"

// Entry levels mirror the notification levels of the FIAS UI.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelError   = "error"
)

// Entry is one line of the recent-activity feed.
type Entry struct {
	ID        string    `json:"id"`
	Message   string    `json:"mensaje"`
	Level     string    `json:"tipo"`
	Actor     string    `json:"usuario"`
	CreatedAt time.Time `json:"fecha"`
}
