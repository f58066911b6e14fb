package domain

import (
	"time"
)

// Reminder is a scheduled nudge for a user, optionally tied to a
// routine. IsSent is monotonic: once the sweep dispatches a reminder
// the flag is set and never cleared.
type Reminder struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"userId"`
	RoutineID    *int64    `db:"routine_id" json:"routineId,omitempty"`
	ReminderTime time.Time `db:"reminder_time" json:"reminderTime"`
	Message      string    `db:"message" json:"message"`
	IsSent       bool      `db:"is_sent" json:"isSent"`
}
