package notification

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Task names routed through the default queue.
const (
	TaskCheckNotifications = "check_notifications"
	TaskSendNotification   = "send_notification"
)

type NotificationSchedule struct {
	ID            string `db:"id" json:"id"`
	GameSessionID string `db:"game_session_id" json:"game_session_id"`

	// Null means "no reminder" - the row is never picked up.
	ReminderMinutes null.Int `db:"reminder_minutes" json:"reminder_minutes"`

	SentAt    null.Time `db:"sent_at" json:"sent_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
