package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// TaskEnqueuer is the slice of the broker client the checker needs.
type TaskEnqueuer interface {
	EnqueueTask(ctx context.Context, name string, args map[string]interface{}) error
}

type CheckNotificationsCommand struct{}

type dueReminder struct {
	ID            string    `db:"id"`
	GameSessionID string    `db:"game_session_id"`
	Title         string    `db:"title"`
	ScheduledAt   time.Time `db:"scheduled_at"`
}

type CheckNotificationsCommandHandler struct {
	db       *sqlx.DB
	enqueuer TaskEnqueuer
	logger   *zap.Logger
}

func NewCheckNotificationsCommandHandler(
	db *sqlx.DB,
	enqueuer TaskEnqueuer,
	logger *zap.Logger,
) *CheckNotificationsCommandHandler {
	return &CheckNotificationsCommandHandler{db, enqueuer, logger}
}

// Handle finds due, unsent reminders, enqueues one send_notification
// task per participant, and marks the reminders sent. A reminder is
// due when scheduled_at minus reminder_minutes has passed.
func (h *CheckNotificationsCommandHandler) Handle(
	ctx context.Context,
	_ CheckNotificationsCommand,
) (string, error) {
	const dueQuery = `
		SELECT
			n.id, n.game_session_id, s.title, s.scheduled_at
		FROM
			notification_schedule n
		INNER JOIN
			game_sessions s ON s.id = n.game_session_id
		WHERE
			n.sent_at IS NULL
			AND n.reminder_minutes IS NOT NULL
			AND s.scheduled_at - make_interval(mins => n.reminder_minutes) <= $1;`

	var due []dueReminder
	err := h.db.SelectContext(ctx, &due, dueQuery, time.Now().UTC())
	switch {
	case err != nil && errors.Is(err, sql.ErrNoRows):
		return "no reminders due", nil
	case err != nil:
		return "", core.NewCommandError(500, err)
	}

	if len(due) == 0 {
		return "no reminders due", nil
	}

	h.logger.Info("reminders due", zap.Int("count", len(due)))

	var errs []error
	dispatched := 0

	for _, reminder := range due {
		const participantsQuery = `
			SELECT
				user_id
			FROM
				game_participants
			WHERE
				game_session_id = $1;`

		var userIDs []int64
		if err := h.db.SelectContext(ctx, &userIDs, participantsQuery, reminder.GameSessionID); err != nil {
			errs = append(errs, err)
			continue
		}

		message := fmt.Sprintf(
			"Reminder: %s starts at %s",
			reminder.Title,
			reminder.ScheduledAt.UTC().Format(time.RFC1123),
		)

		for _, userID := range userIDs {
			args := map[string]interface{}{
				"user_id": userID,
				"game_id": reminder.GameSessionID,
				"message": message,
			}

			if err := h.enqueuer.EnqueueTask(ctx, TaskSendNotification, args); err != nil {
				errs = append(errs, err)
				continue
			}
			dispatched++
		}
	}

	reminderIDs := core.Map(due, func(r dueReminder) string {
		return r.ID
	})

	// Mark every due reminder sent even if some sends failed to
	// enqueue. Sending a reminder once too few is preferred over
	// sending it twice.
	const updateStmt = `
		UPDATE
			notification_schedule
		SET
			sent_at = $1
		WHERE
			id = ANY($2);`
	if _, err := h.db.ExecContext(ctx, updateStmt, time.Now().UTC(), pq.Array(reminderIDs)); err != nil {
		errs = append(errs, err)
	}

	summary := fmt.Sprintf("dispatched %d notifications for %d reminders", dispatched, len(due))
	return summary, errors.Join(errs...)
}
