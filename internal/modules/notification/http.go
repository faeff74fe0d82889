package notification

import (
	"net/http"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
)

type NotificationHTTPHandler struct{}

func NewNotificationHTTPHandler() *NotificationHTTPHandler {
	return &NotificationHTTPHandler{}
}

func (h *NotificationHTTPHandler) HandleScheduleReminder(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[ScheduleReminderCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.GuildID = core.Guild(r.Context()).GuildID
	command.SessionID = chi.URLParam(r, "id")

	response, err := mediator.Send[ScheduleReminderCommand, ScheduleReminderResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}
