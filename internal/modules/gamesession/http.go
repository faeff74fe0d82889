package gamesession

import (
	"net/http"
	"path"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"
	"github.com/ajurkovic/game-scheduler/internal/modules/gamesession/commands"
	"github.com/ajurkovic/game-scheduler/internal/modules/gamesession/domain"
	"github.com/ajurkovic/game-scheduler/internal/modules/gamesession/queries"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
)

type GameSessionHTTPHandler struct{}

func NewGameSessionHTTPHandler() *GameSessionHTTPHandler {
	return &GameSessionHTTPHandler{}
}

func (h *GameSessionHTTPHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[commands.CreateSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.GuildID = core.Guild(r.Context()).GuildID

	response, err := mediator.Send[commands.CreateSessionCommand, commands.CreateSessionResponse](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join(r.Host, "game-sessions", response.SessionID)
	core.WriteCreated(w, r, location)
}

func (h *GameSessionHTTPHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	query := queries.GetSessionQuery{
		GuildID:   core.Guild(r.Context()).GuildID,
		SessionID: chi.URLParam(r, "id"),
	}

	response, err := mediator.Send[queries.GetSessionQuery, queries.SessionDetails](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func (h *GameSessionHTTPHandler) HandleListGuildSessions(w http.ResponseWriter, r *http.Request) {
	query := queries.ListGuildSessionsQuery{GuildID: core.Guild(r.Context()).GuildID}

	response, err := mediator.Send[queries.ListGuildSessionsQuery, []domain.Session](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func (h *GameSessionHTTPHandler) HandleJoinSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[commands.JoinSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.GuildID = core.Guild(r.Context()).GuildID
	command.SessionID = chi.URLParam(r, "id")

	if _, err := mediator.Send[commands.JoinSessionCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

func (h *GameSessionHTTPHandler) HandleLeaveSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[commands.LeaveSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.GuildID = core.Guild(r.Context()).GuildID
	command.SessionID = chi.URLParam(r, "id")

	if _, err := mediator.Send[commands.LeaveSessionCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

func (h *GameSessionHTTPHandler) HandleCancelSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[commands.CancelSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.GuildID = core.Guild(r.Context()).GuildID
	command.SessionID = chi.URLParam(r, "id")

	if _, err := mediator.Send[commands.CancelSessionCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

func (h *GameSessionHTTPHandler) HandlePrefillParticipants(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[commands.PrefillParticipantsCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.GuildID = core.Guild(r.Context()).GuildID
	command.SessionID = chi.URLParam(r, "id")

	if _, err := mediator.Send[commands.PrefillParticipantsCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}
