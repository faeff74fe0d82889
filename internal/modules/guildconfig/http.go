package guildconfig

import (
	"net/http"
	"strconv"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
)

type GuildConfigHTTPHandler struct{}

func NewGuildConfigHTTPHandler() *GuildConfigHTTPHandler {
	return &GuildConfigHTTPHandler{}
}

func (h *GuildConfigHTTPHandler) HandleGetGuildConfig(w http.ResponseWriter, r *http.Request) {
	query := GetGuildConfigQuery{GuildID: core.Guild(r.Context()).GuildID}

	response, err := mediator.Send[GetGuildConfigQuery, GuildConfiguration](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func (h *GuildConfigHTTPHandler) HandleUpsertGuildConfig(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[UpsertGuildConfigCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.GuildID = core.Guild(r.Context()).GuildID

	if _, err := mediator.Send[UpsertGuildConfigCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

func (h *GuildConfigHTTPHandler) HandleUpsertChannelConfig(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[UpsertChannelConfigCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	channelID, err := strconv.ParseInt(chi.URLParam(r, "channelID"), 10, 64)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.GuildID = core.Guild(r.Context()).GuildID
	command.ChannelID = channelID

	if _, err := mediator.Send[UpsertChannelConfigCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}
