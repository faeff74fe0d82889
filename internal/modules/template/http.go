package template

import (
	"net/http"
	"path"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
)

type TemplateHTTPHandler struct{}

func NewTemplateHTTPHandler() *TemplateHTTPHandler {
	return &TemplateHTTPHandler{}
}

func (h *TemplateHTTPHandler) HandleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[CreateTemplateCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.GuildID = core.Guild(r.Context()).GuildID

	response, err := mediator.Send[CreateTemplateCommand, CreateTemplateResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join(r.Host, "templates", response.TemplateID)
	core.WriteCreated(w, r, location)
}

func (h *TemplateHTTPHandler) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	query := ListTemplatesQuery{GuildID: core.Guild(r.Context()).GuildID}

	response, err := mediator.Send[ListTemplatesQuery, []GameTemplate](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func (h *TemplateHTTPHandler) HandleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	command := DeleteTemplateCommand{
		GuildID:    core.Guild(r.Context()).GuildID,
		TemplateID: chi.URLParam(r, "id"),
	}

	if _, err := mediator.Send[DeleteTemplateCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteNoContent(w, r)
}
