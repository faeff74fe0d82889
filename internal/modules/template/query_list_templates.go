package template

import (
	"context"
	"fmt"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"
)

type ListTemplatesQuery struct {
	GuildID int64
}

func (q ListTemplatesQuery) Validate() error {
	if q.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", q.GuildID)
	}

	return nil
}

type ListTemplatesQueryHandler struct {
	repository *TemplateRepository
}

func NewListTemplatesQueryHandler(repository *TemplateRepository) *ListTemplatesQueryHandler {
	return &ListTemplatesQueryHandler{repository}
}

func (h *ListTemplatesQueryHandler) Handle(
	ctx context.Context,
	request ListTemplatesQuery,
) ([]GameTemplate, error) {
	templates, err := h.repository.ListTemplates(ctx, request.GuildID)
	if err != nil {
		return nil, core.NewCommandError(500, err, core.WithReason("failed to list templates"))
	}

	return templates, nil
}
