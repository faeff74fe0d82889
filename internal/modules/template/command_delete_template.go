package template

import (
	"context"
	"fmt"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"
)

type DeleteTemplateCommand struct {
	GuildID    int64
	TemplateID string
}

func (c DeleteTemplateCommand) Validate() error {
	if c.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", c.GuildID)
	}

	if c.TemplateID == "" {
		return fmt.Errorf("invalid TemplateID - '%s'", c.TemplateID)
	}

	return nil
}

type DeleteTemplateCommandHandler struct {
	repository *TemplateRepository
}

func NewDeleteTemplateCommandHandler(repository *TemplateRepository) *DeleteTemplateCommandHandler {
	return &DeleteTemplateCommandHandler{repository}
}

func (h *DeleteTemplateCommandHandler) Handle(
	ctx context.Context,
	request DeleteTemplateCommand,
) (core.Unit, error) {
	deleted, err := h.repository.DeleteTemplate(ctx, request.GuildID, request.TemplateID)
	if err != nil {
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to delete template"))
	}

	if !deleted {
		return core.Unit{}, core.NewCommandError(404, fmt.Errorf("template %s not found", request.TemplateID))
	}

	return core.Unit{}, nil
}
