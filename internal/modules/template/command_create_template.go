package template

import (
	"context"
	"errors"
	"fmt"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"
)

const uniqueViolationCode = "23505"

type CreateTemplateCommand struct {
	GuildID int64 `json:"-"`

	Name                    string      `json:"name"`
	Title                   string      `json:"title"`
	MaxPlayers              int         `json:"max_players"`
	ExpectedDurationMinutes null.Int    `json:"expected_duration_minutes"`
	Description             null.String `json:"description"`
}

func (c CreateTemplateCommand) Validate() error {
	if c.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", c.GuildID)
	}

	if c.Name == "" {
		return fmt.Errorf("invalid Name - '%s'", c.Name)
	}

	if c.Title == "" {
		return fmt.Errorf("invalid Title - '%s'", c.Title)
	}

	if c.MaxPlayers <= 0 {
		return fmt.Errorf("invalid MaxPlayers - '%d'", c.MaxPlayers)
	}

	return nil
}

type CreateTemplateResponse struct {
	TemplateID string `json:"template_id"`
}

type CreateTemplateCommandHandler struct {
	repository *TemplateRepository
}

func NewCreateTemplateCommandHandler(repository *TemplateRepository) *CreateTemplateCommandHandler {
	return &CreateTemplateCommandHandler{repository}
}

func (h *CreateTemplateCommandHandler) Handle(
	ctx context.Context,
	request CreateTemplateCommand,
) (CreateTemplateResponse, error) {
	gameTemplate := GameTemplate{
		ID:                      uuid.NewString(),
		GuildID:                 request.GuildID,
		Name:                    request.Name,
		Title:                   request.Title,
		MaxPlayers:              request.MaxPlayers,
		ExpectedDurationMinutes: request.ExpectedDurationMinutes,
		Description:             request.Description,
	}

	err := h.repository.SaveTemplate(ctx, gameTemplate)

	var pqErr *pq.Error
	switch {
	case err != nil && errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode:
		return CreateTemplateResponse{}, core.NewCommandError(409, err, core.WithReason("template name already in use"))
	case err != nil:
		return CreateTemplateResponse{}, core.NewCommandError(500, err, core.WithReason("failed to create template"))
	}

	return CreateTemplateResponse{TemplateID: gameTemplate.ID}, nil
}
