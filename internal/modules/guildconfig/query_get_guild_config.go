package guildconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"
)

type GetGuildConfigQuery struct {
	GuildID int64
}

func (q GetGuildConfigQuery) Validate() error {
	if q.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", q.GuildID)
	}

	return nil
}

type GetGuildConfigQueryHandler struct {
	repository *GuildConfigurationRepository
}

func NewGetGuildConfigQueryHandler(repository *GuildConfigurationRepository) *GetGuildConfigQueryHandler {
	return &GetGuildConfigQueryHandler{repository}
}

func (h *GetGuildConfigQueryHandler) Handle(
	ctx context.Context,
	request GetGuildConfigQuery,
) (GuildConfiguration, error) {
	configuration, err := h.repository.LoadGuildConfiguration(ctx, request.GuildID)
	switch {
	case err != nil && errors.Is(err, sql.ErrNoRows):
		return GuildConfiguration{}, core.NewCommandError(404, fmt.Errorf("no configuration for guild %d", request.GuildID))
	case err != nil:
		return GuildConfiguration{}, core.NewCommandError(500, err, core.WithReason("failed to load guild configuration"))
	}

	return configuration, nil
}
