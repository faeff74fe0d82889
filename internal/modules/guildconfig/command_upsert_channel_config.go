package guildconfig

import (
	"context"
	"fmt"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"
)

type UpsertChannelConfigCommand struct {
	GuildID   int64 `json:"-"`
	ChannelID int64 `json:"-"`

	SchedulingEnabled bool `json:"scheduling_enabled"`
}

func (c UpsertChannelConfigCommand) Validate() error {
	if c.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", c.GuildID)
	}

	if c.ChannelID == 0 {
		return fmt.Errorf("invalid ChannelID - '%d'", c.ChannelID)
	}

	return nil
}

type UpsertChannelConfigCommandHandler struct {
	repository *GuildConfigurationRepository
}

func NewUpsertChannelConfigCommandHandler(repository *GuildConfigurationRepository) *UpsertChannelConfigCommandHandler {
	return &UpsertChannelConfigCommandHandler{repository}
}

func (h *UpsertChannelConfigCommandHandler) Handle(
	ctx context.Context,
	request UpsertChannelConfigCommand,
) (core.Unit, error) {
	configuration := ChannelConfiguration{
		ChannelID:         request.ChannelID,
		GuildID:           request.GuildID,
		SchedulingEnabled: request.SchedulingEnabled,
	}

	if err := h.repository.SaveChannelConfiguration(ctx, configuration); err != nil {
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to save channel configuration"))
	}

	return core.Unit{}, nil
}
