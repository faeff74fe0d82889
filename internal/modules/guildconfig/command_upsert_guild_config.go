package guildconfig

import (
	"context"
	"fmt"
	"time"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"
)

type UpsertGuildConfigCommand struct {
	GuildID int64 `json:"-"`

	BotManagerRoleIDs []int64 `json:"bot_manager_role_ids"`
	Timezone          string  `json:"timezone"`
}

func (c UpsertGuildConfigCommand) Validate() error {
	if c.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", c.GuildID)
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid Timezone - '%s'", c.Timezone)
		}
	}

	return nil
}

type UpsertGuildConfigCommandHandler struct {
	repository *GuildConfigurationRepository
}

func NewUpsertGuildConfigCommandHandler(repository *GuildConfigurationRepository) *UpsertGuildConfigCommandHandler {
	return &UpsertGuildConfigCommandHandler{repository}
}

func (h *UpsertGuildConfigCommandHandler) Handle(
	ctx context.Context,
	request UpsertGuildConfigCommand,
) (core.Unit, error) {
	timezone := request.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	configuration := GuildConfiguration{
		GuildID:           request.GuildID,
		BotManagerRoleIDs: core.SnowflakeList(request.BotManagerRoleIDs),
		Timezone:          timezone,
	}

	if err := h.repository.SaveGuildConfiguration(ctx, configuration); err != nil {
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to save guild configuration"))
	}

	return core.Unit{}, nil
}
