package bot

import (
	"context"
	"time"

	"github.com/ajurkovic/game-scheduler/internal/modules/guildconfig"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const heartbeatInterval = 30 * time.Second

// Bot is the Discord-facing process. Without a token it runs as a
// placeholder that only logs a heartbeat - the rest of the system does
// not depend on it.
type Bot struct {
	token        string
	guildConfigs *guildconfig.GuildConfigurationRepository
	logger       *zap.Logger
}

func New(token string, guildConfigs *guildconfig.GuildConfigurationRepository, logger *zap.Logger) *Bot {
	return &Bot{
		token:        token,
		guildConfigs: guildConfigs,
		logger:       logger,
	}
}

// Run blocks until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if b.token == "" {
		return b.runPlaceholder(ctx)
	}

	session, err := discordgo.New("Bot " + b.token)
	if err != nil {
		return errors.Wrap(err, "failed to create discord session")
	}

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	session.AddHandler(func(_ *discordgo.Session, ready *discordgo.Ready) {
		b.logger.Info("discord gateway ready", zap.Int("guilds", len(ready.Guilds)))
	})

	session.AddHandler(func(_ *discordgo.Session, event *discordgo.GuildCreate) {
		b.handleGuildCreate(ctx, event)
	})

	if err := session.Open(); err != nil {
		return errors.Wrap(err, "failed to open discord gateway connection")
	}

	<-ctx.Done()

	b.logger.Info("shutting down discord session")
	return session.Close()
}

func (b *Bot) runPlaceholder(ctx context.Context) error {
	b.logger.Info("no discord token configured, running placeholder loop")

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			b.logger.Info("bot placeholder heartbeat")
		}
	}
}

func (b *Bot) handleGuildCreate(ctx context.Context, event *discordgo.GuildCreate) {
	guildID, err := snowflake(event.ID)
	if err != nil {
		b.logger.Error("invalid guild id in guild create event", zap.String("guild_id", event.ID), zap.Error(err))
		return
	}

	if err := b.guildConfigs.EnsureGuildConfiguration(ctx, guildID); err != nil {
		b.logger.Error("failed to ensure guild configuration", zap.Int64("guild_id", guildID), zap.Error(err))
		return
	}

	b.logger.Info("guild configuration ensured", zap.Int64("guild_id", guildID), zap.String("guild_name", event.Name))
}
