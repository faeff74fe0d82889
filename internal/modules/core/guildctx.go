package core

import (
	"context"
)

type ContextKey string

const GuildContextKey ContextKey = "guild"

type GuildContext struct {
	GuildID int64
}

func WithGuild(ctx context.Context, guild GuildContext) context.Context {
	return context.WithValue(ctx, GuildContextKey, guild)
}

func Guild(ctx context.Context) GuildContext {
	rawVal := ctx.Value(GuildContextKey)

	if rawVal == nil {
		return GuildContext{}
	}

	guild, ok := rawVal.(GuildContext)
	if !ok {
		return GuildContext{}
	}

	return guild
}
