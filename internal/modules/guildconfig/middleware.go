package guildconfig

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"
)

const GuildIDHeader = "X-Guild-Id"

// GuildContextMiddleware scopes the request to a single guild. Every
// guild-scoped route requires the header - the guild id flows from
// here into the row-level-security context of each command.
func GuildContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(GuildIDHeader)
		if header == "" {
			core.WriteBadRequest(w, r, fmt.Errorf("missing required header '%s'", GuildIDHeader))
			return
		}

		guildID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || guildID == 0 {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid format for header '%s'", GuildIDHeader))
			return
		}

		guildContext := core.WithGuild(r.Context(), core.GuildContext{GuildID: guildID})
		next.ServeHTTP(w, r.WithContext(guildContext))
	})
}
