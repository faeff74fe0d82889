package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/ajurkovic/game-scheduler/internal/config"
	"github.com/ajurkovic/game-scheduler/internal/modules/core"
	"github.com/ajurkovic/game-scheduler/internal/modules/gamesession"
	gamesessioncommands "github.com/ajurkovic/game-scheduler/internal/modules/gamesession/commands"
	gamesessiondomain "github.com/ajurkovic/game-scheduler/internal/modules/gamesession/domain"
	gamesessionqueries "github.com/ajurkovic/game-scheduler/internal/modules/gamesession/queries"
	"github.com/ajurkovic/game-scheduler/internal/modules/guildconfig"
	"github.com/ajurkovic/game-scheduler/internal/modules/notification"
	"github.com/ajurkovic/game-scheduler/internal/modules/template"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Server interface {
	Start() error
	Stop() error
}

var _ Server = &HTTPServer{}

// HTTPServer acts as the composition root for the API process. It
// assumes a fully migrated, verified schema - the init process runs
// before it.
type HTTPServer struct {
	server *http.Server
}

func NewHTTPServer(config config.Config) (Server, error) {
	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		return nil, err
	}

	sqlxDB := sqlx.NewDb(db, "postgres")

	core.SetLogger(config.Logger)

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	// handler registration

	// game-session

	createSessionHandler := gamesessioncommands.NewCreateSessionCommandHandler(db)
	err = mediator.RegisterRequestHandler[gamesessioncommands.CreateSessionCommand, gamesessioncommands.CreateSessionResponse](
		createSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	joinSessionHandler := gamesessioncommands.NewJoinSessionCommandHandler(db)
	err = mediator.RegisterRequestHandler[gamesessioncommands.JoinSessionCommand, core.Unit](
		joinSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	leaveSessionHandler := gamesessioncommands.NewLeaveSessionCommandHandler(db)
	err = mediator.RegisterRequestHandler[gamesessioncommands.LeaveSessionCommand, core.Unit](
		leaveSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	cancelSessionHandler := gamesessioncommands.NewCancelSessionCommandHandler(db)
	err = mediator.RegisterRequestHandler[gamesessioncommands.CancelSessionCommand, core.Unit](
		cancelSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	prefillParticipantsHandler := gamesessioncommands.NewPrefillParticipantsCommandHandler(db)
	err = mediator.RegisterRequestHandler[gamesessioncommands.PrefillParticipantsCommand, core.Unit](
		prefillParticipantsHandler,
	)
	if err != nil {
		return nil, err
	}

	getSessionHandler := gamesessionqueries.NewGetSessionQueryHandler(db)
	err = mediator.RegisterRequestHandler[gamesessionqueries.GetSessionQuery, gamesessionqueries.SessionDetails](
		getSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	listGuildSessionsHandler := gamesessionqueries.NewListGuildSessionsQueryHandler(db)
	err = mediator.RegisterRequestHandler[gamesessionqueries.ListGuildSessionsQuery, []gamesessiondomain.Session](
		listGuildSessionsHandler,
	)
	if err != nil {
		return nil, err
	}

	// guild-config

	guildConfigRepository := guildconfig.NewGuildConfigurationRepository(sqlxDB)

	getGuildConfigHandler := guildconfig.NewGetGuildConfigQueryHandler(guildConfigRepository)
	err = mediator.RegisterRequestHandler[guildconfig.GetGuildConfigQuery, guildconfig.GuildConfiguration](
		getGuildConfigHandler,
	)
	if err != nil {
		return nil, err
	}

	upsertGuildConfigHandler := guildconfig.NewUpsertGuildConfigCommandHandler(guildConfigRepository)
	err = mediator.RegisterRequestHandler[guildconfig.UpsertGuildConfigCommand, core.Unit](
		upsertGuildConfigHandler,
	)
	if err != nil {
		return nil, err
	}

	upsertChannelConfigHandler := guildconfig.NewUpsertChannelConfigCommandHandler(guildConfigRepository)
	err = mediator.RegisterRequestHandler[guildconfig.UpsertChannelConfigCommand, core.Unit](
		upsertChannelConfigHandler,
	)
	if err != nil {
		return nil, err
	}

	// template

	templateRepository := template.NewTemplateRepository(sqlxDB)

	createTemplateHandler := template.NewCreateTemplateCommandHandler(templateRepository)
	err = mediator.RegisterRequestHandler[template.CreateTemplateCommand, template.CreateTemplateResponse](
		createTemplateHandler,
	)
	if err != nil {
		return nil, err
	}

	listTemplatesHandler := template.NewListTemplatesQueryHandler(templateRepository)
	err = mediator.RegisterRequestHandler[template.ListTemplatesQuery, []template.GameTemplate](
		listTemplatesHandler,
	)
	if err != nil {
		return nil, err
	}

	deleteTemplateHandler := template.NewDeleteTemplateCommandHandler(templateRepository)
	err = mediator.RegisterRequestHandler[template.DeleteTemplateCommand, core.Unit](
		deleteTemplateHandler,
	)
	if err != nil {
		return nil, err
	}

	// notification

	scheduleReminderHandler := notification.NewScheduleReminderCommandHandler(db)
	err = mediator.RegisterRequestHandler[notification.ScheduleReminderCommand, notification.ScheduleReminderResponse](
		scheduleReminderHandler,
	)
	if err != nil {
		return nil, err
	}

	// http

	gameSessionHTTPHandler := gamesession.NewGameSessionHTTPHandler()
	guildConfigHTTPHandler := guildconfig.NewGuildConfigHTTPHandler()
	templateHTTPHandler := template.NewTemplateHTTPHandler()
	notificationHTTPHandler := notification.NewNotificationHTTPHandler()

	router := chi.NewRouter()
	router.Use(core.CorrelationIDMiddleware)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		core.WriteOK(w, r, map[string]string{"status": "healthy"})
	})

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		core.WriteOK(w, r, map[string]string{"message": "Game Scheduler API"})
	})

	router.Group(func(router chi.Router) {
		router.Use(guildconfig.GuildContextMiddleware)

		router.Post("/game-sessions", gameSessionHTTPHandler.HandleCreateSession)
		router.Get("/game-sessions", gameSessionHTTPHandler.HandleListGuildSessions)
		router.Get("/game-sessions/{id}", gameSessionHTTPHandler.HandleGetSession)

		router.Put("/game-sessions/{id}/actions/join", gameSessionHTTPHandler.HandleJoinSession)
		router.Put("/game-sessions/{id}/actions/leave", gameSessionHTTPHandler.HandleLeaveSession)
		router.Put("/game-sessions/{id}/actions/cancel", gameSessionHTTPHandler.HandleCancelSession)

		router.Post("/game-sessions/{id}/participants/prefill", gameSessionHTTPHandler.HandlePrefillParticipants)
		router.Post("/game-sessions/{id}/reminders", notificationHTTPHandler.HandleScheduleReminder)

		router.Get("/guild-config", guildConfigHTTPHandler.HandleGetGuildConfig)
		router.Put("/guild-config", guildConfigHTTPHandler.HandleUpsertGuildConfig)
		router.Put("/channel-config/{channelID}", guildConfigHTTPHandler.HandleUpsertChannelConfig)

		router.Post("/templates", templateHTTPHandler.HandleCreateTemplate)
		router.Get("/templates", templateHTTPHandler.HandleListTemplates)
		router.Delete("/templates/{id}", templateHTTPHandler.HandleDeleteTemplate)
	})

	server := http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: router,
	}

	return &HTTPServer{server: &server}, nil
}

func (s *HTTPServer) Start() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
