package main

import (
	"fmt"
	"net/http"
	"path"
	"testing"
	"time"

	"github.com/ajurkovic/game-scheduler/internal/modules/gamesession/commands"
	"github.com/ajurkovic/game-scheduler/internal/modules/gamesession/queries"
	"github.com/ajurkovic/game-scheduler/internal/modules/template"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func createTemplate(t *testing.T, guildID int64, command template.CreateTemplateCommand) string {
	t.Helper()

	resp, _, err := sendRequest[template.CreateTemplateCommand, struct{}](
		fixture.client,
		fmt.Sprintf("%s%s", fixture.baseURL, "/templates"),
		http.MethodPost,
		guildID,
		command,
	)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	location := resp.Header.Get("Location")
	require.NotEmpty(t, location)

	return path.Base(location)
}

func Test_CreateTemplate_Returns_201_With_Location(t *testing.T) {
	// Arrange
	command := template.CreateTemplateCommand{
		Name:       uuid.New().String(),
		Title:      "Friday Raid Night",
		MaxPlayers: 10,
	}

	// Act
	resp, _, err := sendRequest[template.CreateTemplateCommand, struct{}](
		fixture.client,
		fmt.Sprintf("%s%s", fixture.baseURL, "/templates"),
		http.MethodPost,
		randomSnowflake(),
		command,
	)

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Location"))
}

func Test_CreateTemplate_With_Duplicate_Name_Returns_409(t *testing.T) {
	// Arrange
	guildID := randomSnowflake()
	command := template.CreateTemplateCommand{
		Name:       uuid.New().String(),
		Title:      "Friday Raid Night",
		MaxPlayers: 10,
	}
	_ = createTemplate(t, guildID, command)

	// Act
	resp, _, err := sendRequest[template.CreateTemplateCommand, struct{}](
		fixture.client,
		fmt.Sprintf("%s%s", fixture.baseURL, "/templates"),
		http.MethodPost,
		guildID,
		command,
	)

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func Test_ListTemplates_Only_Returns_Own_Guild_Templates(t *testing.T) {
	// Arrange
	guildID := randomSnowflake()
	otherGuildID := randomSnowflake()

	templateID := createTemplate(t, guildID, template.CreateTemplateCommand{
		Name:       uuid.New().String(),
		Title:      "Board Game Evening",
		MaxPlayers: 6,
	})
	_ = createTemplate(t, otherGuildID, template.CreateTemplateCommand{
		Name:       uuid.New().String(),
		Title:      "Other Guild Evening",
		MaxPlayers: 4,
	})

	// Act
	resp, templates, err := sendRequest[struct{}, []template.GameTemplate](
		fixture.client,
		fmt.Sprintf("%s%s", fixture.baseURL, "/templates"),
		http.MethodGet,
		guildID,
		struct{}{},
	)

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, templates, 1)
	require.Equal(t, templateID, templates[0].ID)
}

func Test_DeleteTemplate_Returns_204(t *testing.T) {
	// Arrange
	guildID := randomSnowflake()
	templateID := createTemplate(t, guildID, template.CreateTemplateCommand{
		Name:       uuid.New().String(),
		Title:      "One Shot",
		MaxPlayers: 4,
	})

	// Act
	resp, _, err := sendRequest[struct{}, struct{}](
		fixture.client,
		fmt.Sprintf("%s/templates/%s", fixture.baseURL, templateID),
		http.MethodDelete,
		guildID,
		struct{}{},
	)

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, templates, err := sendRequest[struct{}, []template.GameTemplate](
		fixture.client,
		fmt.Sprintf("%s%s", fixture.baseURL, "/templates"),
		http.MethodGet,
		guildID,
		struct{}{},
	)
	require.NoError(t, err)
	require.Empty(t, templates)
}

func Test_DeleteTemplate_Returns_404_When_Missing(t *testing.T) {
	// Act
	resp, _, err := sendRequest[struct{}, struct{}](
		fixture.client,
		fmt.Sprintf("%s/templates/%s", fixture.baseURL, uuid.New().String()),
		http.MethodDelete,
		randomSnowflake(),
		struct{}{},
	)

	// Assert
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_CreateSession_From_Template_Defaults_Missing_Fields(t *testing.T) {
	// Arrange
	guildID := randomSnowflake()
	templateID := createTemplate(t, guildID, template.CreateTemplateCommand{
		Name:                    uuid.New().String(),
		Title:                   "Weekly D&D",
		MaxPlayers:              5,
		ExpectedDurationMinutes: null.IntFrom(180),
		Description:             null.StringFrom("Bring your character sheets."),
	})

	command := commands.CreateSessionCommand{
		ChannelID:   randomSnowflake(),
		OrganizerID: randomSnowflake(),
		ScheduledAt: time.Now().Add(48 * time.Hour).UTC(),
		TemplateID:  null.StringFrom(templateID),
	}

	// Act
	sessionID := createSession(t, guildID, command)

	// Assert
	_, details, err := sendRequest[struct{}, queries.SessionDetails](
		fixture.client,
		fmt.Sprintf("%s/game-sessions/%s", fixture.baseURL, sessionID),
		http.MethodGet,
		guildID,
		struct{}{},
	)
	require.NoError(t, err)

	require.Equal(t, "Weekly D&D", details.Session.Title)
	require.Equal(t, 5, details.Session.MaxPlayers)
	require.Equal(t, 180, details.Session.ExpectedDurationMinutes.Int)
	require.Equal(t, "Bring your character sheets.", details.Session.Description.String)
}
