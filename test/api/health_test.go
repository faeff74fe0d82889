package main

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Health_Returns_Healthy_Status(t *testing.T) {
	// Act
	resp, err := fixture.client.Get(fmt.Sprintf("%s%s", fixture.baseURL, "/health"))

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"healthy"}`, string(body))
}

func Test_Root_Returns_Service_Banner(t *testing.T) {
	// Act
	resp, err := fixture.client.Get(fixture.baseURL + "/")

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"message":"Game Scheduler API"}`, string(body))
}

func Test_Guild_Scoped_Route_Returns_400_Without_Guild_Header(t *testing.T) {
	// Act
	resp, err := fixture.client.Get(fmt.Sprintf("%s%s", fixture.baseURL, "/game-sessions"))

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
