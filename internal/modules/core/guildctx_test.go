package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Guild_Returns_Scope_Set_By_WithGuild(t *testing.T) {
	// Arrange
	ctx := WithGuild(context.Background(), GuildContext{GuildID: 123456789012345678})

	// Act
	scope := Guild(ctx)

	// Assert
	require.Equal(t, int64(123456789012345678), scope.GuildID)
}

func Test_Guild_Returns_Zero_Scope_When_Unset(t *testing.T) {
	// Act
	scope := Guild(context.Background())

	// Assert
	require.Equal(t, int64(0), scope.GuildID)
}
