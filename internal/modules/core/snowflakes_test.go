package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SnowflakeList_Value_Serializes_To_JSON_Array(t *testing.T) {
	// Arrange
	list := SnowflakeList{123456789012345678, 234567890123456789}

	// Act
	value, err := list.Value()

	// Assert
	require.NoError(t, err)
	require.JSONEq(t, `[123456789012345678,234567890123456789]`, string(value.([]byte)))
}

func Test_SnowflakeList_Value_Serializes_Nil_As_Empty_Array(t *testing.T) {
	// Arrange
	var list SnowflakeList

	// Act
	value, err := list.Value()

	// Assert
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(value.([]byte)))
}

func Test_SnowflakeList_Scan_Round_Trips(t *testing.T) {
	// Arrange
	var list SnowflakeList

	// Act
	err := list.Scan([]byte(`[123456789012345678]`))

	// Assert
	require.NoError(t, err)
	require.Equal(t, SnowflakeList{123456789012345678}, list)
}

func Test_SnowflakeList_Scan_Treats_NULL_As_Empty(t *testing.T) {
	// Arrange
	var list SnowflakeList

	// Act
	err := list.Scan(nil)

	// Assert
	require.NoError(t, err)
	require.Empty(t, list)
}

func Test_SnowflakeList_Scan_Rejects_Unsupported_Types(t *testing.T) {
	// Arrange
	var list SnowflakeList

	// Act
	err := list.Scan(42)

	// Assert
	require.Error(t, err)
}
