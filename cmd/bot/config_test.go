package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Setenv(EnvBotToken, "token")
	t.Setenv(EnvApplicationId, "123")
	t.Setenv(EnvDbFilePath, "/tmp/sam.db")
	t.Setenv(EnvMonitoringPort, "")
	t.Setenv(EnvModmailChannelId, "456")

	require.NoError(t, parseConfig(slog.Default()))
	require.Equal(t, "token", BotToken)
	require.Equal(t, "/tmp/sam.db", DbFilePath)
	require.Equal(t, "456", ModmailChannelId)
	require.Equal(t, "8080", MonitoringPort)
}

func TestParseConfig_MissingDatabase(t *testing.T) {
	DbFilePath = ""
	t.Setenv(EnvBotToken, "token")
	t.Setenv(EnvApplicationId, "123")
	t.Setenv(EnvDbFilePath, "")

	err := parseConfig(slog.Default())
	require.ErrorIs(t, err, errIncompleteConfig)
	require.Contains(t, err.Error(), EnvDbFilePath)
}
