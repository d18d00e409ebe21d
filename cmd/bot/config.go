package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/sam/pkg/dataaccess"
)

const (
	// AppName is the name of the application.
	AppName = "sam"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvApplicationId is the environment variable for the application ID.
	EnvApplicationId = `APPLICATION_ID`

	// EnvDbFilePath is the environment variable for the SQLite database file.
	EnvDbFilePath = `DB_FILE_PATH`

	// EnvDbInitScript is the environment variable for the schema script applied at startup.
	EnvDbInitScript = `DB_INIT_SCRIPT`

	// EnvModmailChannelId is the environment variable for the channel modmails are forwarded to.
	EnvModmailChannelId = `MODMAIL_CHANNEL_ID`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`
)

var (
	// BotToken is the token for the bot.
	BotToken string

	// ApplicationId is the ID of the application.
	ApplicationId string

	// DbFilePath is the path of the SQLite database file.
	DbFilePath string

	// DbInitScript is the path of the schema script. The embedded schema is used when empty.
	DbInitScript string

	// ModmailChannelId is the channel modmails are forwarded to. Modmail is disabled when empty.
	ModmailChannelId string

	// MonitoringPort is the port for the monitoring server.
	MonitoringPort string
)

// errIncompleteConfig is returned when a required environment variable is missing.
var errIncompleteConfig = errors.New("not all required environment variables have been provided")

func parseConfig(l *slog.Logger) error {
	if envBT := os.Getenv(EnvBotToken); envBT != "" {
		l.Debug("Found bot token in environment", slog.String("key", EnvBotToken))
		BotToken = envBT
	}

	if envAppId := os.Getenv(EnvApplicationId); envAppId != "" {
		l.Debug("Found application ID in environment", slog.String("key", EnvApplicationId))
		ApplicationId = envAppId
	}

	if envDbFilePath := os.Getenv(EnvDbFilePath); envDbFilePath != "" {
		l.Debug("Found database file path in environment", slog.String("key", EnvDbFilePath))
		DbFilePath = envDbFilePath
	}

	if envDbInitScript := os.Getenv(EnvDbInitScript); envDbInitScript != "" {
		l.Debug("Found database init script in environment", slog.String("key", EnvDbInitScript))
		DbInitScript = envDbInitScript
	}

	if envModmail := os.Getenv(EnvModmailChannelId); envModmail != "" {
		l.Debug("Found modmail channel in environment", slog.String("key", EnvModmailChannelId))
		ModmailChannelId = envModmail
	} else {
		l.Info("No modmail channel provided in environment, modmail is disabled", slog.String("key", EnvModmailChannelId))
	}

	if envMonitoringPort := os.Getenv(EnvMonitoringPort); envMonitoringPort != "" {
		l.Debug("Found monitoring port in environment", slog.String("key", EnvMonitoringPort))
		MonitoringPort = envMonitoringPort
	} else {
		// Default to 8080 if not provided.
		MonitoringPort = "8080"
		l.Info("No monitoring port provided in environment, defaulting to 8080", slog.String("key", EnvMonitoringPort))
	}

	missing := make([]string, 0)
	for key, value := range map[string]string{
		EnvBotToken:      BotToken,
		EnvApplicationId: ApplicationId,
		EnvDbFilePath:    DbFilePath,
	} {
		if value == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", errIncompleteConfig, missing)
	}

	// All required environment variables have been provided.
	l.Debug("All required environment variables have been provided")
	return nil
}

// connectStore opens the database file and applies the schema.
func connectStore(ctx context.Context, a *App) error {
	store, err := dataaccess.NewConnector(ctx, a.Log(), DbFilePath, DbInitScript)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	a.store = store
	a.Debug("Connected to database", slog.String("key", EnvDbFilePath))
	return nil
}
