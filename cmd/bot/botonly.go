package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/sam/pkg/logging"
	"github.com/Jacobbrewer1/sam/pkg/messages"
)

const (
	// botOnlyCmdName is the command for toggling bot-only mode.
	botOnlyCmdName = "botonly"

	// botOnlyChannelOptName is the optional channel to toggle, defaults to the current channel.
	botOnlyChannelOptName = "channel"
)

var (
	// botOnlyCmd is the command for toggling bot-only mode.
	botOnlyCmd = &discordgo.ApplicationCommand{
		Name:        botOnlyCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Toggles bot-only mode, in which messages of other users are deleted.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        botOnlyChannelOptName,
				Type:        discordgo.ApplicationCommandOptionChannel,
				Description: "The channel to toggle. Defaults to this channel.",
				Required:    false,
			},
		},
	}
)

func botOnlyCmdController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	if ok, err := requireAdministrator(a, i); err != nil || !ok {
		return nil, err
	}
	return toggleBotOnly, nil
}

// toggleBotOnly flips the bot-only flag of the channel and announces the new state in it.
func toggleBotOnly(a IApp, i *discordgo.InteractionCreate) error {
	channelID := i.ChannelID
	if opt, ok := optionMap(i.ApplicationCommandData().Options)[botOnlyChannelOptName]; ok {
		channelID = opt.ChannelValue(nil).ID
	}

	id, err := parseSnowflake(channelID)
	if err != nil {
		return err
	}

	ctx := context.Background()
	active, err := a.Store().IsBotOnly(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting bot-only state: %w", err)
	}

	announcement := messages.BotOnlyActivated
	if active {
		err = a.Store().DeactivateBotOnly(ctx, id)
		announcement = messages.BotOnlyDeactivated
	} else {
		err = a.Store().ActivateBotOnly(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("error toggling bot-only state: %w", err)
	}

	if _, err := a.Session().ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       "Bot-only mode",
		Description: announcement,
		Color:       botOnlyColour(!active),
	}); err != nil {
		a.Log().Warn("Error announcing bot-only state",
			slog.String(logging.KeyChannel, channelID),
			slog.String(logging.KeyError, err.Error()))
	}

	return respondEphemeral(a, i, fmt.Sprintf("%s (<#%s>)", announcement, channelID))
}

func botOnlyColour(active bool) int {
	if active {
		return 0xff0000
	}
	return 0x00ff00
}

// deleteIfBotOnly removes the message when it was posted in a bot-only channel by anyone but a bot.
func deleteIfBotOnly(a IApp, m *discordgo.MessageCreate) {
	if m.Author.Bot {
		return
	}

	id, err := parseSnowflake(m.ChannelID)
	if err != nil {
		a.Log().Error("Error parsing channel ID", slog.String(logging.KeyError, err.Error()))
		return
	}

	active, err := a.Store().IsBotOnly(context.Background(), id)
	if err != nil {
		a.Log().Error("Error getting bot-only state",
			slog.String(logging.KeyChannel, m.ChannelID),
			slog.String(logging.KeyError, err.Error()))
		return
	} else if !active {
		return
	}

	if err := a.Session().ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		a.Log().Error("Error deleting message in bot-only channel",
			slog.String(logging.KeyChannel, m.ChannelID),
			slog.String(logging.KeyUser, m.Author.ID),
			slog.String(logging.KeyError, err.Error()))
	}
}

// messageCreateHandler turns direct messages into modmails and enforces bot-only channels.
func messageCreateHandler(a IApp) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || (s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID) {
			return
		}

		if m.GuildID == "" {
			if m.Author.Bot {
				return
			}
			forwardModmail(a, m)
			return
		}

		deleteIfBotOnly(a, m)
	}
}
