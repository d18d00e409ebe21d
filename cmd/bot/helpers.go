package main

import (
	"fmt"
	"strconv"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/sam/pkg/messages"
)

func respondError(a IApp, i *discordgo.InteractionCreate) error {
	return respondEphemeral(a, i, messages.ErrUserErrorProcessing)
}

func respondEphemeral(a IApp, i *discordgo.InteractionCreate, content string) error {
	return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// requireAdministrator responds to the interaction and returns false when the member is not an administrator.
func requireAdministrator(a IApp, i *discordgo.InteractionCreate) (bool, error) {
	if isAdministrator(i) {
		return true, nil
	}

	if err := respondEphemeral(a, i, messages.ErrNotAdministrator); err != nil {
		return false, fmt.Errorf("error responding to interaction: %w", err)
	}
	return false, nil
}

// adminOnly guards a processor that is not reached through a controller, such as a button.
func adminOnly(p commandProcessor) commandProcessor {
	return func(a IApp, i *discordgo.InteractionCreate) error {
		if ok, err := requireAdministrator(a, i); err != nil || !ok {
			return err
		}
		return p(a, i)
	}
}

func isAdministrator(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator
}

// interactionUser returns the user that triggered the interaction. Member is only set inside guilds.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// subCommandOptions returns the name and options of the invoked sub command.
func subCommandOptions(i *discordgo.InteractionCreate) (string, map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return "", nil
	}

	sub := data.Options[0]
	return sub.Name, optionMap(sub.Options)
}

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

// parseSnowflake converts a Discord ID into the integer the database stores.
func parseSnowflake(id string) (int64, error) {
	v, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake %q: %w", id, err)
	}
	return v, nil
}

func formatSnowflake(id int64) string {
	return strconv.FormatInt(id, 10)
}

// messageLink is the jump link of a message.
func messageLink(guildID, channelID, messageID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, messageID)
}
