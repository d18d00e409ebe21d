package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/sam/pkg/entities"
	"github.com/Jacobbrewer1/sam/pkg/logging"
	"github.com/Jacobbrewer1/sam/pkg/messages"
)

const (
	// ModmailInProgressButtonID is the ID for the button that marks a modmail as in progress.
	ModmailInProgressButtonID = "modmail_in_progress_button"

	// ModmailCloseButtonID is the ID for the button that closes a modmail.
	ModmailCloseButtonID = "modmail_close_button"

	// ModmailReopenButtonID is the ID for the button that reopens a modmail.
	ModmailReopenButtonID = "modmail_reopen_button"
)

const (
	// InProgressEmoji is the emoji for the in progress button. (Hourglass)
	InProgressEmoji = "\u23F3"

	// CloseEmoji is the emoji for the close button. (Padlock)
	CloseEmoji = "\U0001F510"

	// ReopenEmoji is the emoji for the reopen button. (Open padlock)
	ReopenEmoji = "\U0001F513"
)

const (
	// modmailCmdName is the command for moderators to browse modmails.
	modmailCmdName = "modmail"

	// modmailListCmdName lists the modmails with a status.
	modmailListCmdName = "list"

	// modmailStatusOptName is the status option of the list sub command.
	modmailStatusOptName = "status"

	// modmailStatusFieldName is the embed field holding the status.
	modmailStatusFieldName = "Status"

	// modmailListLimit caps the listed modmails so the response stays under the message size limit.
	modmailListLimit = 20
)

var (
	// modmailCmd is the command for moderators to browse modmails.
	modmailCmd = &discordgo.ApplicationCommand{
		Name:        modmailCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "This is the command for browsing modmails.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        modmailListCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Lists the modmails with the given status, oldest first.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        modmailStatusOptName,
						Type:        discordgo.ApplicationCommandOptionString,
						Description: "The status of the modmails to list.",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Open", Value: entities.ModmailStatusOpen.String()},
							{Name: "In progress", Value: entities.ModmailStatusInProgress.String()},
							{Name: "Closed", Value: entities.ModmailStatusClosed.String()},
						},
					},
				},
			},
		},
	}
)

// modmailColours are the embed colours per status.
var modmailColours = map[entities.ModmailStatus]int{
	entities.ModmailStatusOpen:       0xff0000,
	entities.ModmailStatusInProgress: 0xffa500,
	entities.ModmailStatusClosed:     0x00ff00,
}

// modmailButtons are the status buttons. Buttons that lead to a forbidden transition are disabled.
func modmailButtons(status entities.ModmailStatus) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    fmt.Sprintf("%s In progress", InProgressEmoji),
					Style:    discordgo.PrimaryButton,
					Disabled: status == entities.ModmailStatusInProgress || !entities.CanTransition(status, entities.ModmailStatusInProgress),
					CustomID: ModmailInProgressButtonID,
				},
				discordgo.Button{
					Label:    fmt.Sprintf("%s Close", CloseEmoji),
					Style:    discordgo.SecondaryButton,
					Disabled: status == entities.ModmailStatusClosed || !entities.CanTransition(status, entities.ModmailStatusClosed),
					CustomID: ModmailCloseButtonID,
				},
				discordgo.Button{
					Label:    fmt.Sprintf("%s Reopen", ReopenEmoji),
					Style:    discordgo.SuccessButton,
					Disabled: status == entities.ModmailStatusOpen || !entities.CanTransition(status, entities.ModmailStatusOpen),
					CustomID: ModmailReopenButtonID,
				},
			},
		},
	}
}

// modmailEmbed is the embed a direct message is forwarded as.
func modmailEmbed(m *discordgo.MessageCreate, received time.Time) *discordgo.MessageEmbed {
	content := m.Content
	for _, att := range m.Attachments {
		content += "\n" + att.URL
	}

	return &discordgo.MessageEmbed{
		Title:       "Modmail",
		Description: content,
		Color:       modmailColours[entities.ModmailStatusOpen],
		Timestamp:   received.Format(time.RFC3339),
		Author: &discordgo.MessageEmbedAuthor{
			Name:    m.Author.String(),
			IconURL: m.Author.AvatarURL(""),
		},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Author",
				Value:  fmt.Sprintf("<@%s>", m.Author.ID),
				Inline: true,
			},
			{
				Name:   modmailStatusFieldName,
				Value:  entities.ModmailStatusOpen.String(),
				Inline: true,
			},
		},
	}
}

// withModmailStatus returns a copy of the embed showing the status.
func withModmailStatus(embed *discordgo.MessageEmbed, status entities.ModmailStatus) *discordgo.MessageEmbed {
	updated := *embed
	updated.Color = modmailColours[status]
	updated.Fields = make([]*discordgo.MessageEmbedField, 0, len(embed.Fields)+1)

	found := false
	for _, f := range embed.Fields {
		field := *f
		if field.Name == modmailStatusFieldName {
			field.Value = status.String()
			found = true
		}
		updated.Fields = append(updated.Fields, &field)
	}

	if !found {
		updated.Fields = append(updated.Fields, &discordgo.MessageEmbedField{
			Name:   modmailStatusFieldName,
			Value:  status.String(),
			Inline: true,
		})
	}
	return &updated
}

// forwardModmail posts a direct message to the modmail channel and records it as an open modmail.
func forwardModmail(a IApp, m *discordgo.MessageCreate) {
	l := a.Log().With(slog.String(logging.KeyUser, m.Author.ID))

	if ModmailChannelId == "" {
		if _, err := a.Session().ChannelMessageSend(m.ChannelID, messages.ErrModmailDisabled); err != nil {
			l.Error("Error responding to modmail", slog.String(logging.KeyError, err.Error()))
		}
		return
	}

	reply := messages.ModmailReceived
	if err := recordModmail(a, m); err != nil {
		l.Error("Error forwarding modmail", slog.String(logging.KeyError, err.Error()))
		reply = messages.ErrUserErrorProcessing
	}

	if _, err := a.Session().ChannelMessageSend(m.ChannelID, reply); err != nil {
		l.Error("Error responding to modmail", slog.String(logging.KeyError, err.Error()))
	}
}

func recordModmail(a IApp, m *discordgo.MessageCreate) error {
	received := time.Now().UTC()

	msg, err := a.Session().ChannelMessageSendComplex(ModmailChannelId, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{modmailEmbed(m, received)},
		Components: modmailButtons(entities.ModmailStatusOpen),
	})
	if err != nil {
		return fmt.Errorf("error sending modmail: %w", err)
	}

	id, err := parseSnowflake(msg.ID)
	if err != nil {
		return err
	}

	if err := a.Store().AddModmail(context.Background(), id, m.Author.String(), received); err != nil {
		// A forwarded message without a row cannot be managed, so it is removed again.
		if delErr := a.Session().ChannelMessageDelete(ModmailChannelId, msg.ID); delErr != nil {
			a.Log().Warn("Error deleting unrecorded modmail", slog.String(logging.KeyError, delErr.Error()))
		}
		return fmt.Errorf("error saving modmail: %w", err)
	}
	return nil
}

// modmailStatusButton moves the modmail the button is attached to into the status.
func modmailStatusButton(to entities.ModmailStatus) commandProcessor {
	return func(a IApp, i *discordgo.InteractionCreate) error {
		if i.Message == nil {
			return fmt.Errorf("button interaction without a message")
		}

		id, err := parseSnowflake(i.Message.ID)
		if err != nil {
			return err
		}

		ctx := context.Background()
		from, err := a.Store().GetModmailStatus(ctx, id)
		if err != nil {
			return fmt.Errorf("error getting modmail status: %w", err)
		} else if from == nil {
			return respondEphemeral(a, i, messages.ErrModmailUnknown)
		}

		if !entities.CanTransition(*from, to) {
			return respondEphemeral(a, i, fmt.Sprintf("A modmail that is %s cannot be moved to %s.", *from, to))
		}

		if err := a.Store().ChangeModmailStatus(ctx, id, to); err != nil {
			return fmt.Errorf("error changing modmail status: %w", err)
		}

		embeds := make([]*discordgo.MessageEmbed, 0, len(i.Message.Embeds))
		for _, e := range i.Message.Embeds {
			embeds = append(embeds, withModmailStatus(e, to))
		}

		user := interactionUser(i)
		a.Log().Info("Modmail status changed",
			slog.String("message_id", i.Message.ID),
			slog.String("from", from.String()),
			slog.String("to", to.String()),
			slog.String(logging.KeyUser, user.ID))

		return a.Session().InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     embeds,
				Components: modmailButtons(to),
			},
		})
	}
}

func modmailCmdController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	if ok, err := requireAdministrator(a, i); err != nil || !ok {
		return nil, err
	}

	subCmd, _ := subCommandOptions(i)
	switch subCmd {
	case modmailListCmdName:
		return listModmails, nil
	default:
		return nil, fmt.Errorf("unhandled sub command %s", subCmd)
	}
}

func listModmails(a IApp, i *discordgo.InteractionCreate) error {
	_, opts := subCommandOptions(i)
	opt, ok := opts[modmailStatusOptName]
	if !ok {
		return fmt.Errorf("missing %s option", modmailStatusOptName)
	}

	status, err := entities.ParseModmailStatusName(opt.StringValue())
	if err != nil {
		return err
	}

	modmails, err := a.Store().GetAllModmailWithStatus(context.Background(), status)
	if err != nil {
		return fmt.Errorf("error getting modmails: %w", err)
	}

	return respondEphemeral(a, i, formatModmailList(i.GuildID, status, modmails))
}

func formatModmailList(guildID string, status entities.ModmailStatus, modmails []*entities.Modmail) string {
	if modmails == nil {
		return fmt.Sprintf("There are no %s modmails.", status)
	}

	sb := new(strings.Builder)
	sb.WriteString(fmt.Sprintf("%d %s modmail(s):", len(modmails), status))
	for n, mm := range modmails {
		if n == modmailListLimit {
			sb.WriteString(fmt.Sprintf("\n... and %d more", len(modmails)-modmailListLimit))
			break
		}

		sb.WriteString(fmt.Sprintf("\n- %s by %s: %s",
			mm.Timestamp.Time().Format(time.DateTime),
			mm.Author,
			messageLink(guildID, ModmailChannelId, formatSnowflake(mm.MessageID))))
	}
	return sb.String()
}
