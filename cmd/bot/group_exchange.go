package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/sam/pkg/dataaccess"
	"github.com/Jacobbrewer1/sam/pkg/entities"
	"github.com/Jacobbrewer1/sam/pkg/logging"
	"github.com/Jacobbrewer1/sam/pkg/messages"
)

const (
	// groupExchangeCmdName is the command for trading course groups.
	groupExchangeCmdName = "groupexchange"

	groupExchangeOfferCmdName  = "offer"
	groupExchangeRemoveCmdName = "remove"
	groupExchangeListCmdName   = "list"

	// groupExchangeOfferedOptName is the group the user currently holds.
	groupExchangeOfferedOptName = "offered"

	// groupExchangeRequestedOptName is the comma separated list of groups the user would accept.
	groupExchangeRequestedOptName = "requested"
)

var (
	errInvalidGroup     = errors.New("groups must be positive whole numbers")
	errRequestedOffered = errors.New("you cannot request the group you offer")
)

var (
	// groupExchangeCmd is the command for trading course groups. The channel it is used in is the course.
	groupExchangeCmd = &discordgo.ApplicationCommand{
		Name:        groupExchangeCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Trade your group in the course of this channel with other members.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        groupExchangeOfferCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Offers your group in exchange for one of the requested groups.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        groupExchangeOfferedOptName,
						Type:        discordgo.ApplicationCommandOptionInteger,
						Description: "The group you are in.",
						Required:    true,
					},
					{
						Name:        groupExchangeRequestedOptName,
						Type:        discordgo.ApplicationCommandOptionString,
						Description: "The groups you would accept, separated by commas. For example: 2,3",
						Required:    true,
					},
				},
			},
			{
				Name:        groupExchangeRemoveCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Removes your offer for the course of this channel.",
			},
			{
				Name:        groupExchangeListCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Lists all your offers.",
			},
		},
	}
)

func groupExchangeCmdController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	user := interactionUser(i)
	if user == nil {
		return nil, errors.New("interaction without a user")
	}

	if !a.Limiter().Allow(user.ID) {
		return nil, respondEphemeral(a, i, messages.ErrRateLimited)
	}

	subCmd, _ := subCommandOptions(i)
	switch subCmd {
	case groupExchangeOfferCmdName:
		return offerGroupExchange, nil
	case groupExchangeRemoveCmdName:
		return removeGroupExchange, nil
	case groupExchangeListCmdName:
		return listGroupExchanges, nil
	default:
		return nil, fmt.Errorf("unhandled sub command %s", subCmd)
	}
}

// parseRequestedGroups parses a list like "2, 3 4" into sorted distinct groups.
func parseRequestedGroups(raw string, offered int) ([]int, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, dataaccess.ErrNoRequestedGroups
	}

	seen := make(map[int]struct{}, len(fields))
	groups := make([]int, 0, len(fields))
	for _, f := range fields {
		g, err := strconv.Atoi(f)
		if err != nil || g <= 0 {
			return nil, fmt.Errorf("%w: %q", errInvalidGroup, f)
		} else if g == offered {
			return nil, errRequestedOffered
		}

		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		groups = append(groups, g)
	}

	sort.Ints(groups)
	return groups, nil
}

func offerGroupExchange(a IApp, i *discordgo.InteractionCreate) error {
	_, opts := subCommandOptions(i)
	offeredOpt, ok := opts[groupExchangeOfferedOptName]
	if !ok {
		return fmt.Errorf("missing %s option", groupExchangeOfferedOptName)
	}
	requestedOpt, ok := opts[groupExchangeRequestedOptName]
	if !ok {
		return fmt.Errorf("missing %s option", groupExchangeRequestedOptName)
	}

	offered := int(offeredOpt.IntValue())
	if offered <= 0 {
		return respondEphemeral(a, i, errInvalidGroup.Error())
	}

	requested, err := parseRequestedGroups(requestedOpt.StringValue(), offered)
	if err != nil {
		return respondEphemeral(a, i, err.Error())
	}

	user := interactionUser(i)
	userID, err := parseSnowflake(user.ID)
	if err != nil {
		return err
	}

	ctx := context.Background()
	course := i.ChannelID
	l := a.Log().With(slog.String(logging.KeyUser, user.ID), slog.String(logging.KeyChannel, course))

	existing, err := a.Store().GetGroupExchangeForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("error getting group exchanges: %w", err)
	} else if len(exchangesForCourse(existing, course)) > 0 {
		return respondEphemeral(a, i, messages.ErrGroupExchangeExists)
	}

	candidates, err := a.Store().GetCandidatesForGroupExchange(ctx, userID, course, offered, requested)
	if err != nil {
		return fmt.Errorf("error finding candidates: %w", err)
	}

	if err := a.Store().AddGroupOfferAndRequests(ctx, userID, course, offered, requested); err != nil {
		if dataaccess.IsConstraintViolation(err) {
			return respondEphemeral(a, i, messages.ErrGroupExchangeExists)
		}
		return fmt.Errorf("error adding group exchange: %w", err)
	}

	// The announcement id is only known once it is sent, the rows are patched afterwards.
	msg, err := a.Session().ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{groupExchangeEmbed(user, offered, requested)},
	})
	if err != nil {
		rollbackGroupExchange(a, l, userID, course, "")
		return fmt.Errorf("error sending group exchange announcement: %w", err)
	}

	msgID, err := parseSnowflake(msg.ID)
	if err == nil {
		err = a.Store().UpdateGroupExchangeMessageID(ctx, userID, course, msgID)
	}
	if err != nil {
		rollbackGroupExchange(a, l, userID, course, msg.ID)
		return fmt.Errorf("error saving group exchange announcement: %w", err)
	}

	GroupExchangeOffers.WithLabelValues(strconv.FormatBool(candidates != nil)).Inc()
	l.Info("Group exchange offered",
		slog.Int("offered", offered),
		slog.Any("requested", requested),
		slog.Int("candidates", len(candidates)))

	return respondEphemeral(a, i, formatCandidates(i.GuildID, course, candidates))
}

// rollbackGroupExchange removes an offer whose announcement could not be completed.
func rollbackGroupExchange(a IApp, l *slog.Logger, userID int64, course, messageID string) {
	if err := a.Store().RemoveGroupExchangeOffer(context.Background(), userID, course); err != nil {
		l.Error("Error rolling back group exchange", slog.String(logging.KeyError, err.Error()))
	}

	if messageID == "" {
		return
	}

	if err := a.Session().ChannelMessageDelete(course, messageID); err != nil {
		l.Warn("Error deleting group exchange announcement", slog.String(logging.KeyError, err.Error()))
	}
}

func groupExchangeEmbed(user *discordgo.User, offered int, requested []int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Group exchange",
		Description: fmt.Sprintf("<@%s> offers group **%d** and is looking for group %s.", user.ID, offered, joinGroups(requested, " or ")),
		Color:       0x0099ff,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Offered",
				Value:  strconv.Itoa(offered),
				Inline: true,
			},
			{
				Name:   "Requested",
				Value:  joinGroups(requested, ", "),
				Inline: true,
			},
		},
	}
}

func joinGroups(groups []int, sep string) string {
	s := make([]string, len(groups))
	for n, g := range groups {
		s[n] = strconv.Itoa(g)
	}
	return strings.Join(s, sep)
}

// formatCandidates is the reply to a new offer, listing the users it could be traded with.
func formatCandidates(guildID, channelID string, candidates []*entities.Candidate) string {
	if candidates == nil {
		return "Your offer has been posted. Nobody matches it yet, you will be found by the next matching offer."
	}

	sb := new(strings.Builder)
	sb.WriteString("Your offer has been posted. These members could trade with you:")
	for _, c := range candidates {
		user := formatSnowflake(c.UserID)
		if c.HasMessage() {
			sb.WriteString(fmt.Sprintf("\n- <@%s> %s", user, messageLink(guildID, channelID, formatSnowflake(c.MessageID.Int64))))
		} else {
			sb.WriteString(fmt.Sprintf("\n- <@%s>", user))
		}
	}
	return sb.String()
}

func removeGroupExchange(a IApp, i *discordgo.InteractionCreate) error {
	user := interactionUser(i)
	userID, err := parseSnowflake(user.ID)
	if err != nil {
		return err
	}

	ctx := context.Background()
	course := i.ChannelID

	existing, err := a.Store().GetGroupExchangeForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("error getting group exchanges: %w", err)
	} else if len(exchangesForCourse(existing, course)) == 0 {
		return respondEphemeral(a, i, messages.ErrGroupExchangeMissing)
	}

	msgID, err := a.Store().GetGroupExchangeMessage(ctx, userID, course)
	if err != nil {
		return fmt.Errorf("error getting group exchange message: %w", err)
	}

	if err := a.Store().RemoveGroupExchangeOffer(ctx, userID, course); err != nil {
		return fmt.Errorf("error removing group exchange: %w", err)
	}

	if msgID != nil {
		if err := a.Session().ChannelMessageDelete(course, formatSnowflake(*msgID)); err != nil {
			a.Log().Warn("Error deleting group exchange announcement",
				slog.String(logging.KeyChannel, course),
				slog.String(logging.KeyError, err.Error()))
		}
	}

	return respondEphemeral(a, i, "Your offer has been removed.")
}

func listGroupExchanges(a IApp, i *discordgo.InteractionCreate) error {
	user := interactionUser(i)
	userID, err := parseSnowflake(user.ID)
	if err != nil {
		return err
	}

	exchanges, err := a.Store().GetGroupExchangeForUser(context.Background(), userID)
	if err != nil {
		return fmt.Errorf("error getting group exchanges: %w", err)
	}

	return respondEphemeral(a, i, formatGroupExchanges(exchanges))
}

func exchangesForCourse(exchanges []*entities.GroupExchange, course string) []*entities.GroupExchange {
	var found []*entities.GroupExchange
	for _, e := range exchanges {
		if e.Course == course {
			found = append(found, e)
		}
	}
	return found
}

// formatGroupExchanges renders one line per course. The rows arrive ordered by course.
func formatGroupExchanges(exchanges []*entities.GroupExchange) string {
	if exchanges == nil {
		return "You have no open offers."
	}

	sb := new(strings.Builder)
	sb.WriteString("Your offers:")

	var requested []int
	for n, e := range exchanges {
		requested = append(requested, e.RequestedGroup)

		if n+1 < len(exchanges) && exchanges[n+1].Course == e.Course {
			continue
		}

		sb.WriteString(fmt.Sprintf("\n- <#%s>: group %d for %s", e.Course, e.OfferedGroup, joinGroups(requested, ", ")))
		requested = nil
	}
	return sb.String()
}
