package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
)

const (
	// moduleRoleCmdName is the command for managing module roles.
	moduleRoleCmdName = "modulerole"

	moduleRoleAddCmdName    = "add"
	moduleRoleRemoveCmdName = "remove"
	moduleRoleListCmdName   = "list"

	// moduleRoleOptName is the role option of the add and remove sub commands.
	moduleRoleOptName = "role"
)

var (
	// moduleRoleCmd is the command for managing module roles.
	moduleRoleCmd = &discordgo.ApplicationCommand{
		Name:        moduleRoleCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Manages the roles members can assign themselves for their modules.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        moduleRoleAddCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Registers a module role.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        moduleRoleOptName,
						Type:        discordgo.ApplicationCommandOptionRole,
						Description: "The role of the module.",
						Required:    true,
					},
				},
			},
			{
				Name:        moduleRoleRemoveCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Unregisters a module role.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        moduleRoleOptName,
						Type:        discordgo.ApplicationCommandOptionRole,
						Description: "The role of the module.",
						Required:    true,
					},
				},
			},
			{
				Name:        moduleRoleListCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Lists all module roles.",
			},
		},
	}
)

func moduleRoleCmdController(a IApp, i *discordgo.InteractionCreate) (commandProcessor, error) {
	if ok, err := requireAdministrator(a, i); err != nil || !ok {
		return nil, err
	}

	subCmd, _ := subCommandOptions(i)
	switch subCmd {
	case moduleRoleAddCmdName:
		return addModuleRole, nil
	case moduleRoleRemoveCmdName:
		return removeModuleRole, nil
	case moduleRoleListCmdName:
		return listModuleRoles, nil
	default:
		return nil, fmt.Errorf("unhandled sub command %s", subCmd)
	}
}

func roleOption(i *discordgo.InteractionCreate) (string, int64, error) {
	_, opts := subCommandOptions(i)
	opt, ok := opts[moduleRoleOptName]
	if !ok {
		return "", 0, fmt.Errorf("missing %s option", moduleRoleOptName)
	}

	roleID := opt.RoleValue(nil, "").ID
	id, err := parseSnowflake(roleID)
	return roleID, id, err
}

func addModuleRole(a IApp, i *discordgo.InteractionCreate) error {
	roleID, id, err := roleOption(i)
	if err != nil {
		return err
	}

	ctx := context.Background()
	exists, err := a.Store().IsModuleRole(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking module role: %w", err)
	} else if exists {
		return respondEphemeral(a, i, fmt.Sprintf("<@&%s> is already a module role.", roleID))
	}

	if err := a.Store().AddModuleRole(ctx, id); err != nil {
		return fmt.Errorf("error adding module role: %w", err)
	}
	return respondEphemeral(a, i, fmt.Sprintf("<@&%s> is now a module role.", roleID))
}

func removeModuleRole(a IApp, i *discordgo.InteractionCreate) error {
	roleID, id, err := roleOption(i)
	if err != nil {
		return err
	}

	if err := a.Store().RemoveModuleRole(context.Background(), id); err != nil {
		return fmt.Errorf("error removing module role: %w", err)
	}
	return respondEphemeral(a, i, fmt.Sprintf("<@&%s> is no longer a module role.", roleID))
}

func listModuleRoles(a IApp, i *discordgo.InteractionCreate) error {
	roles, err := a.Store().GetModuleRoles(context.Background())
	if err != nil {
		return fmt.Errorf("error getting module roles: %w", err)
	}
	return respondEphemeral(a, i, formatModuleRoles(roles))
}

func formatModuleRoles(roles []int64) string {
	if roles == nil {
		return "There are no module roles."
	}

	sb := new(strings.Builder)
	sb.WriteString("Module roles:")
	for _, r := range roles {
		sb.WriteString(fmt.Sprintf("\n- <@&%s>", formatSnowflake(r)))
	}
	return sb.String()
}
