package defs

import "github.com/bwmarrin/discordgo"

var (
	manageGuildPermission   int64 = discordgo.PermissionManageServer
	manageRolesPermission   int64 = discordgo.PermissionManageRoles
	moderatePermission      int64 = discordgo.PermissionModerateMembers
	manageMessagePermission int64 = discordgo.PermissionManageMessages
)

var SetLogChannel = &discordgo.ApplicationCommand{
	Name:                     "set_log_channel",
	Description:              "Sets the channel for role activity and moderation logs.",
	DefaultMemberPermissions: &manageGuildPermission,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "channel",
			Description:  "The channel to send logs to",
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
	},
}

var AddCategory = &discordgo.ApplicationCommand{
	Name:                     "add_category",
	Description:              "Creates a new category for assignable roles.",
	DefaultMemberPermissions: &manageRolesPermission,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "category_name",
			Description: "The name for the new category (e.g., Game Roles)",
			Required:    true,
		},
	},
}

var RemoveCategory = &discordgo.ApplicationCommand{
	Name:                     "remove_category",
	Description:              "Deletes a role category and all roles within it.",
	DefaultMemberPermissions: &manageRolesPermission,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "category_name",
			Description:  "The category to delete",
			Required:     true,
			Autocomplete: true,
		},
	},
}

var AddRole = &discordgo.ApplicationCommand{
	Name:                     "add_role",
	Description:              "Adds a role to a specific category.",
	DefaultMemberPermissions: &manageRolesPermission,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "category",
			Description:  "The category to add the role to",
			Required:     true,
			Autocomplete: true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "role",
			Description: "The role to add",
			Required:    true,
		},
	},
}

var RemoveRole = &discordgo.ApplicationCommand{
	Name:                     "remove_role",
	Description:              "Removes a role from a specific category.",
	DefaultMemberPermissions: &manageRolesPermission,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "category",
			Description:  "The category to remove the role from",
			Required:     true,
			Autocomplete: true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "role",
			Description: "The role to remove",
			Required:    true,
		},
	},
}

var SetupRoles = &discordgo.ApplicationCommand{
	Name:                     "setup_roles",
	Description:              "Posts an instructional message for the /roles command.",
	DefaultMemberPermissions: &manageGuildPermission,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "channel",
			Description:  "The channel where the instructional message will be sent",
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
	},
}
