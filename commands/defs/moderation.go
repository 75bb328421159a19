package defs

import "github.com/bwmarrin/discordgo"

var Warn = &discordgo.ApplicationCommand{
	Name:                     "warn",
	Description:              "Issues a formal warning to a user.",
	DefaultMemberPermissions: &moderatePermission,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to warn",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "The reason for the warning",
			Required:    true,
		},
	},
}

var Warnings = &discordgo.ApplicationCommand{
	Name:                     "warnings",
	Description:              "Shows all warnings for a specific user.",
	DefaultMemberPermissions: &moderatePermission,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user whose warnings to view",
			Required:    true,
		},
	},
}

var RemoveWarning = &discordgo.ApplicationCommand{
	Name:                     "remove_warning",
	Description:              "Removes a warning by its ID.",
	DefaultMemberPermissions: &moderatePermission,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "warning_id",
			Description: "The ID of the warning to remove (first 8 characters are enough)",
			Required:    true,
		},
	},
}
