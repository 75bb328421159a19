package defs

import "github.com/bwmarrin/discordgo"

var SetConfessionChannel = &discordgo.ApplicationCommand{
	Name:                     "set_confession_channel",
	Description:              "Sets the channel where anonymous confessions are posted.",
	DefaultMemberPermissions: &manageGuildPermission,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "channel",
			Description:  "The channel for confessions",
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
	},
}

var Confess = &discordgo.ApplicationCommand{
	Name:        "confess",
	Description: "Submits an anonymous confession.",
}

var DeleteConfession = &discordgo.ApplicationCommand{
	Name:                     "delete_confession",
	Description:              "Deletes a confession by its ID.",
	DefaultMemberPermissions: &manageMessagePermission,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "confession_id",
			Description: "The ID of the confession to delete (first 8 characters are enough)",
			Required:    true,
		},
	},
}
