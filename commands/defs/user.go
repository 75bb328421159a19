package defs

import "github.com/bwmarrin/discordgo"

var Roles = &discordgo.ApplicationCommand{
	Name:        "roles",
	Description: "Pick up or drop self-assignable roles.",
}

var BotInfo = &discordgo.ApplicationCommand{
	Name:        "botinfo",
	Description: "Shows runtime and host statistics for the bot.",
}
