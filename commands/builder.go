package commands

import (
	"github.com/bwmarrin/discordgo"

	"rolekeeper/commands/defs"
)

// Generate returns every application command the bot registers.
func Generate() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		defs.SetLogChannel,
		defs.SetConfessionChannel,
		defs.AddCategory,
		defs.RemoveCategory,
		defs.AddRole,
		defs.RemoveRole,
		defs.SetupRoles,
		defs.Roles,
		defs.Warn,
		defs.Warnings,
		defs.RemoveWarning,
		defs.Confess,
		defs.DeleteConfession,
		defs.BotInfo,
	}
}
