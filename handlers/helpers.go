package handlers

import (
	"log"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// parseSnowflake converts a Discord snowflake string to the integer form the
// audit store uses.
func parseSnowflake(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// shortID truncates a full identifier to the 8-character display form.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// optionMap indexes a command's options by name.
func optionMap(data discordgo.ApplicationCommandInteractionData) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	for _, opt := range data.Options {
		m[opt.Name] = opt
	}
	return m
}

// guildRoleNames resolves the guild's live role set to an id→name map, state
// cache first with a REST fallback.
func guildRoleNames(s *discordgo.Session, guildID string) map[string]string {
	names := make(map[string]string)
	if guild, err := s.State.Guild(guildID); err == nil && guild != nil && len(guild.Roles) > 0 {
		for _, r := range guild.Roles {
			names[r.ID] = r.Name
		}
		return names
	}
	roles, err := s.GuildRoles(guildID)
	if err != nil {
		log.Printf("Failed to fetch roles for guild %s: %v", guildID, err)
		return names
	}
	for _, r := range roles {
		names[r.ID] = r.Name
	}
	return names
}

// updateMessage replaces the content and components of the message a
// component interaction came from.
func updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, content string, components []discordgo.MessageComponent) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
		},
	})
	if err != nil {
		log.Printf("Error updating component message: %v", err)
	}
}
