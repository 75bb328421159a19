package handlers

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"rolekeeper/bot"
)

// handleAutocomplete suggests category names for the admin commands. The
// match is a case-insensitive substring match against what the user has
// typed so far.
func handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "remove_category", "add_role", "remove_role":
	default:
		return
	}

	var typed string
	for _, opt := range data.Options {
		if opt.Focused {
			typed = opt.StringValue()
			break
		}
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, maxMenuOptions)
	for name := range b.Store.Categories(i.GuildID, typed) {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
		if len(choices) == maxMenuOptions {
			break
		}
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		log.Printf("Error responding to autocomplete: %v", err)
	}
}
