package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"rolekeeper/bot"
	"rolekeeper/model"
	"rolekeeper/utils"
	"rolekeeper/utils/guildstore"
)

func setChannelSetting(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, key, label string) {
	opts := optionMap(i.ApplicationCommandData())
	channel := opts["channel"].ChannelValue(s)
	channelID, err := parseSnowflake(channel.ID)
	if err != nil {
		utils.SendErrorResponse(s, i, "Invalid channel.")
		return
	}
	if err := b.Store.SetSetting(i.GuildID, key, &channelID); err != nil {
		log.Printf("Failed to set %s for guild %s: %v", key, i.GuildID, err)
		utils.SendErrorResponse(s, i, fmt.Sprintf("Failed to save the %s setting.", label))
		return
	}
	utils.SendEphemeral(s, i, fmt.Sprintf("%s has been set to <#%s>.", label, channel.ID))
}

func HandleSetLogChannel(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	setChannelSetting(s, i, b, model.SettingLogChannel, "Log channel")
}

func HandleAddCategory(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	name := optionMap(i.ApplicationCommandData())["category_name"].StringValue()
	err := b.Store.CreateCategory(i.GuildID, name)
	switch {
	case errors.Is(err, guildstore.ErrCategoryExists):
		utils.SendEphemeral(s, i, fmt.Sprintf("A category named '%s' already exists.", name))
	case err != nil:
		log.Printf("Failed to create category %q in guild %s: %v", name, i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to create the category.")
	default:
		utils.SendEphemeral(s, i, fmt.Sprintf("Category '%s' has been created.", name))
	}
}

func HandleRemoveCategory(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	name := optionMap(i.ApplicationCommandData())["category_name"].StringValue()
	err := b.Store.DeleteCategory(i.GuildID, name)
	switch {
	case errors.Is(err, guildstore.ErrCategoryNotFound):
		utils.SendEphemeral(s, i, fmt.Sprintf("No category named '%s' found.", name))
	case err != nil:
		log.Printf("Failed to delete category %q in guild %s: %v", name, i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to delete the category.")
	default:
		utils.SendEphemeral(s, i, fmt.Sprintf("Category '%s' and all its roles have been removed.", name))
	}
}

func HandleAddRole(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i.ApplicationCommandData())
	category := opts["category"].StringValue()
	role := opts["role"].RoleValue(s, i.GuildID)

	err := b.Store.AddRoleToCategory(i.GuildID, category, role.ID)
	switch {
	case errors.Is(err, guildstore.ErrCategoryNotFound):
		utils.SendEphemeral(s, i, fmt.Sprintf("The category '%s' does not exist. Please create it first.", category))
	case errors.Is(err, guildstore.ErrRoleAlreadyInCategory):
		utils.SendEphemeral(s, i, fmt.Sprintf("The role **%s** is already in the '%s' category.", role.Name, category))
	case err != nil:
		log.Printf("Failed to add role %s to category %q in guild %s: %v", role.ID, category, i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to add the role.")
	default:
		utils.SendEphemeral(s, i, fmt.Sprintf("Successfully added **%s** to the '%s' category.", role.Name, category))
	}
}

func HandleRemoveRole(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i.ApplicationCommandData())
	category := opts["category"].StringValue()
	role := opts["role"].RoleValue(s, i.GuildID)

	err := b.Store.RemoveRoleFromCategory(i.GuildID, category, role.ID)
	switch {
	case errors.Is(err, guildstore.ErrCategoryNotFound):
		utils.SendEphemeral(s, i, fmt.Sprintf("The category '%s' does not exist.", category))
	case errors.Is(err, guildstore.ErrRoleNotInCategory):
		utils.SendEphemeral(s, i, fmt.Sprintf("The role **%s** is not in the '%s' category.", role.Name, category))
	case err != nil:
		log.Printf("Failed to remove role %s from category %q in guild %s: %v", role.ID, category, i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to remove the role.")
	default:
		utils.SendEphemeral(s, i, fmt.Sprintf("Successfully removed **%s** from the '%s' category.", role.Name, category))
	}
}

func HandleSetupRoles(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	channel := optionMap(i.ApplicationCommandData())["channel"].ChannelValue(s)

	embed := &discordgo.MessageEmbed{
		Title:       "✨ Role Selection ✨",
		Description: "Welcome! You can get your roles here by using the `/roles` command.",
		Color:       0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "How to use it:",
				Value: "1. Type `/roles` in any channel.\n" +
					"2. A private menu will appear. First, select a category.\n" +
					"3. A second menu will appear with all the roles for that category.\n" +
					"4. **You can select multiple roles at once!** The bot will add any roles you select that you don't have, and remove any you select that you already have.",
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Your roles are managed here."},
	}

	if _, err := s.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		log.Printf("Failed to send roles setup message to channel %s: %v", channel.ID, err)
		utils.SendErrorResponse(s, i, "I don't have permission to send messages in that channel.")
		return
	}
	utils.SendEphemeral(s, i, fmt.Sprintf("Successfully sent the roles setup message to <#%s>.", channel.ID))
}
