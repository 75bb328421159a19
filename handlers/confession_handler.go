package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"rolekeeper/bot"
	"rolekeeper/model"
	"rolekeeper/utils"
	audit_db "rolekeeper/utils/database/audit"
)

const confessionTextID = "confession_text"

func HandleSetConfessionChannel(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	setChannelSetting(s, i, b, model.SettingConfessionChannel, "Confession channel")
}

// HandleConfess opens the anonymous submission form.
func HandleConfess(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: confessionModalID,
			Title:    "Submit an Anonymous Confession",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    confessionTextID,
						Label:       "Your Confession",
						Style:       discordgo.TextInputParagraph,
						Placeholder: "Type your confession here... No one will know it was you.",
						Required:    true,
						MaxLength:   1000,
					},
				}},
			},
		},
	})
	if err != nil {
		log.Printf("Failed to open confession modal: %v", err)
	}
}

func HandleConfessionSubmit(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	content := modalTextValue(i.ModalSubmitData(), confessionTextID)
	if content == "" {
		utils.SendErrorResponse(s, i, "Your confession was empty.")
		return
	}

	channelID, err := b.Store.Setting(i.GuildID, model.SettingConfessionChannel)
	if err != nil || channelID == nil {
		utils.SendEphemeral(s, i, "The confession channel has not been set up.")
		return
	}

	guildID, err := parseSnowflake(i.GuildID)
	if err != nil {
		utils.SendErrorResponse(s, i, "Invalid guild identifier.")
		return
	}
	userID, err := parseSnowflake(i.Member.User.ID)
	if err != nil {
		utils.SendErrorResponse(s, i, "Invalid user identifier.")
		return
	}

	confessionID, err := audit_db.AddConfession(b.AuditDB, guildID, userID, content)
	if err != nil {
		log.Printf("Failed to save confession in guild %s: %v", i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to save your confession.")
		return
	}

	embed := BuildConfessionEmbed(confessionID, content)
	if _, err := s.ChannelMessageSendEmbed(strconv.FormatInt(*channelID, 10), embed); err != nil {
		log.Printf("Failed to post confession to channel %d in guild %s: %v", *channelID, i.GuildID, err)
		utils.SendErrorResponse(s, i, "I can't post in the confessions channel.")
		return
	}
	utils.SendEphemeral(s, i, "Your confession has been posted anonymously! ✅")
}

// BuildConfessionEmbed renders the public confession post. It deliberately
// takes only the identifier and content: nothing derivable to the submitter
// may appear in the public channel.
func BuildConfessionEmbed(confessionID, content string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "New Anonymous Confession",
		Description: content,
		Color:       0x2F3136,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Confession ID: " + shortID(confessionID)},
	}
}

func HandleDeleteConfession(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	idPrefix := optionMap(i.ApplicationCommandData())["confession_id"].StringValue()
	guildID, err := parseSnowflake(i.GuildID)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, "Invalid guild identifier.")
		return
	}

	rec, err := audit_db.DeleteConfessionByPrefix(b.AuditDB, guildID, idPrefix)
	if errors.Is(err, audit_db.ErrNotFound) {
		utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("Could not find a confession with an ID starting with `%s`.", idPrefix))
		return
	}
	if err != nil {
		log.Printf("Failed to delete confession in guild %s: %v", i.GuildID, err)
		utils.SendFollowUpError(s, i.Interaction, "Failed to delete the confession.")
		return
	}

	b.AuditLog.ConfessionDeleted(i.GuildID, i.Member.User.ID, shortID(rec.ConfessionID))
	utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("Confession starting with ID `%s` has been successfully deleted.", idPrefix))
}

// modalTextValue digs the named text input's value out of a modal submission.
func modalTextValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			if input, ok := comp.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
