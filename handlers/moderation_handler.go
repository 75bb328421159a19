package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"rolekeeper/bot"
	"rolekeeper/model"
	"rolekeeper/utils"
	audit_db "rolekeeper/utils/database/audit"
)

func HandleWarn(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	opts := optionMap(i.ApplicationCommandData())
	user := opts["user"].UserValue(s)
	reason := opts["reason"].StringValue()

	guildID, err := parseSnowflake(i.GuildID)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, "Invalid guild identifier.")
		return
	}
	userID, err := parseSnowflake(user.ID)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, "Invalid user identifier.")
		return
	}
	moderatorID, err := parseSnowflake(i.Member.User.ID)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, "Invalid moderator identifier.")
		return
	}

	warningID, err := audit_db.AddWarning(b.AuditDB, guildID, userID, moderatorID, reason)
	if err != nil {
		log.Printf("Failed to save warning in guild %s: %v", i.GuildID, err)
		utils.SendFollowUpError(s, i.Interaction, "Failed to save the warning record.")
		return
	}

	b.AuditLog.WarningIssued(i.GuildID, &model.WarningRecord{
		WarningID:   warningID,
		GuildID:     guildID,
		UserID:      userID,
		ModeratorID: moderatorID,
		Reason:      reason,
	})

	embed := &discordgo.MessageEmbed{
		Title:       "✅ User Warned",
		Description: fmt.Sprintf("**Warning ID:** `%s`", shortID(warningID)),
		Color:       0xE67E22,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: user.Mention(), Inline: true},
			{Name: "Moderator", Value: i.Member.User.Mention(), Inline: true},
			{Name: "Reason", Value: reason},
		},
	}
	if !sendWarningDM(s, i.GuildID, user, reason) {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Note: Could not send a DM to the user."}
	}

	utils.SendFollowUpEmbed(s, i.Interaction, embed)
}

// sendWarningDM notifies the warned user privately. Best-effort: a closed DM
// channel is not an error for the warn itself.
func sendWarningDM(s *discordgo.Session, guildID string, user *discordgo.User, reason string) bool {
	guildName := "this server"
	if guild, err := s.State.Guild(guildID); err == nil && guild.Name != "" {
		guildName = guild.Name
	}
	dm, err := s.UserChannelCreate(user.ID)
	if err != nil {
		return false
	}
	_, err = s.ChannelMessageSendEmbed(dm.ID, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("You have received a warning in %s", guildName),
		Description: fmt.Sprintf("**Reason:** %s", reason),
		Color:       0xE67E22,
	})
	return err == nil
}

func HandleWarnings(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	user := optionMap(i.ApplicationCommandData())["user"].UserValue(s)
	guildID, err := parseSnowflake(i.GuildID)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, "Invalid guild identifier.")
		return
	}
	userID, err := parseSnowflake(user.ID)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, "Invalid user identifier.")
		return
	}

	records, err := audit_db.WarningsByUser(b.AuditDB, guildID, userID)
	if err != nil {
		log.Printf("Failed to list warnings in guild %s: %v", i.GuildID, err)
		utils.SendFollowUpError(s, i.Interaction, "Failed to load the warning history.")
		return
	}
	if len(records) == 0 {
		utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("%s has a clean record.", user.Username))
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Warning History for %s", user.Username),
		Color: 0xFEE75C,
	}
	for _, rec := range records {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("ID: `%s` on %s", shortID(rec.WarningID), rec.Timestamp.Format("2006-01-02")),
			Value: fmt.Sprintf("**Reason:** %s\n**Moderator:** <@%d>", rec.Reason, rec.ModeratorID),
		})
		if len(embed.Fields) == 25 {
			break
		}
	}
	utils.SendFollowUpEmbed(s, i.Interaction, embed)
}

func HandleRemoveWarning(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	idPrefix := optionMap(i.ApplicationCommandData())["warning_id"].StringValue()
	guildID, err := parseSnowflake(i.GuildID)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, "Invalid guild identifier.")
		return
	}

	rec, err := audit_db.DeleteWarningByPrefix(b.AuditDB, guildID, idPrefix)
	if errors.Is(err, audit_db.ErrNotFound) {
		utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("Could not find a warning with an ID starting with `%s` on this server.", idPrefix))
		return
	}
	if err != nil {
		log.Printf("Failed to remove warning in guild %s: %v", i.GuildID, err)
		utils.SendFollowUpError(s, i.Interaction, "Failed to remove the warning.")
		return
	}

	b.AuditLog.WarningRemoved(i.GuildID, i.Member.User.ID, rec)
	utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("Warning ID `%s` has been successfully removed.", shortID(rec.WarningID)))
}
