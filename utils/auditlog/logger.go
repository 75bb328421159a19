package auditlog

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"rolekeeper/model"
	"rolekeeper/utils/guildstore"
)

const (
	colorGreen  = 0x57F287
	colorOrange = 0xE67E22
	colorRed    = 0xED4245
)

// Sender delivers an embed to a channel. *discordgo.Session satisfies it.
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Logger delivers audit embeds to each guild's configured log channel.
// Delivery is strictly best-effort: an unset channel is a no-op, and send
// failures are logged for the operator and discarded. Nothing here may ever
// fail or abort the action being logged.
type Logger struct {
	sender Sender
	store  *guildstore.Store
}

func New(sender Sender, store *guildstore.Store) *Logger {
	return &Logger{sender: sender, store: store}
}

// Emit sends one embed to the guild's log channel, if one is configured.
func (l *Logger) Emit(guildID string, embed *discordgo.MessageEmbed) {
	channelID, err := l.store.Setting(guildID, model.SettingLogChannel)
	if err != nil || channelID == nil {
		return
	}
	if embed.Timestamp == "" {
		embed.Timestamp = time.Now().Format(time.RFC3339)
	}
	if _, err := l.sender.ChannelMessageSendEmbed(strconv.FormatInt(*channelID, 10), embed); err != nil {
		log.Printf("Failed to send audit log to channel %d in guild %s: %v", *channelID, guildID, err)
	}
}

// RoleGranted logs a self-assignment that added a role.
func (l *Logger) RoleGranted(guildID, memberID, roleID string) {
	l.Emit(guildID, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("<@%s> received the role <@&%s>", memberID, roleID),
		Color:       colorGreen,
	})
}

// RoleRemoved logs a self-assignment that removed a role.
func (l *Logger) RoleRemoved(guildID, memberID, roleID string) {
	l.Emit(guildID, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("<@%s> removed the role <@&%s>", memberID, roleID),
		Color:       colorOrange,
	})
}

// WarningIssued logs a new warning.
func (l *Logger) WarningIssued(guildID string, rec *model.WarningRecord) {
	l.Emit(guildID, &discordgo.MessageEmbed{
		Title: "Moderation Log: User Warned",
		Color: colorOrange,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Warned User", Value: fmt.Sprintf("<@%d> (`%d`)", rec.UserID, rec.UserID)},
			{Name: "Moderator", Value: fmt.Sprintf("<@%d> (`%d`)", rec.ModeratorID, rec.ModeratorID)},
			{Name: "Reason", Value: rec.Reason},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Warning ID: " + rec.WarningID},
	})
}

// WarningRemoved logs the deletion of a warning, with the prior record's
// details.
func (l *Logger) WarningRemoved(guildID, moderatorID string, rec *model.WarningRecord) {
	l.Emit(guildID, &discordgo.MessageEmbed{
		Title: "Moderation Log: Warning Removed",
		Color: colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Removed Warning ID", Value: "`" + rec.WarningID + "`"},
			{Name: "Original User", Value: fmt.Sprintf("<@%d>", rec.UserID)},
			{Name: "Original Reason", Value: rec.Reason},
			{Name: "Action By", Value: fmt.Sprintf("<@%s>", moderatorID)},
		},
	})
}

// ConfessionDeleted logs the deletion of a confession. The submitter's
// identity stays out of the log; only the identifier is referenced.
func (l *Logger) ConfessionDeleted(guildID, moderatorID, confessionID string) {
	l.Emit(guildID, &discordgo.MessageEmbed{
		Title: "Moderation Log: Confession Deleted",
		Color: colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Confession ID", Value: "`" + confessionID + "`"},
			{Name: "Action By", Value: fmt.Sprintf("<@%s>", moderatorID)},
		},
	})
}
