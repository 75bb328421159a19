package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"rolekeeper/bot"
	"rolekeeper/utils"
	"rolekeeper/utils/guildstore"
	"rolekeeper/utils/roletoggle"
)

// Select menus cap at 25 options.
const maxMenuOptions = 25

// HandleRoles opens the ephemeral category menu for self-assignment.
func HandleRoles(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !b.Store.HasCategories(i.GuildID) {
		utils.SendEphemeral(s, i, "No role categories have been configured for this server.")
		return
	}

	options := make([]discordgo.SelectMenuOption, 0, maxMenuOptions)
	for name := range b.Store.Categories(i.GuildID, "") {
		options = append(options, discordgo.SelectMenuOption{Label: name, Value: name})
		if len(options) == maxMenuOptions {
			break
		}
	}

	menu := discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    categorySelectID,
		Placeholder: "Choose a role category...",
		Options:     options,
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Please select a category:",
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}},
			},
		},
	})
	if err != nil {
		utils.SendErrorResponse(s, i, "Failed to open the role menu.")
	}
}

// HandleCategorySelect swaps the category menu for the multi-select role menu
// of the chosen category.
func HandleCategorySelect(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	category := i.MessageComponentData().Values[0]
	roleIDs, err := b.Store.CategoryRoles(i.GuildID, category)
	if errors.Is(err, guildstore.ErrCategoryNotFound) {
		updateMessage(s, i, "That category no longer exists.", []discordgo.MessageComponent{})
		return
	}
	if err != nil {
		updateMessage(s, i, "Failed to load that category.", []discordgo.MessageComponent{})
		return
	}

	memberRoles := roletoggle.Snapshot(i.Member.Roles)
	liveNames := guildRoleNames(s, i.GuildID)

	options := make([]discordgo.SelectMenuOption, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		name, ok := liveNames[roleID]
		if !ok {
			// Stale entry; the toggle engine would reject it anyway.
			continue
		}
		action := "get"
		if memberRoles[roleID] {
			action = "remove"
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       name,
			Value:       roleID,
			Description: fmt.Sprintf("Select to %s this role.", action),
		})
		if len(options) == maxMenuOptions {
			break
		}
	}
	if len(options) == 0 {
		updateMessage(s, i, fmt.Sprintf("The '%s' category has no assignable roles right now.", category), []discordgo.MessageComponent{})
		return
	}

	minValues := 0
	menu := discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    roleSelectPrefix + category,
		Placeholder: fmt.Sprintf("Select roles from '%s'...", category),
		MinValues:   &minValues,
		MaxValues:   len(options),
		Options:     options,
	}
	updateMessage(s, i,
		fmt.Sprintf("Now, select roles from the **%s** category:", category),
		[]discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}},
		})
}

// HandleRoleSelect applies the selected batch through the toggle engine and
// reports the per-role outcome.
func HandleRoleSelect(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	selected := i.MessageComponentData().Values
	current := roletoggle.Snapshot(i.Member.Roles)
	memberID := i.Member.User.ID

	provider := &roletoggle.DiscordProvider{Session: s}
	res := roletoggle.Apply(provider, i.GuildID, memberID, current, selected)

	for _, roleID := range res.Added {
		b.AuditLog.RoleGranted(i.GuildID, memberID, roleID)
	}
	for _, roleID := range res.Removed {
		b.AuditLog.RoleRemoved(i.GuildID, memberID, roleID)
	}

	updateMessage(s, i, buildToggleSummary(res), []discordgo.MessageComponent{})
}

func buildToggleSummary(res roletoggle.Result) string {
	if len(res.Added)+len(res.Removed)+len(res.Failed) == 0 {
		return "No role changes made."
	}
	var sb strings.Builder
	if len(res.Added) > 0 {
		fmt.Fprintf(&sb, "✅ Added: %s\n", mentionRoles(res.Added))
	}
	if len(res.Removed) > 0 {
		fmt.Fprintf(&sb, "♻️ Removed: %s\n", mentionRoles(res.Removed))
	}
	for _, f := range res.Failed {
		switch f.Reason {
		case roletoggle.ReasonRoleNoLongerExists:
			fmt.Fprintf(&sb, "⚠️ One selected role no longer exists (`%s`).\n", f.RoleID)
		case roletoggle.ReasonInsufficientPermissions:
			fmt.Fprintf(&sb, "⚠️ I am not allowed to manage <@&%s>.\n", f.RoleID)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func mentionRoles(roleIDs []string) string {
	mentions := make([]string, len(roleIDs))
	for idx, id := range roleIDs {
		mentions[idx] = "<@&" + id + ">"
	}
	return strings.Join(mentions, ", ")
}
