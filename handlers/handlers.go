package handlers

import (
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"rolekeeper/bot"
)

const (
	categorySelectID  = "role_category_select"
	roleSelectPrefix  = "role_select:"
	confessionModalID = "confession_modal"
)

// Register wires the command dispatch map and gateway handlers onto the bot.
func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"set_log_channel": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleSetLogChannel(s, i, b)
		},
		"set_confession_channel": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleSetConfessionChannel(s, i, b)
		},
		"add_category": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleAddCategory(s, i, b)
		},
		"remove_category": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleRemoveCategory(s, i, b)
		},
		"add_role": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleAddRole(s, i, b)
		},
		"remove_role": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleRemoveRole(s, i, b)
		},
		"setup_roles": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleSetupRoles(s, i, b)
		},
		"roles": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleRoles(s, i, b)
		},
		"warn": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleWarn(s, i, b)
		},
		"warnings": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleWarnings(s, i, b)
		},
		"remove_warning": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleRemoveWarning(s, i, b)
		},
		"confess": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleConfess(s, i, b)
		},
		"delete_confession": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleDeleteConfession(s, i, b)
		},
		"botinfo": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleBotInfo(s, i, b)
		},
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
				h(s, i)
			}
		case discordgo.InteractionMessageComponent:
			customID := i.MessageComponentData().CustomID
			switch {
			case customID == categorySelectID:
				HandleCategorySelect(s, i, b)
			case strings.HasPrefix(customID, roleSelectPrefix):
				HandleRoleSelect(s, i, b)
			}
		case discordgo.InteractionApplicationCommandAutocomplete:
			handleAutocomplete(s, i, b)
		case discordgo.InteractionModalSubmit:
			if i.ModalSubmitData().CustomID == confessionModalID {
				HandleConfessionSubmit(s, i, b)
			}
		}
	})
}
