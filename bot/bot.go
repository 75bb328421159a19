package bot

import (
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"

	"rolekeeper/model"
	"rolekeeper/utils/auditlog"
	"rolekeeper/utils/guildstore"
)

type Bot struct {
	Session            *discordgo.Session
	Config             *model.Config
	Store              *guildstore.Store
	AuditDB            *sqlx.DB
	AuditLog           *auditlog.Logger
	RegisteredCommands []*discordgo.ApplicationCommand
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
}

func New(cfg *model.Config, store *guildstore.Store, auditDB *sqlx.DB) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	b := &Bot{
		Session: dg,
		Config:  cfg,
		Store:   store,
		AuditDB: auditDB,
	}
	b.AuditLog = auditlog.New(dg, store)
	return b, nil
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	if err := b.Store.Flush(); err != nil {
		log.Printf("Failed to flush guild data: %v", err)
	}
	if err := b.AuditDB.Close(); err != nil {
		log.Printf("Failed to close audit database: %v", err)
	}
	b.Session.Close()
}
