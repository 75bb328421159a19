package main

import (
	"log"
	"os"

	"rolekeeper/bot"
	"rolekeeper/config"
	"rolekeeper/handlers"
	audit_db "rolekeeper/utils/database/audit"
	"rolekeeper/utils/guildstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := os.MkdirAll(cfg.DataDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	store, err := guildstore.Load(cfg.GuildDataFile)
	if err != nil {
		log.Fatalf("Error loading guild data: %v", err)
	}
	db, err := audit_db.InitAuditDB(cfg.AuditDBFile)
	if err != nil {
		log.Fatalf("Error initializing audit database: %v", err)
	}

	b, err := bot.New(cfg, store, db)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	handlers.Register(b)

	defer b.Close()
	b.Run()
}
