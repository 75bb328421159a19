package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rolekeeper/commands"
)

// Run opens the gateway, registers the slash commands globally and blocks
// until the process receives an interrupt.
func (b *Bot) Run() {
	err := b.Session.Open()
	if err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	cmds := commands.Generate()
	log.Printf("Registering %d application commands...", len(cmds))
	registered, err := b.Session.ApplicationCommandBulkOverwrite(b.Config.AppID, "", cmds)
	if err != nil {
		log.Printf("Cannot register commands: %v", err)
	} else {
		b.RegisteredCommands = registered
	}

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
