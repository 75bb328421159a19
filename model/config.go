package model

// Config holds the process-wide configuration resolved at startup.
type Config struct {
	BotToken      string
	AppID         string
	DataDir       string
	GuildDataFile string
	AuditDBFile   string
}
