package config

import (
	"log"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"rolekeeper/model"
)

// Load resolves configuration from the environment. A .env file is honored
// when present; explicit environment variables win over defaults.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	v := viper.New()
	v.SetDefault("data_dir", "./data")
	v.SetDefault("guild_data_file", "guild_data.json")
	v.SetDefault("audit_db_file", "audit.db")
	v.AutomaticEnv()

	token := v.GetString("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}
	appID := v.GetString("APP_ID")
	if appID == "" {
		log.Fatal("Error: APP_ID environment variable not set")
	}

	dataDir := v.GetString("DATA_DIR")
	cfg := &model.Config{
		BotToken:      token,
		AppID:         appID,
		DataDir:       dataDir,
		GuildDataFile: filepath.Join(dataDir, v.GetString("GUILD_DATA_FILE")),
		AuditDBFile:   filepath.Join(dataDir, v.GetString("AUDIT_DB_FILE")),
	}
	return cfg, nil
}
