package model

// Recognized per-guild setting keys.
const (
	SettingLogChannel        = "log_channel"
	SettingConfessionChannel = "confession_channel"
)

// GuildSettings holds the per-guild channel settings. Channel identifiers are
// persisted as integers to match the snapshot wire format; a nil pointer means
// the setting is unset.
type GuildSettings struct {
	LogChannel        *int64 `json:"log_channel"`
	ConfessionChannel *int64 `json:"confession_channel"`
}

// GuildConfig is the unit of configuration isolation: the guild's settings
// plus the role categories its members can self-assign from.
type GuildConfig struct {
	Settings GuildSettings `json:"settings"`
	Roles    *CategoryMap  `json:"roles"`
}
