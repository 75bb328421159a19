package model

import "time"

// WarningRecord is one moderation warning as stored in the warnings table.
// Records are immutable once created.
type WarningRecord struct {
	WarningID   string    `db:"warning_id"`
	GuildID     int64     `db:"guild_id"`
	UserID      int64     `db:"user_id"`
	ModeratorID int64     `db:"moderator_id"`
	Reason      string    `db:"reason"`
	Timestamp   time.Time `db:"timestamp"`
}

// ConfessionRecord is one anonymous submission. UserID is retained for
// moderation only and must never reach public rendering.
type ConfessionRecord struct {
	ConfessionID string    `db:"confession_id"`
	GuildID      int64     `db:"guild_id"`
	UserID       int64     `db:"user_id"`
	Content      string    `db:"content"`
	Timestamp    time.Time `db:"timestamp"`
}
