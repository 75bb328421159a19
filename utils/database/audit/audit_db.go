package audit_db

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"rolekeeper/model"
)

// ErrNotFound is returned when no record matches a lookup or prefix.
var ErrNotFound = errors.New("record not found")

// Identifiers are random UUIDs; a prefix outside this charset cannot match
// any record and must not reach a LIKE pattern.
var idPrefixPattern = regexp.MustCompile(`^[0-9a-fA-F-]+$`)

// InitAuditDB opens the audit database and ensures both tables exist.
func InitAuditDB(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to audit database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS warnings (
	          warning_id TEXT PRIMARY KEY,
	          guild_id INTEGER NOT NULL,
	          user_id INTEGER NOT NULL,
	          moderator_id INTEGER NOT NULL,
	          reason TEXT NOT NULL,
	          timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	      );
	      CREATE TABLE IF NOT EXISTS confessions (
	          confession_id TEXT PRIMARY KEY,
	          guild_id INTEGER NOT NULL,
	          user_id INTEGER NOT NULL,
	          content TEXT NOT NULL,
	          timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	      );`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create audit tables: %w", err)
	}

	return db, nil
}

// AddWarning inserts a new warning and returns its generated identifier.
func AddWarning(db *sqlx.DB, guildID, userID, moderatorID int64, reason string) (string, error) {
	rec := model.WarningRecord{
		WarningID:   uuid.NewString(),
		GuildID:     guildID,
		UserID:      userID,
		ModeratorID: moderatorID,
		Reason:      reason,
	}
	query := `INSERT INTO warnings (warning_id, guild_id, user_id, moderator_id, reason)
	          VALUES (:warning_id, :guild_id, :user_id, :moderator_id, :reason)`
	if _, err := db.NamedExec(query, rec); err != nil {
		return "", fmt.Errorf("failed to insert warning: %w", err)
	}
	return rec.WarningID, nil
}

// WarningsByUser returns a user's warnings in a guild, newest first. Among
// equal timestamps the most recently inserted record comes first.
func WarningsByUser(db *sqlx.DB, guildID, userID int64) ([]model.WarningRecord, error) {
	var records []model.WarningRecord
	query := `SELECT warning_id, guild_id, user_id, moderator_id, reason, timestamp
	          FROM warnings WHERE guild_id = ? AND user_id = ?
	          ORDER BY timestamp DESC, rowid DESC`
	if err := db.Select(&records, query, guildID, userID); err != nil {
		return nil, fmt.Errorf("failed to list warnings for user %d in guild %d: %w", userID, guildID, err)
	}
	return records, nil
}

// DeleteWarningByPrefix deletes every warning in the guild whose identifier
// starts with idPrefix and returns the first matched record for logging.
// When several identifiers share the prefix all of them are removed; only
// the first's details are reported.
func DeleteWarningByPrefix(db *sqlx.DB, guildID int64, idPrefix string) (*model.WarningRecord, error) {
	if !idPrefixPattern.MatchString(idPrefix) {
		return nil, fmt.Errorf("%w: malformed identifier prefix %q", ErrNotFound, idPrefix)
	}

	var rec model.WarningRecord
	query := `SELECT warning_id, guild_id, user_id, moderator_id, reason, timestamp
	          FROM warnings WHERE guild_id = ? AND warning_id LIKE ?
	          ORDER BY rowid LIMIT 1`
	err := db.Get(&rec, query, guildID, idPrefix+"%")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no warning with prefix %q", ErrNotFound, idPrefix)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up warning by prefix: %w", err)
	}

	if _, err := db.Exec(`DELETE FROM warnings WHERE guild_id = ? AND warning_id LIKE ?`, guildID, idPrefix+"%"); err != nil {
		return nil, fmt.Errorf("failed to delete warning by prefix: %w", err)
	}
	return &rec, nil
}

// AddConfession inserts a new confession and returns its generated
// identifier.
func AddConfession(db *sqlx.DB, guildID, userID int64, content string) (string, error) {
	rec := model.ConfessionRecord{
		ConfessionID: uuid.NewString(),
		GuildID:      guildID,
		UserID:       userID,
		Content:      content,
	}
	query := `INSERT INTO confessions (confession_id, guild_id, user_id, content)
	          VALUES (:confession_id, :guild_id, :user_id, :content)`
	if _, err := db.NamedExec(query, rec); err != nil {
		return "", fmt.Errorf("failed to insert confession: %w", err)
	}
	return rec.ConfessionID, nil
}

// DeleteConfessionByPrefix mirrors DeleteWarningByPrefix for confessions.
func DeleteConfessionByPrefix(db *sqlx.DB, guildID int64, idPrefix string) (*model.ConfessionRecord, error) {
	if !idPrefixPattern.MatchString(idPrefix) {
		return nil, fmt.Errorf("%w: malformed identifier prefix %q", ErrNotFound, idPrefix)
	}

	var rec model.ConfessionRecord
	query := `SELECT confession_id, guild_id, user_id, content, timestamp
	          FROM confessions WHERE guild_id = ? AND confession_id LIKE ?
	          ORDER BY rowid LIMIT 1`
	err := db.Get(&rec, query, guildID, idPrefix+"%")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no confession with prefix %q", ErrNotFound, idPrefix)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up confession by prefix: %w", err)
	}

	if _, err := db.Exec(`DELETE FROM confessions WHERE guild_id = ? AND confession_id LIKE ?`, guildID, idPrefix+"%"); err != nil {
		return nil, fmt.Errorf("failed to delete confession by prefix: %w", err)
	}
	return &rec, nil
}
