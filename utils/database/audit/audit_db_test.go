package audit_db_test

import (
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit_db "rolekeeper/utils/database/audit"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := audit_db.InitAuditDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func warningCount(t *testing.T, db *sqlx.DB) int {
	t.Helper()
	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM warnings"))
	return count
}

func TestAddWarningGeneratesUniqueIDs(t *testing.T) {
	db := newTestDB(t)

	first, err := audit_db.AddWarning(db, 1, 10, 99, "spam")
	require.NoError(t, err)
	second, err := audit_db.AddWarning(db, 1, 10, 99, "spam again")
	require.NoError(t, err)

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}

func TestWarningsByUserNewestFirst(t *testing.T) {
	db := newTestDB(t)

	var ids []string
	for n := 0; n < 3; n++ {
		id, err := audit_db.AddWarning(db, 1, 10, 99, fmt.Sprintf("reason %d", n))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	records, err := audit_db.WarningsByUser(db, 1, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// All inserts land within the same CURRENT_TIMESTAMP second, so the
	// insertion-order tie break puts the newest record first.
	assert.Equal(t, ids[2], records[0].WarningID)
	assert.Equal(t, ids[1], records[1].WarningID)
	assert.Equal(t, ids[0], records[2].WarningID)
	assert.Equal(t, "reason 2", records[0].Reason)
	assert.Equal(t, int64(99), records[0].ModeratorID)
}

func TestWarningsByUserScoped(t *testing.T) {
	db := newTestDB(t)

	_, err := audit_db.AddWarning(db, 1, 10, 99, "in scope")
	require.NoError(t, err)
	_, err = audit_db.AddWarning(db, 2, 10, 99, "other guild")
	require.NoError(t, err)
	_, err = audit_db.AddWarning(db, 1, 11, 99, "other user")
	require.NoError(t, err)

	records, err := audit_db.WarningsByUser(db, 1, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "in scope", records[0].Reason)
}

func TestDeleteWarningByPrefixNoMatch(t *testing.T) {
	db := newTestDB(t)

	_, err := audit_db.AddWarning(db, 1, 10, 99, "keep me")
	require.NoError(t, err)

	_, err = audit_db.DeleteWarningByPrefix(db, 1, "ffffffff")
	assert.ErrorIs(t, err, audit_db.ErrNotFound)
	assert.Equal(t, 1, warningCount(t, db))
}

func TestDeleteWarningByPrefixSingleMatch(t *testing.T) {
	db := newTestDB(t)

	id, err := audit_db.AddWarning(db, 1, 10, 99, "delete me")
	require.NoError(t, err)

	rec, err := audit_db.DeleteWarningByPrefix(db, 1, id[:8])
	require.NoError(t, err)
	assert.Equal(t, id, rec.WarningID)
	assert.Equal(t, "delete me", rec.Reason)
	assert.Equal(t, 0, warningCount(t, db))
}

func TestDeleteWarningByPrefixScopedToGuild(t *testing.T) {
	db := newTestDB(t)

	id, err := audit_db.AddWarning(db, 1, 10, 99, "other guild's record")
	require.NoError(t, err)

	_, err = audit_db.DeleteWarningByPrefix(db, 2, id[:8])
	assert.ErrorIs(t, err, audit_db.ErrNotFound)
	assert.Equal(t, 1, warningCount(t, db))
}

func TestDeleteWarningByPrefixCollision(t *testing.T) {
	db := newTestDB(t)

	// Craft two identifiers sharing a prefix; all matches are deleted but
	// the first-inserted record is the one reported.
	insert := `INSERT INTO warnings (warning_id, guild_id, user_id, moderator_id, reason) VALUES (?, 1, 10, 99, ?)`
	_, err := db.Exec(insert, "aaaa1111-0000-0000-0000-000000000000", "first")
	require.NoError(t, err)
	_, err = db.Exec(insert, "aaaa2222-0000-0000-0000-000000000000", "second")
	require.NoError(t, err)

	rec, err := audit_db.DeleteWarningByPrefix(db, 1, "aaaa")
	require.NoError(t, err)
	assert.Equal(t, "first", rec.Reason)
	assert.Equal(t, 0, warningCount(t, db))
}

func TestDeleteWarningByPrefixRejectsWildcards(t *testing.T) {
	db := newTestDB(t)

	_, err := audit_db.AddWarning(db, 1, 10, 99, "keep me")
	require.NoError(t, err)

	for _, prefix := range []string{"%", "_", "", "a%b"} {
		_, err = audit_db.DeleteWarningByPrefix(db, 1, prefix)
		assert.ErrorIs(t, err, audit_db.ErrNotFound, "prefix %q", prefix)
	}
	assert.Equal(t, 1, warningCount(t, db))
}

func TestConfessionLifecycle(t *testing.T) {
	db := newTestDB(t)

	id, err := audit_db.AddConfession(db, 1, 42, "a secret")
	require.NoError(t, err)
	assert.Len(t, id, 36)

	rec, err := audit_db.DeleteConfessionByPrefix(db, 1, id[:8])
	require.NoError(t, err)
	assert.Equal(t, id, rec.ConfessionID)
	assert.Equal(t, "a secret", rec.Content)
	assert.Equal(t, int64(42), rec.UserID)

	_, err = audit_db.DeleteConfessionByPrefix(db, 1, id[:8])
	assert.ErrorIs(t, err, audit_db.ErrNotFound)
}
