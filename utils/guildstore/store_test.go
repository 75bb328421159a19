package guildstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolekeeper/model"
	"rolekeeper/utils/guildstore"
)

func newTestStore(t *testing.T) (*guildstore.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "guild_data.json")
	s, err := guildstore.Load(path)
	require.NoError(t, err)
	return s, path
}

func collect(t *testing.T, s *guildstore.Store, guildID, filter string) []string {
	t.Helper()
	var names []string
	for name := range s.Categories(guildID, filter) {
		names = append(names, name)
	}
	return names
}

func TestGetOrCreateDefaults(t *testing.T) {
	s, path := newTestStore(t)

	gc := s.GetOrCreate("g1")
	assert.Nil(t, gc.Settings.LogChannel)
	assert.Nil(t, gc.Settings.ConfessionChannel)
	assert.Equal(t, 0, gc.Roles.Len())

	// Idempotent within the process, and materializing alone does not persist.
	again := s.GetOrCreate("g1")
	assert.Equal(t, gc, again)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSetSetting(t *testing.T) {
	s, _ := newTestStore(t)

	ch := int64(12345)
	require.NoError(t, s.SetSetting("g1", model.SettingLogChannel, &ch))

	got, err := s.Setting("g1", model.SettingLogChannel)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ch, *got)

	// The other setting stays unset.
	other, err := s.Setting("g1", model.SettingConfessionChannel)
	require.NoError(t, err)
	assert.Nil(t, other)

	// Clearing works too.
	require.NoError(t, s.SetSetting("g1", model.SettingLogChannel, nil))
	got, err = s.Setting("g1", model.SettingLogChannel)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSetSettingRejectsUnknownKey(t *testing.T) {
	s, _ := newTestStore(t)

	ch := int64(1)
	err := s.SetSetting("g1", "favorite_color", &ch)
	assert.ErrorIs(t, err, guildstore.ErrInvalidSetting)
}

func TestCreateCategoryDuplicate(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.CreateCategory("g1", "Games"))
	err := s.CreateCategory("g1", "Games")
	assert.ErrorIs(t, err, guildstore.ErrCategoryExists)

	// Case-sensitive: a different casing is a different category.
	require.NoError(t, s.CreateCategory("g1", "games"))
	assert.Equal(t, []string{"Games", "games"}, collect(t, s, "g1", ""))
}

func TestAddRoleIdempotentInEffect(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.CreateCategory("g1", "Games"))

	require.NoError(t, s.AddRoleToCategory("g1", "Games", "111"))
	err := s.AddRoleToCategory("g1", "Games", "111")
	assert.ErrorIs(t, err, guildstore.ErrRoleAlreadyInCategory)

	roles, err := s.CategoryRoles("g1", "Games")
	require.NoError(t, err)
	assert.Equal(t, []string{"111"}, roles)
}

func TestRemoveRole(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.CreateCategory("g1", "Games"))

	err := s.RemoveRoleFromCategory("g1", "Games", "111")
	assert.ErrorIs(t, err, guildstore.ErrRoleNotInCategory)

	require.NoError(t, s.AddRoleToCategory("g1", "Games", "111"))
	require.NoError(t, s.AddRoleToCategory("g1", "Games", "222"))
	require.NoError(t, s.RemoveRoleFromCategory("g1", "Games", "111"))

	roles, err := s.CategoryRoles("g1", "Games")
	require.NoError(t, err)
	assert.Equal(t, []string{"222"}, roles)
}

func TestDeleteCategoryCascades(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.CreateCategory("g1", "Games"))
	require.NoError(t, s.AddRoleToCategory("g1", "Games", "111"))

	require.NoError(t, s.DeleteCategory("g1", "Games"))

	err := s.AddRoleToCategory("g1", "Games", "222")
	assert.ErrorIs(t, err, guildstore.ErrCategoryNotFound)

	err = s.DeleteCategory("g1", "Games")
	assert.ErrorIs(t, err, guildstore.ErrCategoryNotFound)
}

func TestCategoriesFilterAndOrder(t *testing.T) {
	s, _ := newTestStore(t)
	for _, name := range []string{"Games", "Music", "Game Nights", "Colors"} {
		require.NoError(t, s.CreateCategory("g1", name))
	}

	// Insertion order, substring match, case-insensitive.
	assert.Equal(t, []string{"Games", "Music", "Game Nights", "Colors"}, collect(t, s, "g1", ""))
	assert.Equal(t, []string{"Games", "Game Nights"}, collect(t, s, "g1", "game"))
	assert.Equal(t, []string{"Music"}, collect(t, s, "g1", "USI"))
	assert.Empty(t, collect(t, s, "g1", "zzz"))
	assert.Empty(t, collect(t, s, "unknown-guild", ""))

	// Restartable: a second pass over the same sequence yields the same names.
	seq := s.Categories("g1", "game")
	var first, second []string
	for name := range seq {
		first = append(first, name)
	}
	for name := range seq {
		second = append(second, name)
	}
	assert.Equal(t, first, second)
}

func TestRoundTrip(t *testing.T) {
	s, path := newTestStore(t)

	ch := int64(777)
	require.NoError(t, s.SetSetting("g1", model.SettingLogChannel, &ch))
	require.NoError(t, s.CreateCategory("g1", "Zeta"))
	require.NoError(t, s.CreateCategory("g1", "Alpha"))
	require.NoError(t, s.AddRoleToCategory("g1", "Zeta", "333"))
	require.NoError(t, s.AddRoleToCategory("g1", "Zeta", "111"))
	require.NoError(t, s.CreateCategory("g2", "Solo"))

	reloaded, err := guildstore.Load(path)
	require.NoError(t, err)

	gc := reloaded.GetOrCreate("g1")
	require.NotNil(t, gc.Settings.LogChannel)
	assert.Equal(t, ch, *gc.Settings.LogChannel)
	assert.Equal(t, []string{"Zeta", "Alpha"}, collect(t, reloaded, "g1", ""))

	roles, err := reloaded.CategoryRoles("g1", "Zeta")
	require.NoError(t, err)
	assert.Equal(t, []string{"333", "111"}, roles)

	// Byte-for-byte: re-persisting the reloaded store writes the identical
	// snapshot.
	original, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, reloaded.Flush())
	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, rewritten)
}

func TestPersistFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "guild_data.json")
	s, err := guildstore.Load(path)
	require.NoError(t, err)

	// The parent directory does not exist, so every save fails.
	err = s.CreateCategory("g1", "Games")
	require.Error(t, err)
	assert.Empty(t, collect(t, s, "g1", ""))

	ch := int64(42)
	err = s.SetSetting("g1", model.SettingLogChannel, &ch)
	require.Error(t, err)
	got, err := s.Setting("g1", model.SettingLogChannel)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPersistFailureRollsBackRoleMutations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guild_data.json")
	s, err := guildstore.Load(path)
	require.NoError(t, err)
	require.NoError(t, s.CreateCategory("g1", "Games"))
	require.NoError(t, s.AddRoleToCategory("g1", "Games", "111"))

	// Make the snapshot path unwritable by replacing the file with a
	// directory of the same name.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0755))

	err = s.AddRoleToCategory("g1", "Games", "222")
	require.Error(t, err)
	roles, rerr := s.CategoryRoles("g1", "Games")
	require.NoError(t, rerr)
	assert.Equal(t, []string{"111"}, roles)

	err = s.DeleteCategory("g1", "Games")
	require.Error(t, err)
	assert.Equal(t, []string{"Games"}, collect(t, s, "g1", ""))
}
