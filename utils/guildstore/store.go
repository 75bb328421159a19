package guildstore

import (
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"slices"
	"strings"
	"sync"

	"rolekeeper/model"
)

// Store owns every guild's configuration for the process lifetime. It is
// constructed once at startup and passed by handle; there is no package-level
// state. Every mutating operation runs the full read-modify-persist cycle
// under one store-wide lock, and the snapshot on disk always matches the
// in-memory state after the last successful call: if the write fails, the
// in-memory change is rolled back and the error returned.
//
// Persistence rewrites the whole document on every mutation. Write cost grows
// with the number of guilds, which is fine at the tens-to-hundreds scale this
// bot runs at.
type Store struct {
	mu     sync.Mutex
	path   string
	guilds map[string]*model.GuildConfig
}

// Load reads the snapshot at path. A missing or empty file yields an empty
// store rather than an error.
func Load(path string) (*Store, error) {
	s := &Store{path: path, guilds: make(map[string]*model.GuildConfig)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read guild data file: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.guilds); err != nil {
		return nil, fmt.Errorf("failed to parse guild data file %s: %w", path, err)
	}
	for _, gc := range s.guilds {
		if gc.Roles == nil {
			gc.Roles = model.NewCategoryMap()
		}
	}
	return s, nil
}

// save serializes the whole store. Callers must hold mu. The write goes
// through a temp file and rename so a failed write never truncates the
// previous snapshot.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.guilds, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to serialize guild data: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write guild data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace guild data file: %w", err)
	}
	return nil
}

// Flush persists the current state. Called on shutdown.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// getOrCreate returns the guild's live config, materializing a default on
// first access. Callers must hold mu. Materializing alone does not persist;
// the default is written out with the first real mutation.
func (s *Store) getOrCreate(guildID string) *model.GuildConfig {
	gc, ok := s.guilds[guildID]
	if !ok {
		gc = &model.GuildConfig{Roles: model.NewCategoryMap()}
		s.guilds[guildID] = gc
	}
	return gc
}

// GetOrCreate materializes the guild if needed and returns a copy of its
// config. It never fails.
func (s *Store) GetOrCreate(guildID string) model.GuildConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	gc := s.getOrCreate(guildID)
	return model.GuildConfig{
		Settings: copySettings(gc.Settings),
		Roles:    gc.Roles.Clone(),
	}
}

func copySettings(in model.GuildSettings) model.GuildSettings {
	out := model.GuildSettings{}
	if in.LogChannel != nil {
		v := *in.LogChannel
		out.LogChannel = &v
	}
	if in.ConfessionChannel != nil {
		v := *in.ConfessionChannel
		out.ConfessionChannel = &v
	}
	return out
}

// SetSetting updates one of the recognized per-guild settings and persists
// the store. A nil value clears the setting.
func (s *Store) SetSetting(guildID, key string, value *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gc := s.getOrCreate(guildID)

	var slot **int64
	switch key {
	case model.SettingLogChannel:
		slot = &gc.Settings.LogChannel
	case model.SettingConfessionChannel:
		slot = &gc.Settings.ConfessionChannel
	default:
		return fmt.Errorf("%w: %s", ErrInvalidSetting, key)
	}

	prev := *slot
	*slot = value
	if err := s.save(); err != nil {
		*slot = prev
		return err
	}
	return nil
}

// Setting reads one of the recognized settings. A nil result means unset.
func (s *Store) Setting(guildID, key string) (*int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gc, ok := s.guilds[guildID]
	if !ok {
		return nil, nil
	}
	switch key {
	case model.SettingLogChannel:
		return gc.Settings.LogChannel, nil
	case model.SettingConfessionChannel:
		return gc.Settings.ConfessionChannel, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidSetting, key)
	}
}

// CreateCategory adds an empty role category. Names are case-sensitive and
// unique within the guild.
func (s *Store) CreateCategory(guildID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gc := s.getOrCreate(guildID)
	if gc.Roles.Has(name) {
		return fmt.Errorf("%w: %s", ErrCategoryExists, name)
	}
	gc.Roles.Set(name, []string{})
	if err := s.save(); err != nil {
		gc.Roles.Delete(name)
		return err
	}
	return nil
}

// DeleteCategory removes the category and every role association in it.
func (s *Store) DeleteCategory(guildID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gc := s.getOrCreate(guildID)
	if !gc.Roles.Has(name) {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	prev := gc.Roles.Clone()
	gc.Roles.Delete(name)
	if err := s.save(); err != nil {
		gc.Roles = prev
		return err
	}
	return nil
}

// AddRoleToCategory appends the role to the category's list. Adding a role
// that is already present reports ErrRoleAlreadyInCategory and leaves the
// list with a single occurrence.
func (s *Store) AddRoleToCategory(guildID, name, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gc := s.getOrCreate(guildID)
	roles, ok := gc.Roles.Roles(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	if slices.Contains(roles, roleID) {
		return fmt.Errorf("%w: %s", ErrRoleAlreadyInCategory, roleID)
	}
	prev := gc.Roles.Clone()
	gc.Roles.Set(name, append(roles, roleID))
	if err := s.save(); err != nil {
		gc.Roles = prev
		return err
	}
	return nil
}

// RemoveRoleFromCategory removes the role from the category's list.
func (s *Store) RemoveRoleFromCategory(guildID, name, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gc := s.getOrCreate(guildID)
	roles, ok := gc.Roles.Roles(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	idx := slices.Index(roles, roleID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrRoleNotInCategory, roleID)
	}
	prev := gc.Roles.Clone()
	gc.Roles.Set(name, slices.Delete(roles, idx, idx+1))
	if err := s.save(); err != nil {
		gc.Roles = prev
		return err
	}
	return nil
}

// CategoryRoles returns a copy of the category's role list in insertion
// order.
func (s *Store) CategoryRoles(guildID, name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gc, ok := s.guilds[guildID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	roles, ok := gc.Roles.Roles(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	return roles, nil
}

// HasCategories reports whether the guild has any role categories configured.
func (s *Store) HasCategories(guildID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	gc, ok := s.guilds[guildID]
	return ok && gc.Roles.Len() > 0
}

// Categories returns a restartable sequence of category names whose lowercase
// form contains filter, in the order the categories were created. An empty
// filter matches everything. The sequence iterates over a snapshot, so it
// stays stable even if the store is mutated mid-iteration.
func (s *Store) Categories(guildID, filter string) iter.Seq[string] {
	s.mu.Lock()
	var names []string
	if gc, ok := s.guilds[guildID]; ok {
		names = gc.Roles.Names()
	}
	s.mu.Unlock()

	filter = strings.ToLower(filter)
	return func(yield func(string) bool) {
		for _, name := range names {
			if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
				continue
			}
			if !yield(name) {
				return
			}
		}
	}
}
