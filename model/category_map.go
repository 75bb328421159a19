package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// CategoryMap maps category names to ordered role-ID lists while remembering
// the order categories were created in. A plain map would lose that order on
// every snapshot reload; the wire format stays a plain JSON object.
type CategoryMap struct {
	roles map[string][]string
	order []string
}

func NewCategoryMap() *CategoryMap {
	return &CategoryMap{roles: make(map[string][]string)}
}

func (m *CategoryMap) Len() int {
	return len(m.order)
}

func (m *CategoryMap) Has(name string) bool {
	_, ok := m.roles[name]
	return ok
}

// Roles returns a copy of the category's role list.
func (m *CategoryMap) Roles(name string) ([]string, bool) {
	roles, ok := m.roles[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(roles), true
}

// Set inserts or replaces a category's role list. New names append to the
// insertion order.
func (m *CategoryMap) Set(name string, roles []string) {
	if _, ok := m.roles[name]; !ok {
		m.order = append(m.order, name)
	}
	m.roles[name] = slices.Clone(roles)
}

func (m *CategoryMap) Delete(name string) {
	if _, ok := m.roles[name]; !ok {
		return
	}
	delete(m.roles, name)
	m.order = slices.DeleteFunc(m.order, func(n string) bool { return n == name })
}

// Names returns the category names in insertion order.
func (m *CategoryMap) Names() []string {
	return slices.Clone(m.order)
}

// Clone deep-copies the map, role lists included.
func (m *CategoryMap) Clone() *CategoryMap {
	c := NewCategoryMap()
	for _, name := range m.order {
		c.Set(name, m.roles[name])
	}
	return c
}

// MarshalJSON writes the categories as a JSON object in insertion order.
func (m *CategoryMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		roles := m.roles[name]
		if roles == nil {
			roles = []string{}
		}
		val, err := json.Marshal(roles)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object key by key so the on-disk category order
// survives a reload.
func (m *CategoryMap) UnmarshalJSON(data []byte) error {
	m.roles = make(map[string][]string)
	m.order = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("categories: expected JSON object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("categories: expected string key, got %v", keyTok)
		}
		var roles []string
		if err := dec.Decode(&roles); err != nil {
			return fmt.Errorf("categories: bad role list for %q: %w", name, err)
		}
		m.Set(name, roles)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
