package main

import (
	"fmt"
	"log"
	"strings"

	animation "github.com/milk9111/animsheet/component"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	settingsApp    = "animsheet"
	settingsObject = "viewer"
)

// ViewerSettings is what the viewer remembers per prefab between runs.
type ViewerSettings struct {
	Speed float64              `yaml:"speed"`
	Debug bool                 `yaml:"debug"`
	Sheet animation.SheetState `yaml:"sheet"`
}

// SettingsStore persists ViewerSettings through gdata. A nil manager keeps
// everything in memory only.
type SettingsStore struct {
	manager *gdata.Manager
}

// OpenSettingsStore opens the per-user data directory. Failing to open it is
// not fatal for the viewer; the returned store then saves nothing.
func OpenSettingsStore(appName string) (*SettingsStore, error) {
	if appName == "" {
		appName = settingsApp
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &SettingsStore{}, fmt.Errorf("settings: open: %w", err)
	}
	return &SettingsStore{manager: m}, nil
}

// Load returns the settings saved for prefab, or ok=false if none exist.
func (s *SettingsStore) Load(prefab string) (ViewerSettings, bool, error) {
	var out ViewerSettings
	if s == nil || s.manager == nil {
		return out, false, nil
	}
	key := settingsKey(prefab)
	if !s.manager.ObjectPropExists(settingsObject, key) {
		return out, false, nil
	}
	data, err := s.manager.LoadObjectProp(settingsObject, key)
	if err != nil {
		return out, false, fmt.Errorf("settings: load %s: %w", key, err)
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return out, false, fmt.Errorf("settings: unmarshal %s: %w", key, err)
	}
	return out, true, nil
}

func (s *SettingsStore) Save(prefab string, v ViewerSettings) error {
	if s == nil || s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	key := settingsKey(prefab)
	if err := s.manager.SaveObjectProp(settingsObject, key, data); err != nil {
		return fmt.Errorf("settings: save %s: %w", key, err)
	}
	log.Printf("[Settings] saved %s", key)
	return nil
}

// settingsKey turns a prefab path into a property name gdata accepts.
func settingsKey(prefab string) string {
	prefab = strings.TrimSuffix(strings.TrimSuffix(prefab, ".yaml"), ".yml")
	var b strings.Builder
	for _, r := range strings.ToLower(prefab) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "default"
	}
	return b.String()
}
