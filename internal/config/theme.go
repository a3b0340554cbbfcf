package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Theme is the UI color scheme.
type Theme string

// Themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	DefaultTheme = ThemeDark
)

// ErrUnknownTheme is returned when a theme name is not light or dark.
var ErrUnknownTheme = errors.New("unknown theme")

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: %q (want light or dark)", ErrUnknownTheme, s)
	}
}

// ThemeLoadFunc reads the stored theme.
type ThemeLoadFunc func() (Theme, error)

// ThemeSaveFunc persists a theme.
type ThemeSaveFunc func(Theme) error

// ThemeStore holds the theme preference. The stored value is read once,
// on first Get; anything unreadable or unknown becomes DefaultTheme.
type ThemeStore struct {
	mu     sync.Mutex
	load   ThemeLoadFunc
	save   ThemeSaveFunc
	theme  Theme
	loaded bool
}

// NewThemeStore creates a store over the given persistence functions.
func NewThemeStore(load ThemeLoadFunc, save ThemeSaveFunc) *ThemeStore {
	return &ThemeStore{load: load, save: save}
}

// NewFileThemeStore persists the theme as JSON at path.
func NewFileThemeStore(path string) *ThemeStore {
	return NewThemeStore(
		func() (Theme, error) { return loadThemeFile(path) },
		func(t Theme) error { return saveThemeFile(path, t) },
	)
}

// Get returns the current theme.
func (s *ThemeStore) Get() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

// Set stores theme. The in-memory value changes only if saving succeeds.
func (s *ThemeStore) Set(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(theme)
}

// Toggle flips between light and dark and returns the new theme.
func (s *ThemeStore) Toggle() (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := ThemeLight
	if s.currentLocked() == ThemeLight {
		next = ThemeDark
	}
	if err := s.setLocked(next); err != nil {
		return s.theme, err
	}
	return next, nil
}

func (s *ThemeStore) currentLocked() Theme {
	if s.loaded {
		return s.theme
	}
	s.loaded = true
	s.theme = DefaultTheme
	if s.load == nil {
		return s.theme
	}
	stored, err := s.load()
	if err != nil {
		return s.theme
	}
	if t, parseErr := ParseTheme(string(stored)); parseErr == nil {
		s.theme = t
	}
	return s.theme
}

func (s *ThemeStore) setLocked(theme Theme) error {
	s.currentLocked()
	if s.save != nil {
		if err := s.save(theme); err != nil {
			return fmt.Errorf("saving theme: %w", err)
		}
	}
	s.theme = theme
	return nil
}

type themeFile struct {
	Theme Theme `json:"theme"`
}

func loadThemeFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var tf themeFile
	if err = json.Unmarshal(data, &tf); err != nil {
		return "", err
	}
	return tf.Theme, nil
}

func saveThemeFile(path string, theme Theme) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	data, err := json.Marshal(themeFile{Theme: theme})
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
