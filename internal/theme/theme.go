// Package theme holds the light/dark flag shared by every renderer, its
// persisted store and the colour palettes selected by it.
package theme

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

var ErrUnknownMode = errors.New("unknown theme mode")

type Mode int

const (
	Light Mode = iota
	Dark
)

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// Other returns the mode a toggle switches to.
func (m Mode) Other() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Reader is the read-only view renderers get. They call it on every draw.
type Reader interface {
	Mode() Mode
}

// Static is a Reader that never changes.
type Static Mode

func (s Static) Mode() Mode { return Mode(s) }

type file struct {
	Theme string `toml:"theme"`
}

// Store is the persisted theme flag.
type Store struct {
	path string
	mode Mode
}

// DefaultPath is where the theme is kept when no path is configured.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "constellation", "theme.toml"), nil
}

// Open loads the persisted mode from path. A missing or unreadable file falls
// back to pref. An empty path gives a store that never touches disk.
func Open(path string, pref Mode) *Store {
	s := &Store{path: path, mode: pref}
	if path == "" {
		return s
	}
	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).WithField("path", path).Warn("Ignoring unreadable theme file")
		}
		return s
	}
	m, err := ParseMode(f.Theme)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("Ignoring saved theme")
		return s
	}
	s.mode = m
	return s
}

func (s *Store) Mode() Mode { return s.mode }

// Set changes the mode and persists it. The in-memory mode changes even when
// writing fails.
func (s *Store) Set(m Mode) error {
	s.mode = m
	if s.path == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(file{Theme: m.String()}); err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

func (s *Store) Toggle() (Mode, error) {
	next := s.mode.Other()
	return next, s.Set(next)
}

// SystemPreference guesses the desktop's preferred mode from the environment.
func SystemPreference() Mode {
	if strings.HasSuffix(strings.ToLower(os.Getenv("GTK_THEME")), ":dark") {
		return Dark
	}
	// COLORFGBG is "fg;bg"; terminals set bg 0-6 or 8 for dark backgrounds.
	if v := os.Getenv("COLORFGBG"); v != "" {
		parts := strings.Split(v, ";")
		switch parts[len(parts)-1] {
		case "0", "1", "2", "3", "4", "5", "6", "8":
			return Dark
		}
	}
	return Light
}
