package menu

import (
	"errors"
	"fmt"
)

// ErrInvalidEntry is returned when a menu entry is missing its name or link.
var ErrInvalidEntry = errors.New("invalid menu entry")

// Entry represents a single navigation target in the header menu.
type Entry struct {
	// Name is the visible text of the menu link.
	Name string `json:"name" koanf:"name" yaml:"name"`

	// Link is the target of the menu link, relative to the site root.
	// It is prefixed at render time to account for page nesting depth.
	Link string `json:"link" koanf:"link" yaml:"link"`
}

// Validate checks that the entry has both a name and a link.
func (e Entry) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidEntry)
	}
	if e.Link == "" {
		return fmt.Errorf("%w: link is required for %q", ErrInvalidEntry, e.Name)
	}
	return nil
}
