package menu

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// DefaultLogoAlt is the alt text of the header logo image.
const DefaultLogoAlt = "Blarmony Logo"

// Menu is the ordered, read-only list of navigation entries rendered in the
// page header. The zero value is an empty menu.
type Menu struct {
	logoAlt string
	entries []Entry
}

// Option configures a Menu.
type Option func(*Menu)

// WithLogoAlt sets the alt text of the logo image.
// If not specified, DefaultLogoAlt is used.
func WithLogoAlt(alt string) Option {
	return func(m *Menu) { m.logoAlt = alt }
}

// New creates a menu holding a copy of the given entries, in order.
func New(entries []Entry, opts ...Option) Menu {
	m := Menu{
		logoAlt: DefaultLogoAlt,
		entries: append([]Entry(nil), entries...),
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// Default returns the site's standard navigation menu.
func Default(opts ...Option) Menu {
	return New([]Entry{
		{Name: "Home", Link: "index.html"},
		{Name: "About", Link: "about.html"},
		{Name: "WebGL", Link: "webGL/index.html"},
		{Name: "SVG", Link: "SVG/index.html"},
		{Name: "Category 3", Link: "category-3/index.html"},
		{Name: "Category 4", Link: "category-4/index.html"},
	}, opts...)
}

// Entries returns a copy of the menu entries in display order.
func (m Menu) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Len returns the number of entries.
func (m Menu) Len() int {
	return len(m.entries)
}

// LogoAlt returns the alt text of the logo image.
func (m Menu) LogoAlt() string {
	return m.logoAlt
}

// Validate checks every entry and reports the first invalid one by index.
func (m Menu) Validate() error {
	for i, e := range m.entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("menu entry %d: %w", i, err)
		}
	}
	return nil
}

type menuJSON struct {
	LogoAlt string  `json:"logo_alt,omitempty"`
	Items   []Entry `json:"items"`
}

// MarshalJSON implements json.Marshaler.
func (m Menu) MarshalJSON() ([]byte, error) {
	items := m.Entries()
	if items == nil {
		items = []Entry{}
	}
	return json.Marshal(menuJSON{LogoAlt: m.logoAlt, Items: items})
}

// Handler returns an HTTP handler that responds with the menu structure as JSON.
func (m Menu) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("handling menu request",
			"method", r.Method,
			"url", r.URL.Path,
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(m); err != nil {
			slog.Error("failed to encode menu", "error", err)
			return
		}
	})
}
