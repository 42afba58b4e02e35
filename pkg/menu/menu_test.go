package menu

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	m := Default()

	want := []Entry{
		{Name: "Home", Link: "index.html"},
		{Name: "About", Link: "about.html"},
		{Name: "WebGL", Link: "webGL/index.html"},
		{Name: "SVG", Link: "SVG/index.html"},
		{Name: "Category 3", Link: "category-3/index.html"},
		{Name: "Category 4", Link: "category-4/index.html"},
	}

	assert.Equal(t, want, m.Entries())
	assert.Equal(t, len(want), m.Len())
	assert.Equal(t, DefaultLogoAlt, m.LogoAlt())
	assert.NoError(t, m.Validate())
}

func TestNewCopiesEntries(t *testing.T) {
	in := []Entry{{Name: "Home", Link: "index.html"}}
	m := New(in)

	in[0].Name = "changed"
	assert.Equal(t, "Home", m.Entries()[0].Name)

	out := m.Entries()
	out[0].Link = "changed.html"
	assert.Equal(t, "index.html", m.Entries()[0].Link)
}

func TestWithLogoAlt(t *testing.T) {
	m := Default(WithLogoAlt("Acme"))
	assert.Equal(t, "Acme", m.LogoAlt())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr bool
	}{
		{name: "empty menu", entries: nil},
		{name: "valid", entries: []Entry{{Name: "Home", Link: "index.html"}}},
		{name: "missing name", entries: []Entry{{Link: "index.html"}}, wantErr: true},
		{name: "missing link", entries: []Entry{{Name: "Home"}, {Name: "About"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.entries).Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidEntry))
			assert.Contains(t, err.Error(), "menu entry 0")
		})
	}
}

func TestHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/menu", nil)

	Default().Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got struct {
		LogoAlt string  `json:"logo_alt"`
		Items   []Entry `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, DefaultLogoAlt, got.LogoAlt)
	assert.Equal(t, Default().Entries(), got.Items)
}

func TestMarshalEmptyMenu(t *testing.T) {
	b, err := json.Marshal(Menu{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(b))
}
