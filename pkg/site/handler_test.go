package site

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/mchmarny/sitenav/pkg/document"
	"github.com/mchmarny/sitenav/pkg/header"
	"github.com/mchmarny/sitenav/pkg/menu"
)

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder, location string) *document.Document {
	t.Helper()
	d, err := document.Parse(strings.NewReader(rec.Body.String()), location)
	require.NoError(t, err)
	return d
}

func TestHandlerInjectsHeader(t *testing.T) {
	h := Handler(writeSite(t), &Renderer{Menu: menu.Default()})

	tests := []struct {
		target string
		home   string
	}{
		{target: "/", home: "index.html"},
		{target: "/index.html", home: "index.html"},
		{target: "/about.html", home: "index.html"},
		{target: "/category-3/", home: "../index.html"},
		{target: "/webGL/index.html", home: "../index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serve(t, h, http.MethodGet, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

			d := parseBody(t, rec, tt.target)
			headers := document.FindAll(d.Root(), document.IsElement("header"))
			require.Len(t, headers, 1)
			assert.Equal(t, tt.home, document.Attr(headers[0].FirstChild, "href"))
		})
	}
}

func TestHandlerExpandedMenu(t *testing.T) {
	h := Handler(writeSite(t), &Renderer{Menu: menu.Default()})

	rec := serve(t, h, http.MethodGet, "/about.html?menu=expanded")
	require.Equal(t, http.StatusOK, rec.Code)

	d := parseBody(t, rec, "/about.html")
	nav := document.First(d.Root(), func(n *html.Node) bool { return document.HasClass(n, header.MenuClass) })
	require.NotNil(t, nav)
	assert.True(t, document.HasClass(nav, header.ActiveClass))
}

func TestHandlerPassesThroughAssets(t *testing.T) {
	h := Handler(writeSite(t), &Renderer{Menu: menu.Default(), Exclude: []string{"drafts/**"}})

	rec := serve(t, h, http.MethodGet, "/style.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())

	rec = serve(t, h, http.MethodGet, "/drafts/wip.html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<header>")

	rec = serve(t, h, http.MethodGet, "/missing.html")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, h, http.MethodGet, "/category-3")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
}

func TestHandlerHead(t *testing.T) {
	h := Handler(writeSite(t), &Renderer{Menu: menu.Default()})

	rec := serve(t, h, http.MethodHead, "/about.html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestHandlerHamburgerLinkToggles(t *testing.T) {
	h := Handler(writeSite(t), &Renderer{Menu: menu.Default()})

	page := func(target string) (*html.Node, *html.Node, string) {
		t.Helper()
		rec := serve(t, h, http.MethodGet, target)
		require.Equal(t, http.StatusOK, rec.Code)

		d := parseBody(t, rec, target)
		nav := document.First(d.Root(), func(n *html.Node) bool { return document.HasClass(n, header.MenuClass) })
		hamburger := document.First(d.Root(), func(n *html.Node) bool { return document.HasClass(n, header.HamburgerClass) })
		require.NotNil(t, nav)
		require.NotNil(t, hamburger)

		link := hamburger.FirstChild
		require.NotNil(t, link)
		require.Equal(t, "a", link.Data)
		assert.Len(t, document.FindAll(link, document.IsElement("div")), 3)

		base, err := url.Parse(target)
		require.NoError(t, err)
		ref, err := url.Parse(document.Attr(link, "href"))
		require.NoError(t, err)

		return nav, hamburger, base.ResolveReference(ref).String()
	}

	nav, hamburger, next := page("/category-3/")
	assert.False(t, document.HasClass(nav, header.ActiveClass))
	assert.False(t, document.HasClass(hamburger, header.ActiveClass))
	assert.Equal(t, "/category-3/?menu=expanded", next)

	nav, hamburger, next = page(next)
	assert.True(t, document.HasClass(nav, header.ActiveClass))
	assert.True(t, document.HasClass(hamburger, header.ActiveClass))
	assert.Equal(t, "/category-3/?menu=collapsed", next)

	nav, hamburger, _ = page(next)
	assert.False(t, document.HasClass(nav, header.ActiveClass))
	assert.False(t, document.HasClass(hamburger, header.ActiveClass))
	assert.Empty(t, document.Attr(hamburger, "onclick"))
}
