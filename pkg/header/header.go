package header

import (
	"log/slog"

	"golang.org/x/net/html"

	"github.com/mchmarny/sitenav/pkg/document"
	"github.com/mchmarny/sitenav/pkg/menu"
)

const (
	// ActiveClass marks the menu and hamburger as expanded.
	ActiveClass = "active"

	// MenuClass is the class of the navigation list.
	MenuClass = "menu"

	// HamburgerClass is the class of the menu toggle control.
	HamburgerClass = "hamburger"

	homePage = "index.html"
	logoFile = "logo.png"

	// toggleScript flips the marker on the clicked hamburger and on the menu
	// of the same header, without a document-wide lookup.
	toggleScript = "this.classList.toggle('" + ActiveClass + "');" +
		"this.parentNode.querySelector('." + MenuClass + "').classList.toggle('" + ActiveClass + "')"
)

// Controls holds the elements of one rendered header. It is captured at
// build time so toggling never has to look the elements up again.
type Controls struct {
	Header    *html.Node
	Hamburger *html.Node
	Nav       *html.Node
}

// Build constructs the header for m, with every link prefixed by prefix, and
// inserts it as the first child of the document body. Calling Build twice
// on the same document inserts two headers. If the document has no body
// nothing is built and nil is returned.
func Build(doc *document.Document, m menu.Menu, prefix string) *Controls {
	body := doc.Body()
	if body == nil {
		slog.Warn("document has no body, header not rendered", "location", doc.Location())
		return nil
	}

	h := document.Element("header")

	logo := document.Append(
		document.Element("a", "href", prefix+homePage),
		document.Element("img", "src", prefix+logoFile, "alt", m.LogoAlt()),
	)
	h.AppendChild(logo)

	hamburger := document.Append(
		document.Element("div", "class", HamburgerClass),
		document.Element("div"),
		document.Element("div"),
		document.Element("div"),
	)
	h.AppendChild(hamburger)

	list := document.Element("ul", "class", MenuClass)
	for _, e := range m.Entries() {
		link := document.Append(document.Element("a", "href", prefix+e.Link), document.Text(e.Name))
		list.AppendChild(document.Append(document.Element("li"), link))
	}
	h.AppendChild(document.Append(document.Element("nav"), list))

	document.InsertFirst(body, h)

	slog.Debug("header rendered",
		"location", doc.Location(),
		"prefix", prefix,
		"items", m.Len())

	return &Controls{Header: h, Hamburger: hamburger, Nav: list}
}

// Render builds the header using the prefix derived from the document location.
func Render(doc *document.Document, m menu.Menu) *Controls {
	return Build(doc, m, PathPrefix(doc.Location()))
}

// Toggle flips the active marker on the menu and the hamburger together.
// Missing controls are ignored.
func (c *Controls) Toggle() {
	if c == nil {
		return
	}
	document.ToggleClass(c.Nav, ActiveClass)
	document.ToggleClass(c.Hamburger, ActiveClass)
}

// Expanded reports whether the menu is currently shown.
func (c *Controls) Expanded() bool {
	if c == nil {
		return false
	}
	return document.HasClass(c.Nav, ActiveClass)
}

// LinkToggle makes the hamburger navigable without script: its bars are
// wrapped in a link to href. Calling it again only updates the target.
func (c *Controls) LinkToggle(href string) {
	if c == nil || c.Hamburger == nil {
		return
	}

	if a := c.toggleLink(); a != nil {
		document.SetAttr(a, "href", href)
		return
	}

	a := document.Element("a", "href", href)
	for c.Hamburger.FirstChild != nil {
		bar := c.Hamburger.FirstChild
		c.Hamburger.RemoveChild(bar)
		a.AppendChild(bar)
	}
	c.Hamburger.AppendChild(a)
}

// ScriptToggle attaches an inline click handler to the hamburger that
// toggles the marker in the browser, for pages served as static files.
func (c *Controls) ScriptToggle() {
	if c == nil || c.Hamburger == nil {
		return
	}
	document.SetAttr(c.Hamburger, "onclick", toggleScript)
}

func (c *Controls) toggleLink() *html.Node {
	if a := c.Hamburger.FirstChild; a != nil && a.Type == html.ElementNode && a.Data == "a" {
		return a
	}
	return nil
}
