// Package document models the page a header is rendered into: a parsed HTML
// node tree, the location path it was loaded from, and the event loop that
// delivers lifecycle and click events to it.
package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page together with its location path.
type Document struct {
	root     *html.Node
	location string
}

// Parse reads an HTML page from r. The location is the URL path the page is
// served from, e.g. "/category-3/index.html".
func Parse(r io.Reader, location string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", location, err)
	}

	return &Document{root: root, location: location}, nil
}

// New returns an empty document (html, head and body only).
func New(location string) *Document {
	// html.Parse never fails on an in-memory empty reader.
	d, _ := Parse(strings.NewReader(""), location)
	return d
}

// FromNode wraps an existing node tree.
func FromNode(root *html.Node, location string) *Document {
	return &Document{root: root, location: location}
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Location returns the path the document was loaded from.
func (d *Document) Location() string {
	return d.location
}

// Body returns the body element, or nil if the document has none.
func (d *Document) Body() *html.Node {
	if d == nil || d.root == nil {
		return nil
	}

	return First(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "body"
	})
}

// Render writes the document as HTML to w.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("failed to render document %s: %w", d.location, err)
	}
	return nil
}

// String returns the rendered HTML, or an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}
