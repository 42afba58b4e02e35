package document

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element creates a detached element node. Attributes are given as
// key/value pairs; a trailing key without a value is ignored.
func Element(tag string, kv ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}

	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}

	return n
}

// Text creates a detached text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Append adds children to parent, in order, and returns parent.
func Append(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// InsertFirst inserts child as the first child of parent.
func InsertFirst(parent, child *html.Node) {
	parent.InsertBefore(child, parent.FirstChild)
}

// Attr returns the value of the attribute key on n, or "" when unset.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets the attribute key on n, replacing any existing value.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether class is one of n's class tokens.
func HasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// ToggleClass removes class from n if present and adds it otherwise.
// It returns whether the class is present afterwards. A nil node is left
// alone and reports false.
func ToggleClass(n *html.Node, class string) bool {
	if n == nil {
		return false
	}

	tokens := strings.Fields(Attr(n, "class"))
	kept := tokens[:0]
	found := false
	for _, c := range tokens {
		if c == class {
			found = true
			continue
		}
		kept = append(kept, c)
	}

	if !found {
		kept = append(kept, class)
	}

	SetAttr(n, "class", strings.Join(kept, " "))

	return !found
}

// First returns the first node under root, in document order, for which
// match returns true. Root itself is considered.
func First(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	if match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := First(c, match); n != nil {
			return n
		}
	}
	return nil
}

// FindAll returns every node under root, in document order, for which match
// returns true.
func FindAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if root != nil {
		walk(root)
	}

	return out
}

// IsElement returns a matcher for element nodes with the given tag.
func IsElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}
