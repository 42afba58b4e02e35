// Package header renders the shared site header: logo, hamburger control
// and navigation menu, with links adjusted for the depth of the current page.
package header

import "strings"

// ParentPrefix is prepended to links on pages one level below the site root.
const ParentPrefix = "../"

// sectionMarkers identify pages that live in a section directory.
// Matching is by substring, so a root page whose path merely contains one of
// these is classified as nested too.
var sectionMarkers = []string{"/category-", "/webGL/", "/SVG/"}

// IsInSubdirectory reports whether the page at path lives one level below
// the site root, inside one of the known section directories.
func IsInSubdirectory(path string) bool {
	for _, m := range sectionMarkers {
		if strings.Contains(path, m) {
			return true
		}
	}
	return false
}

// PathPrefix returns the prefix that turns root-relative links into links
// that resolve from the page at path: "../" for section pages, "" otherwise.
func PathPrefix(path string) string {
	if IsInSubdirectory(path) {
		return ParentPrefix
	}
	return ""
}
