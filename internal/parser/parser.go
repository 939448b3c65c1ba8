package parser

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// apiHintWords are the substrings that mark a script line as a potential
// API clue. Single-page search applications routinely embed their query
// endpoints in bundled JavaScript, so these crude markers find real
// endpoints surprisingly often.
var apiHintWords = []string{"/api/", "search", "query"}

// maxAPIHints caps the number of script clues collected per page to keep
// report notes scannable.
const maxAPIHints = 10

// PageScan contains the endpoint-relevant information extracted from one
// HTML page.
//
// Design decision: We return one result struct from a single parsing pass
// rather than separate extraction methods because:
//  1. Single pass over the DOM is more efficient
//  2. Related data can be collected together
//  3. Callers choose what to use
type PageScan struct {
	// Title is the page title from the <title> tag.
	Title string

	// FormActions are form action URLs resolved against the page URL,
	// in document order. Only forms that declare an action attribute
	// appear here.
	FormActions []string

	// RootedFormActions are the subset of form actions whose original
	// attribute value began with "/". These are the candidates a deep
	// scan promotes to secondary probe targets.
	RootedFormActions []string

	// APIHints are lines from inline script blocks that mention
	// API-like substrings. Informational only, never auto-probed.
	APIHints []string
}

// Parser extracts endpoint hints from HTML content.
type Parser struct {
	// base is the URL of the page being parsed, used for resolving
	// relative form actions.
	base *url.URL
}

// New creates a Parser for a page at the given URL.
// The URL is used to resolve relative form actions.
func New(pageURL string) (*Parser, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	return &Parser{base: u}, nil
}

// Parse reads HTML content and extracts form actions and script hints.
// html.Parse is tolerant of malformed markup, so Parse only fails on
// reader errors.
func (p *Parser) Parse(content io.Reader) (*PageScan, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	scan := &PageScan{
		FormActions:       make([]string, 0),
		RootedFormActions: make([]string, 0),
		APIHints:          make([]string, 0),
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			p.processElement(n, scan)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return scan, nil
}

// processElement handles one HTML element node.
func (p *Parser) processElement(n *html.Node, scan *PageScan) {
	switch n.Data {
	case "title":
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode && scan.Title == "" {
			scan.Title = strings.TrimSpace(n.FirstChild.Data)
		}

	case "form":
		action := strings.TrimSpace(getAttr(n, "action"))
		if action == "" {
			return
		}
		resolved := p.resolve(action)
		if resolved == "" {
			return
		}
		scan.FormActions = append(scan.FormActions, resolved)
		if strings.HasPrefix(action, "/") {
			scan.RootedFormActions = append(scan.RootedFormActions, resolved)
		}

	case "script":
		// Only inline script bodies carry endpoint clues; external
		// sources would need another fetch, which is out of scope.
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			p.collectAPIHints(n.FirstChild.Data, scan)
		}
	}
}

// collectAPIHints scans inline script text line by line for API-like
// substrings and records matching lines as hints.
func (p *Parser) collectAPIHints(script string, scan *PageScan) {
	if !containsAny(strings.ToLower(script), apiHintWords) {
		return
	}

	for _, line := range strings.Split(script, "\n") {
		if len(scan.APIHints) >= maxAPIHints {
			return
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		if !containsAny(lower, apiHintWords) {
			continue
		}
		// Require something URL-ish on the line, otherwise plain prose
		// mentioning "search" floods the hints.
		if !strings.Contains(trimmed, "http") && !strings.Contains(trimmed, "/") {
			continue
		}
		scan.APIHints = append(scan.APIHints, truncate(trimmed, 120))
	}
}

// resolve resolves a form action against the page URL.
// Unresolvable or non-HTTP actions yield the empty string.
func (p *Parser) resolve(action string) string {
	if strings.HasPrefix(action, "javascript:") || strings.HasPrefix(action, "mailto:") || action == "#" {
		return ""
	}

	u, err := url.Parse(action)
	if err != nil {
		return ""
	}

	resolved := p.base.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// truncate shortens s to at most n bytes, appending an ellipsis marker
// when anything was cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
