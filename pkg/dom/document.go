// Package dom is an in-memory model of a server-rendered qwitter page.
//
// A Document wraps a parsed HTML tree and adds what the page scripts rely
// on: CSS selector queries, data attributes, inline display toggling and
// element-scoped event listeners. Listeners run on the goroutine that calls
// Dispatch. Code that mutates the tree from any other goroutine (timers,
// scheme watchers) must do so inside Update. Once such a goroutine exists,
// readers go through Update as well: queries and attribute reads take no lock
// of their own, so they can be used inside Update without deadlocking.
package dom

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed page plus its event listeners.
type Document struct {
	mu   sync.Mutex
	root *html.Node
	url  *url.URL

	lmu       sync.RWMutex
	listeners map[*html.Node]map[string][]Handler
}

// Parse reads an HTML page served from pageURL.
func Parse(r io.Reader, pageURL *url.URL) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	if pageURL == nil {
		pageURL = &url.URL{Path: "/"}
	}
	return &Document{
		root:      root,
		url:       pageURL,
		listeners: make(map[*html.Node]map[string][]Handler),
	}, nil
}

// ParseString parses markup served from rawURL.
func ParseString(markup, rawURL string) (*Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	return Parse(strings.NewReader(markup), u)
}

// URL returns the address the page was loaded from.
func (d *Document) URL() *url.URL {
	u := *d.url
	return &u
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.Query("body")
}

// Query returns the first element matching selector, or nil.
func (d *Document) Query(selector string) *Element {
	return d.wrap(queryFirst(d.root, selector))
}

// QueryAll returns every element matching selector in document order.
func (d *Document) QueryAll(selector string) []*Element {
	return d.wrapAll(queryAll(d.root, selector))
}

// ByID returns the element with the given id attribute, or nil.
func (d *Document) ByID(id string) *Element {
	var found *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil && found == nil; c = c.NextSibling {
			if c.Type == html.ElementNode && attr(c, "id") == id {
				found = c
				return
			}
			walk(c)
		}
	}
	walk(d.root)
	return d.wrap(found)
}

// Update runs fn while holding the document lock. It is not reentrant.
func (d *Document) Update(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
}

// Render writes the current markup of the whole page.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// String renders the page, mainly for tests and debug logging.
func (d *Document) String() string {
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		return ""
	}
	return sb.String()
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

func (d *Document) wrapAll(nodes []*html.Node) []*Element {
	els := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		els = append(els, d.wrap(n))
	}
	return els
}

func compile(selector string) cascadia.Selector {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	return sel
}

func queryFirst(n *html.Node, selector string) *html.Node {
	sel := compile(selector)
	if sel == nil {
		return nil
	}
	return cascadia.Query(n, sel)
}

func queryAll(n *html.Node, selector string) []*html.Node {
	sel := compile(selector)
	if sel == nil {
		return nil
	}
	return cascadia.QueryAll(n, sel)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func newText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == a
}

// Handler reacts to an event dispatched on an element.
type Handler func(ctx context.Context, ev *Event) error
