package dom

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a handle on one element of a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// Is reports whether both handles point at the same element.
func (e *Element) Is(other *Element) bool {
	return other != nil && e.node == other.node
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(key, value string) {
	for i, a := range e.node.Attr {
		if a.Key == key {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr drops an attribute if present.
func (e *Element) RemoveAttr(key string) {
	kept := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Key != key {
			kept = append(kept, a)
		}
	}
	e.node.Attr = kept
}

// Data returns the data-<name> attribute, the dataset lookup of the page scripts.
func (e *Element) Data(name string) string {
	v, _ := e.Attr("data-" + name)
	return v
}

func (e *Element) classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class list once.
func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	e.SetAttr("class", strings.TrimSpace(strings.Join(append(e.classes(), name), " ")))
}

// RemoveClass removes every occurrence of name from the class list.
func (e *Element) RemoveClass(name string) {
	var kept []string
	for _, c := range e.classes() {
		if c != name {
			kept = append(kept, c)
		}
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

// InnerHTML renders the element's children.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

// OuterHTML renders the element itself.
func (e *Element) OuterHTML() string {
	var sb strings.Builder
	_ = html.Render(&sb, e.node)
	return sb.String()
}

// SetInnerHTML replaces the children with the parsed markup.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	e.clear()
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// Text returns the concatenated text of all descendants.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

// SetText replaces the children with a single text node.
func (e *Element) SetText(text string) {
	e.clear()
	e.node.AppendChild(newText(text))
}

func (e *Element) clear() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
}

// style parses the inline style attribute into ordered declarations.
func (e *Element) style() [][2]string {
	raw, _ := e.Attr("style")
	var decls [][2]string
	for _, part := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		decls = append(decls, [2]string{name, strings.TrimSpace(value)})
	}
	return decls
}

// Style returns an inline style property, or "".
func (e *Element) Style(property string) string {
	for _, d := range e.style() {
		if d[0] == property {
			return d[1]
		}
	}
	return ""
}

// SetStyle sets an inline style property; an empty value removes it.
func (e *Element) SetStyle(property, value string) {
	var out []string
	found := false
	for _, d := range e.style() {
		if d[0] == property {
			found = true
			if value == "" {
				continue
			}
			d[1] = value
		}
		out = append(out, d[0]+": "+d[1])
	}
	if !found && value != "" {
		out = append(out, property+": "+value)
	}
	if len(out) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", strings.Join(out, "; "))
}

// Display returns the inline display value ("" when unset).
func (e *Element) Display() string {
	return e.Style("display")
}

// SetDisplay sets the inline display value.
func (e *Element) SetDisplay(value string) {
	e.SetStyle("display", value)
}

// Hidden reports whether the element is hidden through its inline style.
func (e *Element) Hidden() bool {
	return e.Display() == "none"
}

// Value returns the current value of an input, textarea or select.
func (e *Element) Value() string {
	switch {
	case isElement(e.node, atom.Textarea):
		return e.Text()
	case isElement(e.node, atom.Select):
		opts := e.QueryAll("option")
		for _, o := range opts {
			if _, ok := o.Attr("selected"); ok {
				return o.optionValue()
			}
		}
		if len(opts) > 0 {
			return opts[0].optionValue()
		}
		return ""
	default:
		v, _ := e.Attr("value")
		return v
	}
}

// SetValue updates an input, textarea or select.
func (e *Element) SetValue(value string) {
	switch {
	case isElement(e.node, atom.Textarea):
		e.SetText(value)
	case isElement(e.node, atom.Select):
		for _, o := range e.QueryAll("option") {
			if o.optionValue() == value {
				o.SetAttr("selected", "")
			} else {
				o.RemoveAttr("selected")
			}
		}
	default:
		e.SetAttr("value", value)
	}
}

func (e *Element) optionValue() string {
	if v, ok := e.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(e.Text())
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Closest returns the element itself or its nearest ancestor matching selector.
func (e *Element) Closest(selector string) *Element {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && sel.Match(n) {
			return e.doc.wrap(n)
		}
	}
	return nil
}

// Query returns the first descendant matching selector, or nil.
func (e *Element) Query(selector string) *Element {
	return e.doc.wrap(queryFirst(e.node, selector))
}

// QueryAll returns every descendant matching selector.
func (e *Element) QueryAll(selector string) []*Element {
	return e.doc.wrapAll(queryAll(e.node, selector))
}
