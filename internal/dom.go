package internal

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

//go:embed barcode.css
var stylesheet string

const blankPage = `<!DOCTYPE html><html><head><meta charset="utf-8"><title>barcode</title></head><body></body></html>`

// EventType names a pointer event delivered to an element.
type EventType string

const (
	EventMouseOver EventType = "mouseover"
	EventMouseOut  EventType = "mouseout"
	EventClick     EventType = "click"
)

// Event is delivered to listeners registered with Document.On.
type Event struct {
	Type   EventType
	Target *html.Node
}

// Listener handles an Event.
type Listener func(Event)

// Selection is an ordered set of matched elements.
type Selection []*html.Node

// Node returns the first element of the selection, or nil.
func (s Selection) Node() *html.Node {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

// Empty reports whether nothing was matched.
func (s Selection) Empty() bool {
	return len(s) == 0
}

// Document is the page charts render into. It stands in for the browser: it
// holds the element tree and the viewport size, resolves selectors, and
// delivers pointer and resize events to registered listeners.
//
// A Document is not safe for concurrent use.
type Document struct {
	root *html.Node
	head *html.Node
	body *html.Node

	width  float64
	height float64

	listeners map[*html.Node]map[EventType]Listener
	resizeKey []any
	resize    map[any]func()
}

// NewDocument returns an empty page with the given viewport size.
func NewDocument(width, height float64) *Document {
	doc, err := ParseDocument(strings.NewReader(blankPage), width, height)
	if err != nil {
		// The blank page always parses.
		panic(err)
	}
	return doc
}

// ParseDocument reads a host page. Charts can then bind to its elements.
func ParseDocument(reader io.Reader, width, height float64) (*Document, error) {
	root, err := htmlquery.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	head := htmlquery.FindOne(root, "//head")
	body := htmlquery.FindOne(root, "//body")
	if head == nil || body == nil {
		return nil, fmt.Errorf("page has no head or body")
	}

	if htmlquery.FindOne(head, "style[@data-barcode]") == nil {
		style := makeElement("style")
		setAttr(style, "data-barcode", "")
		style.AppendChild(makeText(stylesheet))
		head.AppendChild(style)
	}

	return &Document{
		root:      root,
		head:      head,
		body:      body,
		width:     width,
		height:    height,
		listeners: map[*html.Node]map[EventType]Listener{},
		resize:    map[any]func(){},
	}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Body returns the body element.
func (d *Document) Body() *html.Node { return d.body }

// Viewport returns the window size.
func (d *Document) Viewport() (width, height float64) {
	return d.width, d.height
}

// Select returns the elements matching selector, in document order.
// Selectors starting with "/" or "(" are XPath, anything else is CSS.
func (d *Document) Select(selector string) (Selection, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, nil
	}
	if strings.HasPrefix(selector, "/") || strings.HasPrefix(selector, "(") {
		nodes, err := htmlquery.QueryAll(d.root, selector)
		if err != nil {
			return nil, fmt.Errorf("invalid xpath %q: %w", selector, err)
		}
		return Selection(nodes), nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return Selection(sel.MatchAll(d.root)), nil
}

// ElementByID returns the attached element with the given id, or nil.
func (d *Document) ElementByID(id string) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if v, ok := getAttr(n, "id"); ok && v == id {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) *html.Node {
	return makeElement(tag)
}

// Contains reports whether n is attached to the document.
func (d *Document) Contains(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

// ClientWidth returns the laid out width of n. Without a layout engine this is
// the nearest explicit width, from an inline style or a width attribute, on n
// or one of its ancestors, falling back to the viewport width.
func (d *Document) ClientWidth(n *html.Node) float64 {
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if v, ok := getStyle(n, "width"); ok && !strings.HasSuffix(v, "%") {
			if w, ok := parsePx(v); ok {
				return w
			}
		}
		if v, ok := getAttr(n, "width"); ok {
			if w, ok := parsePx(v); ok {
				return w
			}
		}
	}
	return d.width
}

// On registers fn for events of type typ on n, replacing any previous
// listener for that type. A nil fn removes it.
func (d *Document) On(n *html.Node, typ EventType, fn Listener) {
	if fn == nil {
		delete(d.listeners[n], typ)
		return
	}
	if d.listeners[n] == nil {
		d.listeners[n] = map[EventType]Listener{}
	}
	d.listeners[n][typ] = fn
}

// Dispatch delivers an event to n. It reports whether a listener ran.
// Detached elements receive no events.
func (d *Document) Dispatch(n *html.Node, typ EventType) bool {
	if n == nil || !d.Contains(n) {
		return false
	}
	fn, ok := d.listeners[n][typ]
	if !ok {
		return false
	}
	fn(Event{Type: typ, Target: n})
	return true
}

// OnResize registers fn to run when the window is resized. Each key holds a
// single handler; registering again under the same key replaces it.
func (d *Document) OnResize(key any, fn func()) {
	if _, ok := d.resize[key]; !ok {
		d.resizeKey = append(d.resizeKey, key)
	}
	d.resize[key] = fn
}

// Resize changes the viewport size and runs the resize handlers in
// registration order.
func (d *Document) Resize(width, height float64) {
	d.width, d.height = width, height
	for _, key := range d.resizeKey {
		d.resize[key]()
	}
}

// release drops the listeners of n and its descendants.
func (d *Document) release(n *html.Node) {
	walk(n, func(c *html.Node) bool {
		delete(d.listeners, c)
		return true
	})
}

// Render writes the page as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// HTML returns the page as a string.
func (d *Document) HTML() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// walk visits n and its descendants in document order until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
