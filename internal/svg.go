package internal

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func makeElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

func makeSVGElement(tag string) *html.Node {
	n := makeElement(tag)
	n.Namespace = "svg"
	return n
}

func makeSVGContainer(parent *html.Node, width, height float64) *html.Node {
	svg := makeSVGElement("svg")
	setAttr(svg, "xmlns", "http://www.w3.org/2000/svg")
	setAttr(svg, "width", px(width))
	setAttr(svg, "height", px(height))
	parent.AppendChild(svg)
	return svg
}

func makeSVGGroup(className, transform string) *html.Node {
	g := makeSVGElement("g")
	if className != "" {
		setAttr(g, "class", className)
	}
	if transform != "" {
		setAttr(g, "transform", transform)
	}
	return g
}

func makeText(value string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: value}
}

func translate(x, y float64) string {
	return "translate(" + px(x) + "," + px(y) + ")"
}

// px formats a coordinate with at most two decimals.
func px(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // No "-0".
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

func classList(n *html.Node) []string {
	v, _ := getAttr(n, "class")
	return strings.Fields(v)
}

func hasClass(n *html.Node, name string) bool {
	return slices.Contains(classList(n), name)
}

// setClassed adds or removes each whitespace separated class in names.
func setClassed(n *html.Node, names string, on bool) {
	classes := classList(n)
	for _, name := range strings.Fields(names) {
		i := slices.Index(classes, name)
		switch {
		case on && i < 0:
			classes = append(classes, name)
		case !on && i >= 0:
			classes = slices.Delete(classes, i, i+1)
		}
	}
	if len(classes) == 0 {
		removeAttr(n, "class")
		return
	}
	setAttr(n, "class", strings.Join(classes, " "))
}

// styleDecl is a parsed inline style attribute, in declaration order.
type styleDecl [][2]string

func parseStyle(n *html.Node) styleDecl {
	v, _ := getAttr(n, "style")
	var decl styleDecl
	for _, part := range strings.Split(v, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		decl = append(decl, [2]string{prop, strings.TrimSpace(value)})
	}
	return decl
}

func getStyle(n *html.Node, prop string) (string, bool) {
	for _, d := range parseStyle(n) {
		if d[0] == prop {
			return d[1], true
		}
	}
	return "", false
}

// setStyle sets an inline style property. An empty value removes it.
func setStyle(n *html.Node, prop, value string) {
	decl := parseStyle(n)
	i := slices.IndexFunc(decl, func(d [2]string) bool { return d[0] == prop })
	switch {
	case value == "" && i >= 0:
		decl = slices.Delete(decl, i, i+1)
	case value == "":
	case i >= 0:
		decl[i][1] = value
	default:
		decl = append(decl, [2]string{prop, value})
	}
	if len(decl) == 0 {
		removeAttr(n, "style")
		return
	}
	parts := make([]string, len(decl))
	for i, d := range decl {
		parts[i] = d[0] + ": " + d[1]
	}
	setAttr(n, "style", strings.Join(parts, "; "))
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// parsePx reads a length such as "640", "640px" or "640.5px".
func parsePx(v string) (float64, bool) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
