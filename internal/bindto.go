package internal

import (
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
)

const (
	defaultClassName     = "bg"
	defaultBindToElement = "#chart"
)

type bindKind int

const (
	bindSelector bindKind = iota
	bindElement
	bindSelection
)

// BindTarget is where a chart is rendered: a selector, an element, or an
// existing selection, plus the class name given to the container.
type BindTarget struct {
	kind      bindKind
	selector  string
	element   *html.Node
	selection Selection

	ClassName string
}

// BindSelector binds to the first element matching a CSS or XPath selector.
func BindSelector(selector string) BindTarget {
	return BindTarget{kind: bindSelector, selector: selector, ClassName: defaultClassName}
}

// BindElement binds to the given element.
func BindElement(n *html.Node) BindTarget {
	return BindTarget{kind: bindElement, element: n, ClassName: defaultClassName}
}

// BindSelection binds to the first element of a selection.
func BindSelection(s Selection) BindTarget {
	return BindTarget{kind: bindSelection, selection: s, ClassName: defaultClassName}
}

func (b BindTarget) String() string {
	switch b.kind {
	case bindElement:
		return "element"
	case bindSelection:
		return fmt.Sprintf("selection(%d)", len(b.selection))
	}
	return b.selector
}

// resolve returns the container element, or nil when nothing matches.
func (b BindTarget) resolve(doc *Document, logger *log.Logger) *html.Node {
	switch b.kind {
	case bindElement:
		return b.element
	case bindSelection:
		return b.selection.Node()
	}
	sel, err := doc.Select(b.selector)
	if err != nil {
		logger.Warn("cannot select bind target", "bindto", b.selector, "err", err)
		return nil
	}
	return sel.Node()
}

// toBindTarget accepts a selector string, an element, a selection, or a
// mapping with "element" and "classname" keys.
func toBindTarget(v any) (BindTarget, error) {
	switch t := v.(type) {
	case BindTarget:
		return t, nil
	case string:
		return BindSelector(t), nil
	case *html.Node:
		return BindElement(t), nil
	case Selection:
		return BindSelection(t), nil
	case []*html.Node:
		return BindSelection(Selection(t)), nil
	}

	m, ok := asTree(v)
	if !ok {
		return BindTarget{}, fmt.Errorf("unsupported bind target %T", v)
	}
	target := BindSelector(defaultBindToElement)
	if element, ok := m.Lookup("element"); ok && element != "" {
		if _, nested := asTree(element); nested {
			return BindTarget{}, fmt.Errorf("nested bind target")
		}
		var err error
		if target, err = toBindTarget(element); err != nil {
			return BindTarget{}, err
		}
	}
	target.ClassName = defaultClassName
	if classname, ok := m.Lookup("classname"); ok {
		name, ok := classname.(string)
		if !ok {
			return BindTarget{}, fmt.Errorf("classname must be a string, got %T", classname)
		}
		if name != "" {
			target.ClassName = name
		}
	}
	return target, nil
}
