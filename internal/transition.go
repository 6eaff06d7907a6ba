package internal

import (
	"strconv"
	"time"

	"golang.org/x/net/html"
)

// transition changes attributes and styles of a node over a duration. The
// end values are written immediately and the duration is recorded as a CSS
// transition, so a newer transition on the same node replaces an older one.
type transition struct {
	node *html.Node
}

func transitionNode(n *html.Node, duration time.Duration) transition {
	if duration > 0 {
		setStyle(n, "transition", "all "+strconv.FormatInt(duration.Milliseconds(), 10)+"ms")
	} else {
		setStyle(n, "transition", "")
	}
	return transition{node: n}
}

func (t transition) attr(key, value string) transition {
	setAttr(t.node, key, value)
	return t
}

func (t transition) style(prop, value string) transition {
	setStyle(t.node, prop, value)
	return t
}
