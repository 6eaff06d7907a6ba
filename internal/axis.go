package internal

import (
	"golang.org/x/net/html"
)

const (
	defaultTickCount   = 8
	defaultTickPadding = 8
	tickSize           = 6
)

// Axis draws a bottom-oriented axis for a LinearScale.
type Axis struct {
	Scale   *LinearScale
	Ticks   int                  // Approximate number of ticks.
	Padding float64              // Space between a tick mark and its label.
	Format  func(float64) string // Tick label.
}

// Draw replaces the content of g with the axis. The domain line runs along
// y = 0 and the labels hang below it.
func (a Axis) Draw(g *html.Node) {
	removeChildren(g)
	setAttr(g, "fill", "none")
	setAttr(g, "font-size", "10")
	setAttr(g, "text-anchor", "middle")

	r0, r1 := a.Scale.Range()
	domain := makeSVGElement("path")
	setAttr(domain, "class", "domain")
	setAttr(domain, "stroke", "currentColor")
	setAttr(domain, "d", "M"+px(r0)+","+px(tickSize)+"V0H"+px(r1)+"V"+px(tickSize))
	g.AppendChild(domain)

	for _, v := range a.Scale.Ticks(a.Ticks) {
		tick := makeSVGGroup("tick", translate(a.Scale.Apply(v), 0))
		setAttr(tick, "opacity", "1")

		line := makeSVGElement("line")
		setAttr(line, "stroke", "currentColor")
		setAttr(line, "y2", px(tickSize))
		tick.AppendChild(line)

		text := makeSVGElement("text")
		setAttr(text, "fill", "currentColor")
		setAttr(text, "y", px(tickSize+a.Padding))
		setAttr(text, "dy", "0.71em")
		text.AppendChild(makeText(a.Format(v)))
		tick.AppendChild(text)

		g.AppendChild(tick)
	}
}
