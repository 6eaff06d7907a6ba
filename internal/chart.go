package internal

import (
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	defaultHeight = 125 // Height of the svg when size.height is unset, axis included.
	axisMargin    = 30  // Room below the plot for the axis.
	tooltipGap    = 5   // Horizontal distance between a tick and its tooltip.
	tooltipRise   = 80  // How far above the axis the tooltip sits.
)

type margins struct {
	top, right, bottom, left float64
}

// Chart is a barcode chart bound to a container of a Document. It is built
// and rendered by Generator.GenerateBarcode.
type Chart struct {
	options Options
	data    []Datum
	doc     *Document
	logger  *log.Logger

	container *html.Node
	svg       *html.Node
	plot      *html.Node
	axisGroup *html.Node
	tooltip   *html.Node

	margin margins
	width  float64
	height float64
	x      *LinearScale
	y      *LinearScale
	axis   Axis

	ticks map[string]*tick
	order []*tick

	// At most one tick is hovered at a time.
	hovered  string
	hovering bool
}

type tick struct {
	datum Datum
	node  *html.Node
}

func newChart(doc *Document, options Options, data []Datum, logger *log.Logger) *Chart {
	c := &Chart{
		options: options,
		data:    data,
		doc:     doc,
		logger:  logger,
	}
	c.init()
	c.render()
	return c
}

// init resolves the container, falling back to a new <div> in the body, and
// clears it.
func (c *Chart) init() {
	target := c.options.BindTo
	container := target.resolve(c.doc, c.logger)
	if container == nil {
		c.logger.Debug("bind target not found, appending a container to the body", "bindto", target)
		container = c.doc.CreateElement("div")
		c.doc.Body().AppendChild(container)
	}

	for n := container.FirstChild; n != nil; n = n.NextSibling {
		c.doc.release(n)
	}
	removeChildren(container)
	setClassed(container, target.ClassName, true)
	c.container = container
}

func (c *Chart) render() {
	o := c.options

	c.margin = margins{top: o.Padding.Top, bottom: axisMargin + o.Padding.Bottom}
	c.width = c.computeWidth()
	c.height = defaultHeight - axisMargin
	if o.Size.Height != nil {
		c.height = *o.Size.Height
	}

	c.svg = makeSVGContainer(c.container,
		c.width+c.margin.left+c.margin.right,
		c.height+c.margin.top+c.margin.bottom)
	c.plot = makeSVGGroup("", translate(c.margin.left, c.margin.top))
	c.svg.AppendChild(c.plot)

	c.tooltip = makeElement("div")
	setAttr(c.tooltip, "class", "tooltip")
	setStyle(c.tooltip, "opacity", "0")
	c.container.AppendChild(c.tooltip)

	lo, hi, ok := extent(c.data)
	if !ok {
		lo, hi = 0, 1
	}
	c.x = NewLinearScale(lo, hi, o.Padding.Left, c.width-o.Padding.Right).Nice(10)
	// The vertical scale is fixed; a tick's height does not encode data.
	c.y = NewLinearScale(0, 100, c.height, 0)

	c.axis = Axis{
		Scale:   c.x,
		Ticks:   o.Tick.TickCount(),
		Padding: o.Tick.TickPadding(),
		Format:  o.Tick.Format,
	}
	c.axisGroup = makeSVGGroup("x axis", translate(0, c.height))
	c.plot.AppendChild(c.axisGroup)
	c.axis.Draw(c.axisGroup)

	c.ticks = make(map[string]*tick, len(c.data))
	c.order = make([]*tick, 0, len(c.data))
	for _, d := range c.data {
		node := makeSVGElement("line")
		setAttr(node, "id", "bar_"+d.ID)
		setAttr(node, "data-id", d.ID)
		setClassed(node, o.Bar.StyleClass, true)
		x := px(c.x.Apply(d.Value))
		setAttr(node, "x1", x)
		setAttr(node, "x2", x)
		setAttr(node, "y1", px(c.restY()))
		setAttr(node, "y2", px(c.y.Apply(0)))
		setAttr(node, "stroke", o.Color.Default(d))
		c.plot.AppendChild(node)

		t := &tick{datum: d, node: node}
		c.ticks[d.ID] = t
		c.order = append(c.order, t)
		c.listen(t)
	}

	c.doc.OnResize(c, c.resized)
}

func (c *Chart) listen(t *tick) {
	c.doc.On(t.node, EventMouseOver, func(e Event) {
		c.hover(t)
		c.options.Data.OnOver(c, t.datum, e.Target)
	})
	c.doc.On(t.node, EventMouseOut, func(e Event) {
		c.out(t)
		c.options.Data.OnOut(c, t.datum, e.Target)
	})
	c.doc.On(t.node, EventClick, func(e Event) {
		c.options.Data.OnClick(c, t.datum, e.Target)
	})
}

// computeWidth returns the plot width: size.width or the container width,
// plus the horizontal padding.
func (c *Chart) computeWidth() float64 {
	o := c.options
	var w float64
	if o.Size.Width != nil {
		w = *o.Size.Width
	} else {
		w = c.doc.ClientWidth(c.container) - c.margin.left - c.margin.right
	}
	return w + o.Padding.Left + o.Padding.Right
}

// restY is the top of a tick that is not hovered.
func (c *Chart) restY() float64 {
	if h := c.options.Bar.Height; h != nil {
		return math.Max(0, c.height-*h)
	}
	return c.y.Apply(50)
}

// resized follows the container width. The domain and the data are kept.
func (c *Chart) resized() {
	if !c.doc.Contains(c.svg) {
		c.logger.Debug("chart is detached, ignoring resize", "bindto", c.options.BindTo)
		return
	}
	o := c.options
	c.width = c.computeWidth()
	setAttr(c.svg, "width", px(c.width+c.margin.left+c.margin.right))
	c.x.SetRange(o.Padding.Left, c.width-o.Padding.Right)
	c.axis.Draw(c.axisGroup)

	for _, t := range c.order {
		x := px(c.x.Apply(t.datum.Value))
		setAttr(t.node, "x1", x)
		setAttr(t.node, "x2", x)
	}
	if c.hovering && o.Tooltip.Show {
		c.placeTooltip(c.ticks[c.hovered])
	}
}

// TriggerHover highlights the tick of the datum with the given id, as if the
// pointer entered it. Unknown ids are ignored. A previously hovered tick is
// reverted first.
func (c *Chart) TriggerHover(id string) {
	t, ok := c.ticks[id]
	if !ok {
		c.logger.Debug("no datum to hover", "id", id)
		return
	}
	c.hover(t)
}

// TriggerOut reverts the tick of the datum with the given id, as if the
// pointer left it. Unknown ids are ignored.
func (c *Chart) TriggerOut(id string) {
	t, ok := c.ticks[id]
	if !ok {
		c.logger.Debug("no datum to revert", "id", id)
		return
	}
	c.out(t)
}

func (c *Chart) hover(t *tick) {
	if c.hovering && c.hovered != t.datum.ID {
		c.out(c.ticks[c.hovered])
	}

	o := c.options
	setClassed(t.node, o.Bar.StyleClass, false)
	setClassed(t.node, o.Bar.StyleOverClass, true)
	transitionNode(t.node, o.Transition.Duration).
		attr("y1", px(c.y.Apply(100))).
		attr("stroke", o.Color.Over(t.datum))

	if o.Tooltip.Show {
		c.fillTooltip(string(o.Tooltip.Format(t.datum)))
		c.placeTooltip(t)
		transitionNode(c.tooltip, o.Transition.Duration).style("opacity", "1")
	}
	c.hovered, c.hovering = t.datum.ID, true
}

func (c *Chart) out(t *tick) {
	o := c.options
	setClassed(t.node, o.Bar.StyleOverClass, false)
	setClassed(t.node, o.Bar.StyleClass, true)
	transitionNode(t.node, o.Transition.Duration).
		attr("y1", px(c.restY())).
		attr("stroke", o.Color.Default(t.datum))

	if c.hovering && c.hovered != t.datum.ID {
		// Another tick owns the tooltip.
		return
	}
	transitionNode(c.tooltip, o.Transition.Duration).style("opacity", "0")
	c.hovered, c.hovering = "", false
}

func (c *Chart) fillTooltip(content string) {
	removeChildren(c.tooltip)
	nodes, err := html.ParseFragment(strings.NewReader(content), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		c.logger.Warn("cannot parse tooltip, showing it as text", "err", err)
		c.tooltip.AppendChild(makeText(content))
		return
	}
	for _, n := range nodes {
		c.tooltip.AppendChild(n)
	}
}

// placeTooltip puts the tooltip beside the tick, on its left when the tick is
// in the right half of the chart.
func (c *Chart) placeTooltip(t *tick) {
	o := c.options
	x := c.x.Apply(t.datum.Value)
	left := c.margin.left + x + tooltipGap + o.Tooltip.Offset.Left
	transform := ""
	if x > c.width/2 {
		left = c.margin.left + x - tooltipGap - o.Tooltip.Offset.Left
		transform = "translateX(-100%)"
	}
	top := math.Max(0, c.height-tooltipRise) + c.margin.top + o.Tooltip.Offset.Top

	setStyle(c.tooltip, "left", px(left)+"px")
	setStyle(c.tooltip, "top", px(top)+"px")
	setStyle(c.tooltip, "transform", transform)
}

// Hovered returns the id of the hovered datum, if any.
func (c *Chart) Hovered() (string, bool) {
	return c.hovered, c.hovering
}

// Options returns the resolved configuration.
func (c *Chart) Options() Options { return c.options }

// Data returns the data in input order.
func (c *Chart) Data() []Datum { return slices.Clone(c.data) }

// Container returns the element the chart is rendered into.
func (c *Chart) Container() *html.Node { return c.container }

// Tooltip returns the tooltip element.
func (c *Chart) Tooltip() *html.Node { return c.tooltip }

// Tick returns the tick element of the datum with the given id, or nil.
func (c *Chart) Tick(id string) *html.Node {
	if t, ok := c.ticks[id]; ok {
		return t.node
	}
	return nil
}

// Scale returns the horizontal scale.
func (c *Chart) Scale() *LinearScale { return c.x }

// Size returns the plot width and height, without margins.
func (c *Chart) Size() (width, height float64) { return c.width, c.height }
