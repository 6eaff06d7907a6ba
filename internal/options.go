package internal

import (
	"html/template"
	"strconv"
	"time"

	"golang.org/x/net/html"
)

// ColorFunc returns the stroke colour of a tick.
type ColorFunc func(d Datum) string

// TooltipFunc returns the HTML content of the tooltip for a datum.
type TooltipFunc func(d Datum) template.HTML

// TickFormatFunc returns the axis label of a tick value.
type TickFormatFunc func(v float64) string

// EventFunc is called on pointer events over a tick with the chart, the datum
// under the pointer and the tick element.
type EventFunc func(c *Chart, d Datum, element *html.Node)

// Options holds the resolved configuration of a chart. Pointer fields are
// optional and nil means the value is computed when rendering.
type Options struct {
	BindTo     BindTarget
	Size       SizeOptions
	Padding    PaddingOptions
	Transition TransitionOptions
	Color      ColorOptions
	Bar        BarOptions
	Tooltip    TooltipOptions
	Tick       TickOptions
	Data       DataOptions
}

type SizeOptions struct {
	Width  *float64 // Defaults to the container width.
	Height *float64 // Defaults to a fixed height.
}

type PaddingOptions struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

type TransitionOptions struct {
	Duration time.Duration // Zero disables transitions.
}

type ColorOptions struct {
	Default ColorFunc
	Over    ColorFunc
}

type BarOptions struct {
	StyleClass     string
	StyleOverClass string
	Height         *float64 // Resting height of a tick in pixels.
}

type TooltipOptions struct {
	Show   bool
	Format TooltipFunc // Defaults to "<span>name: value</span>".
	Offset OffsetOptions
}

type OffsetOptions struct {
	Left float64
	Top  float64
}

type TickOptions struct {
	Format  TickFormatFunc
	Count   *int
	Padding *float64
}

// DataOptions holds the records and the names of the fields to read from them.
type DataOptions struct {
	JSON    []Record
	Name    string
	Value   string
	ID      string
	OnClick EventFunc
	OnOver  EventFunc
	OnOut   EventFunc
}

// TickCount returns the configured tick count or the default.
func (o TickOptions) TickCount() int {
	if o.Count != nil {
		return *o.Count
	}
	return defaultTickCount
}

// TickPadding returns the configured tick padding or the default.
func (o TickOptions) TickPadding() float64 {
	if o.Padding != nil {
		return *o.Padding
	}
	return defaultTickPadding
}

func defaultOptions() Options {
	noop := func(*Chart, Datum, *html.Node) {}
	return Options{
		BindTo: BindSelector("#barcode"),
		Transition: TransitionOptions{
			Duration: 350 * time.Millisecond,
		},
		Color: ColorOptions{
			Default: func(Datum) string { return "black" },
			Over:    func(Datum) string { return "red" },
		},
		Bar: BarOptions{
			StyleClass:     "barcode-bar",
			StyleOverClass: "barcode-barover",
		},
		Tooltip: TooltipOptions{
			Show:   true,
			Format: defaultTooltip,
		},
		Tick: TickOptions{
			Format: formatNumber,
		},
		Data: DataOptions{
			Name:    "name",
			Value:   "value",
			ID:      "id",
			OnClick: noop,
			OnOver:  noop,
			OnOut:   noop,
		},
	}
}

func defaultTooltip(d Datum) template.HTML {
	return template.HTML("<span>" + template.HTMLEscapeString(d.Name) + ": " + formatNumber(d.Value) + "</span>")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
