package internal

import (
	"errors"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
)

// option is one entry of the configuration schema: where the value lives in
// the configuration tree, and how to store it in Options.
type option struct {
	path []string
	set  func(o *Options, v any) error
}

// key is the flattened name of the option, e.g. "tooltip_offset_left".
func (o option) key() string {
	return strings.Join(o.path, "_")
}

func path(segments ...string) []string { return segments }

var schema = []option{
	{path("bindto"), func(o *Options, v any) error {
		target, err := toBindTarget(v)
		if err != nil {
			return err
		}
		o.BindTo = target
		return nil
	}},

	{path("size", "width"), optionalFloat(func(o *Options) **float64 { return &o.Size.Width })},
	{path("size", "height"), optionalFloat(func(o *Options) **float64 { return &o.Size.Height })},

	{path("padding", "left"), float(func(o *Options) *float64 { return &o.Padding.Left })},
	{path("padding", "right"), float(func(o *Options) *float64 { return &o.Padding.Right })},
	{path("padding", "top"), float(func(o *Options) *float64 { return &o.Padding.Top })},
	{path("padding", "bottom"), float(func(o *Options) *float64 { return &o.Padding.Bottom })},

	{path("transition", "duration"), func(o *Options, v any) error {
		d, err := toDuration(v)
		if err != nil {
			return err
		}
		o.Transition.Duration = d
		return nil
	}},

	{path("color", "default"), color(func(o *Options) *ColorFunc { return &o.Color.Default })},
	{path("color", "over"), color(func(o *Options) *ColorFunc { return &o.Color.Over })},

	{path("bar", "styleclass"), str(func(o *Options) *string { return &o.Bar.StyleClass })},
	{path("bar", "styleoverclass"), str(func(o *Options) *string { return &o.Bar.StyleOverClass })},
	{path("bar", "height"), optionalFloat(func(o *Options) **float64 { return &o.Bar.Height })},

	{path("tooltip", "show"), func(o *Options, v any) error {
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("want bool")
		}
		o.Tooltip.Show = b
		return nil
	}},
	{path("tooltip", "format"), func(o *Options, v any) error {
		fn, err := toTooltipFunc(v)
		if err != nil {
			return err
		}
		o.Tooltip.Format = fn
		return nil
	}},
	{path("tooltip", "offset", "left"), float(func(o *Options) *float64 { return &o.Tooltip.Offset.Left })},
	{path("tooltip", "offset", "top"), float(func(o *Options) *float64 { return &o.Tooltip.Offset.Top })},

	{path("tick", "format"), func(o *Options, v any) error {
		fn, err := toTickFormatFunc(v)
		if err != nil {
			return err
		}
		o.Tick.Format = fn
		return nil
	}},
	{path("tick", "count"), func(o *Options, v any) error {
		n, err := toInt(v)
		if err != nil {
			return err
		}
		o.Tick.Count = &n
		return nil
	}},
	{path("tick", "padding"), optionalFloat(func(o *Options) **float64 { return &o.Tick.Padding })},

	{path("data", "onclick"), event(func(o *Options) *EventFunc { return &o.Data.OnClick })},
	{path("data", "onover"), event(func(o *Options) *EventFunc { return &o.Data.OnOver })},
	{path("data", "onout"), event(func(o *Options) *EventFunc { return &o.Data.OnOut })},
	{path("data", "json"), func(o *Options, v any) error {
		records, ok := toRecords(v)
		if !ok {
			return fmt.Errorf("want a list of records")
		}
		o.Data.JSON = records
		return nil
	}},
	{path("data", "name"), str(func(o *Options) *string { return &o.Data.Name })},
	{path("data", "value"), str(func(o *Options) *string { return &o.Data.Value })},
	{path("data", "id"), str(func(o *Options) *string { return &o.Data.ID })},
}

// Resolve builds the Options of a chart. The call-site configuration takes
// precedence over the global one, which takes precedence over the schema
// defaults. Values of the wrong type are logged and ignored. The records are
// checked here so that rendering never sees a record without an id or value.
func Resolve(global, callSite Tree, logger *log.Logger) (Options, []Datum, error) {
	merged := Merge(Tree{}, global, callSite)

	opts := defaultOptions()
	for _, entry := range schema {
		v, ok := merged.Lookup(entry.path...)
		if !ok {
			continue
		}
		if err := entry.set(&opts, v); err != nil {
			logger.Warn("ignoring option", "key", entry.key(), "type", fmt.Sprintf("%T", v), "err", err)
		}
	}

	data, err := buildData(opts.Data.JSON, opts.Data, logger)
	if err != nil {
		return opts, nil, fmt.Errorf("invalid data: %w", err)
	}
	return opts, data, nil
}

func float(field func(*Options) *float64) func(*Options, any) error {
	return func(o *Options, v any) error {
		f, err := toNumber(v)
		if err != nil {
			return err
		}
		*field(o) = f
		return nil
	}
}

func optionalFloat(field func(*Options) **float64) func(*Options, any) error {
	return func(o *Options, v any) error {
		f, err := toNumber(v)
		if err != nil {
			return err
		}
		*field(o) = &f
		return nil
	}
}

func str(field func(*Options) *string) func(*Options, any) error {
	return func(o *Options, v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("want string")
		}
		*field(o) = s
		return nil
	}
}

func color(field func(*Options) *ColorFunc) func(*Options, any) error {
	return func(o *Options, v any) error {
		var resolved ColorFunc
		switch fn := v.(type) {
		case ColorFunc:
			resolved = fn
		case func(Datum) string:
			resolved = fn
		case string:
			resolved = func(Datum) string { return fn }
		}
		if resolved == nil {
			return fmt.Errorf("want a colour or a colour callback")
		}
		*field(o) = resolved
		return nil
	}
}

func event(field func(*Options) *EventFunc) func(*Options, any) error {
	return func(o *Options, v any) error {
		switch fn := v.(type) {
		case EventFunc:
			*field(o) = fn
		case func(*Chart, Datum, *html.Node):
			*field(o) = fn
		default:
			return fmt.Errorf("want an event callback")
		}
		if *field(o) == nil {
			*field(o) = func(*Chart, Datum, *html.Node) {}
		}
		return nil
	}
}

// toTooltipFunc accepts a callback or an html/template source executed with
// the Datum, e.g. "<b>{{.Name}}</b> {{.Value}}".
func toTooltipFunc(v any) (TooltipFunc, error) {
	switch fn := v.(type) {
	case TooltipFunc:
		if fn != nil {
			return fn, nil
		}
	case func(Datum) template.HTML:
		if fn != nil {
			return fn, nil
		}
	case string:
		tmpl, err := template.New("tooltip").Parse(fn)
		if err != nil {
			return nil, err
		}
		return func(d Datum) template.HTML {
			var b strings.Builder
			if err := tmpl.Execute(&b, d); err != nil {
				return template.HTML(template.HTMLEscapeString(err.Error()))
			}
			return template.HTML(b.String())
		}, nil
	}
	return nil, fmt.Errorf("want a tooltip callback or template")
}

// toTickFormatFunc accepts a callback or a fmt verb such as "%.0f%%".
func toTickFormatFunc(v any) (TickFormatFunc, error) {
	switch fn := v.(type) {
	case TickFormatFunc:
		if fn != nil {
			return fn, nil
		}
	case func(float64) string:
		if fn != nil {
			return fn, nil
		}
	case string:
		if !strings.Contains(fn, "%") {
			return nil, fmt.Errorf("format %q has no verb", fn)
		}
		return func(v float64) string { return fmt.Sprintf(fn, v) }, nil
	}
	return nil, fmt.Errorf("want a tick format callback or fmt verb")
}

func toNumber(v any) (float64, error) {
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if !finite(f) {
		return 0, fmt.Errorf("not finite: %v", f)
	}
	return f, nil
}

func toInt(v any) (int, error) {
	f, err := toNumber(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %v", f)
	}
	return int(f), nil
}

// toDuration accepts a time.Duration, a duration string, or milliseconds.
func toDuration(v any) (time.Duration, error) {
	var d time.Duration
	switch t := v.(type) {
	case time.Duration:
		d = t
	case string:
		parsed, err := time.ParseDuration(t)
		if err != nil {
			ms, numErr := strconv.ParseFloat(strings.TrimSpace(t), 64)
			if numErr != nil {
				return 0, err
			}
			parsed = time.Duration(ms * float64(time.Millisecond))
		}
		d = parsed
	default:
		ms, err := toNumber(v)
		if err != nil {
			return 0, err
		}
		d = time.Duration(ms * float64(time.Millisecond))
	}
	if d < 0 {
		return 0, errors.New("negative duration")
	}
	return d, nil
}
