package internal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

const fakeRecordCount = 24

// RunOptions controls what Run does with the rendered page.
type RunOptions struct {
	Data []Record // Records for the first chart, overriding its data.json.
	Fake bool     // Fill charts without data with fake records.
	Dev  bool     // Serve the page on Addr instead of writing it.
	Addr string
	HTML string // Path to write the page to.
	Img  string // Path to write a PNG screenshot to.
	Out  io.Writer
}

// Run renders every chart of the config into one page and outputs it.
func Run(ctx context.Context, config Config, options RunOptions, logger *log.Logger) error {
	doc, err := config.NewDocument()
	if err != nil {
		return err
	}

	gen := NewGenerator(doc, WithLogger(logger))
	gen.Defaults(config.Defaults)

	charts := config.Charts
	if len(charts) == 0 {
		charts = []Tree{{}}
	}
	for i, chart := range charts {
		if i == 0 && options.Data != nil {
			chart = Merge(chart, Tree{"data": Tree{"json": options.Data}})
		}
		if options.Fake {
			chart = withFakeData(gen.Defaults(), chart)
		}
		if _, err := gen.GenerateBarcode(chart); err != nil {
			return fmt.Errorf("chart %d: %w", i, err)
		}
	}

	if options.Dev {
		return DevRender(ctx, gen, options.Addr, logger)
	}

	wrote := false
	if options.HTML != "" {
		if err := os.WriteFile(options.HTML, []byte(doc.HTML()), 0644); err != nil {
			return fmt.Errorf("failed to write page: %w", err)
		}
		logger.Info("wrote page", "path", options.HTML)
		wrote = true
	}
	if options.Img != "" {
		buf, err := Render(ctx, doc)
		if err != nil {
			return err
		}
		if err := os.WriteFile(options.Img, buf, 0644); err != nil {
			return fmt.Errorf("failed to write image: %w", err)
		}
		logger.Info("wrote screenshot", "path", options.Img)
		wrote = true
	}
	if !wrote && options.Out != nil {
		return doc.Render(options.Out)
	}
	return nil
}

// withFakeData adds fake records to a chart that would otherwise have none,
// using the field names the chart is configured with.
func withFakeData(defaults, chart Tree) Tree {
	merged := Merge(defaults, chart)
	if v, ok := merged.Lookup("data", "json"); ok {
		if records, ok := toRecords(v); ok && len(records) > 0 {
			return chart
		}
	}

	fields := defaultOptions().Data
	for _, f := range []struct {
		key   string
		field *string
	}{
		{"id", &fields.ID},
		{"name", &fields.Name},
		{"value", &fields.Value},
	} {
		if s, ok := merged.Lookup("data", f.key); ok {
			if name, ok := s.(string); ok {
				*f.field = name
			}
		}
	}
	return Merge(chart, Tree{"data": Tree{"json": NewFakeRecords(fakeRecordCount, fields)}})
}
