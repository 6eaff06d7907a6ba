package internal

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
)

// Version of the chart generator.
const Version = "1.0.0"

// Generator creates charts in a Document. It holds the global default
// options, applied under every chart's own configuration, and the list of
// charts created so far.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	doc       *Document
	logger    *log.Logger
	defaults  Tree
	instances []*Chart
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the logger used by the generator and its charts.
func WithLogger(logger *log.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator returns a Generator rendering into doc.
func NewGenerator(doc *Document, opts ...GeneratorOption) *Generator {
	g := &Generator{
		doc:      doc,
		logger:   log.Default(),
		defaults: Tree{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateBarcode resolves config over the global defaults, renders a new
// chart and records it in the instance list.
func (g *Generator) GenerateBarcode(config Tree) (*Chart, error) {
	options, data, err := Resolve(g.defaults, config, g.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to generate barcode: %w", err)
	}
	chart := newChart(g.doc, options, data, g.logger)
	g.instances = append(g.instances, chart)

	g.logger.Debug("generated barcode", "bindto", options.BindTo, "records", len(data), "instance", len(g.instances)-1)
	return chart, nil
}

// Defaults returns the global default options. When called with a non-nil
// tree, that tree replaces the defaults first; it is not merged.
func (g *Generator) Defaults(options ...Tree) Tree {
	if len(options) > 0 && options[0] != nil {
		g.defaults = options[0]
	}
	return g.defaults
}

// Instances returns the charts created so far, oldest first.
func (g *Generator) Instances() []*Chart {
	return slices.Clone(g.instances)
}

// Reset forgets the global defaults and the created charts. The charts stay
// in the document.
func (g *Generator) Reset() {
	g.defaults = Tree{}
	g.instances = nil
}

// Document returns the document charts are rendered into.
func (g *Generator) Document() *Document {
	return g.doc
}
