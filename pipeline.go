package smarteye

import (
	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/layout"
	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/serialize"
)

// Pipeline provides a fluent interface for configuring one page's
// reconstruction. Each configuration method returns a new Pipeline instance,
// making it safe for concurrent use and allowing method chaining.
type Pipeline struct {
	elements   []model.LayoutElement
	pageWidth  float64
	pageHeight float64

	config     layout.Config
	serializer serialize.Config
}

// clone creates a copy of the Pipeline. The element snapshot is shared; it
// is immutable by contract.
func (p *Pipeline) clone() *Pipeline {
	copied := *p
	return &copied
}

// WithStrategy forces a specific ordering strategy instead of the
// profiler-driven automatic selection.
func (p *Pipeline) WithStrategy(strategy layout.Strategy) *Pipeline {
	next := p.clone()
	next.config.Strategy = strategy
	return next
}

// WithConfig replaces the whole pipeline configuration.
func (p *Pipeline) WithConfig(config layout.Config) *Pipeline {
	next := p.clone()
	next.config = config
	return next
}

// WithSerializerConfig replaces the text rendering configuration used by
// Text().
func (p *Pipeline) WithSerializerConfig(config serialize.Config) *Pipeline {
	next := p.clone()
	next.serializer = config
	return next
}

// Document runs the reconstruction and returns the structured result.
func (p *Pipeline) Document() (*model.StructuredDocument, error) {
	return layout.NewReconstructorWithConfig(p.config).Reconstruct(p.elements, p.pageWidth, p.pageHeight)
}

// Text runs the reconstruction and renders the result as escaped plain
// text in reading order.
func (p *Pipeline) Text() (string, error) {
	doc, err := p.Document()
	if err != nil {
		return "", err
	}
	return serialize.NewTextSerializerWithConfig(p.serializer).Serialize(doc), nil
}
