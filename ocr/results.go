package ocr

import "github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"

// Result is the recognized text for one element region, keyed by the
// element id assigned by the layout detector.
type Result struct {
	ElementID  int
	Text       string
	Confidence float64
}

// Config controls region recognition.
type Config struct {
	// Language is the Tesseract language string. Multiple languages can
	// be combined with "+" (e.g. "eng+jpn").
	Language string

	// MinRegionHeight is the crop height, in pixels, below which the
	// region is upscaled before recognition. Question-number boxes on
	// scanned worksheets are often too small for reliable recognition at
	// native resolution.
	MinRegionHeight int

	// UpscaleFactor is the integer factor applied when a crop is below
	// MinRegionHeight.
	UpscaleFactor int
}

// DefaultConfig returns the default recognition configuration.
func DefaultConfig() Config {
	return Config{
		Language:        "eng",
		MinRegionHeight: 32,
		UpscaleFactor:   2,
	}
}

// Apply merges recognition results back onto their elements, returning a new
// slice. Elements without a result are copied unchanged; results without a
// matching element are ignored.
func Apply(elements []model.LayoutElement, results []Result) []model.LayoutElement {
	byID := make(map[int]Result, len(results))
	for _, r := range results {
		byID[r.ElementID] = r
	}

	merged := make([]model.LayoutElement, len(elements))
	for i, e := range elements {
		if r, ok := byID[e.ID]; ok {
			merged[i] = e.WithOCR(r.Text, r.Confidence)
		} else {
			merged[i] = e
		}
	}
	return merged
}
