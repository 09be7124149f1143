//go:build ocr

// Package ocr recognizes text inside detected element regions of a scanned
// worksheet page, producing the (element id, text, confidence) triples the
// reconstruction pipeline consumes.
//
// This implementation wraps the Tesseract OCR engine via gosseract and is
// compiled in with the "ocr" build tag:
//
//	go build -tags ocr
//
// It requires Tesseract to be installed on the system. On macOS, install
// via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"golang.org/x/image/draw"

	"github.com/Smart-Eye-by-Friends/SmartEye-OCR-v0.1-sub004/model"
)

// Client wraps Tesseract for per-region recognition.
type Client struct {
	client *gosseract.Client
	config Config
}

// New creates an OCR client with default configuration.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an OCR client with custom configuration.
func NewWithConfig(config Config) (*Client, error) {
	client := gosseract.NewClient()
	if config.Language != "" {
		if err := client.SetLanguage(config.Language); err != nil {
			client.Close()
			return nil, fmt.Errorf("set language %q: %w", config.Language, err)
		}
	}
	// Element regions are single blocks; full page segmentation only
	// invites Tesseract to re-discover layout we already know.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("set page segmentation mode: %w", err)
	}
	return &Client{client: client, config: config}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for recognition. Multiple languages can
// be specified as a "+" separated string (e.g. "eng+fra").
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// RecognizeRegion crops one element's bounding box out of the page image
// and recognizes its text. Small crops are upscaled first.
func (c *Client) RecognizeRegion(page image.Image, element model.LayoutElement) (Result, error) {
	crop, err := c.cropRegion(page, element)
	if err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, crop); err != nil {
		return Result{}, fmt.Errorf("element %d: encode crop: %w", element.ID, err)
	}
	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return Result{}, fmt.Errorf("element %d: set image: %w", element.ID, err)
	}

	text, err := c.client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("element %d: recognize: %w", element.ID, err)
	}

	return Result{
		ElementID:  element.ID,
		Text:       strings.TrimSpace(text),
		Confidence: c.meanWordConfidence(),
	}, nil
}

// RecognizeElements recognizes every given element region against the page
// image. Failed regions fail the whole call; partial OCR input would skew
// confidence fusion downstream.
func (c *Client) RecognizeElements(page image.Image, elements []model.LayoutElement) ([]Result, error) {
	results := make([]Result, 0, len(elements))
	for _, e := range elements {
		r, err := c.RecognizeRegion(page, e)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// cropRegion extracts the element's bounding box from the page image,
// upscaling it when it is too small for reliable recognition.
func (c *Client) cropRegion(page image.Image, element model.LayoutElement) (image.Image, error) {
	bounds := page.Bounds()
	rect := image.Rect(
		int(math.Floor(element.BBox.X1)),
		int(math.Floor(element.BBox.Y1)),
		int(math.Ceil(element.BBox.X2)),
		int(math.Ceil(element.BBox.Y2)),
	).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("element %d: region %v outside page image %v", element.ID, element.BBox, bounds)
	}

	crop := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(crop, crop.Bounds(), page, rect.Min, draw.Src)

	if c.config.UpscaleFactor > 1 && rect.Dy() < c.config.MinRegionHeight {
		scaled := image.NewRGBA(image.Rect(0, 0, rect.Dx()*c.config.UpscaleFactor, rect.Dy()*c.config.UpscaleFactor))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), crop, crop.Bounds(), draw.Src, nil)
		return scaled, nil
	}
	return crop, nil
}

// meanWordConfidence averages Tesseract's per-word confidences for the image
// currently loaded in the client, normalized to [0,1]. A region with no
// recognized words has zero confidence.
func (c *Client) meanWordConfidence() float64 {
	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	mean := sum / float64(len(boxes)) / 100
	return math.Min(math.Max(mean, 0), 1)
}
