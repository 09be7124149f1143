package model

import "math"

// Point represents a 2D point in page pixel space.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// WeightedDistance calculates a distance where the horizontal and vertical
// components are scaled independently. It is used for anchor/child matching,
// where vertical proximity matters more than horizontal proximity.
func (p Point) WeightedDistance(other Point, xWeight, yWeight float64) float64 {
	dx := (p.X - other.X) * xWeight
	dy := (p.Y - other.Y) * yWeight
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box in page pixel space. The origin is the
// top-left corner of the page: Y grows downward, as produced by the layout
// detector on scanned page images. A valid box has X1 < X2 and Y1 < Y2.
type BBox struct {
	X1 float64 // Left
	Y1 float64 // Top
	X2 float64 // Right
	Y2 float64 // Bottom
}

// NewBBox creates a bounding box from corner coordinates.
func NewBBox(x1, y1, x2, y2 float64) BBox {
	return BBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// NewBBoxFromPoints creates a bounding box spanning two points.
func NewBBoxFromPoints(p1, p2 Point) BBox {
	return BBox{
		X1: math.Min(p1.X, p2.X),
		Y1: math.Min(p1.Y, p2.Y),
		X2: math.Max(p1.X, p2.X),
		Y2: math.Max(p1.Y, p2.Y),
	}
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.X2 - b.X1
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y2 - b.Y1
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X1
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X2
}

// Top returns the top edge Y coordinate (smallest Y, closest to the top of the page)
func (b BBox) Top() float64 {
	return b.Y1
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y2
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: (b.X1 + b.X2) / 2,
		Y: (b.Y1 + b.Y2) / 2,
	}
}

// CenterX returns the horizontal center coordinate
func (b BBox) CenterX() float64 {
	return (b.X1 + b.X2) / 2
}

// CenterY returns the vertical center coordinate
func (b BBox) CenterY() float64 {
	return (b.Y1 + b.Y2) / 2
}

// Valid reports whether the box has positive width and height.
func (b BBox) Valid() bool {
	return b.X1 < b.X2 && b.Y1 < b.Y2
}

// Contains checks if a point is inside the bounding box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.X1 && p.X <= b.X2 &&
		p.Y >= b.Y1 && p.Y <= b.Y2
}

// Intersects checks if two bounding boxes intersect
func (b BBox) Intersects(other BBox) bool {
	return !(b.X2 < other.X1 ||
		b.X1 > other.X2 ||
		b.Y2 < other.Y1 ||
		b.Y1 > other.Y2)
}

// HorizontalOverlap returns the width of the horizontal range shared with the
// interval [xStart, xEnd), or 0 if they are disjoint.
func (b BBox) HorizontalOverlap(xStart, xEnd float64) float64 {
	left := math.Max(b.X1, xStart)
	right := math.Min(b.X2, xEnd)
	if right <= left {
		return 0
	}
	return right - left
}

// Clamp restricts the box to the page rectangle [0,pageWidth] x [0,pageHeight].
// It returns false when the box lies entirely outside the page, in which case
// no meaningful clamped box exists.
func (b BBox) Clamp(pageWidth, pageHeight float64) (BBox, bool) {
	clamped := BBox{
		X1: math.Max(b.X1, 0),
		Y1: math.Max(b.Y1, 0),
		X2: math.Min(b.X2, pageWidth),
		Y2: math.Min(b.Y2, pageHeight),
	}
	if !clamped.Valid() {
		return BBox{}, false
	}
	return clamped, true
}

// Union returns the smallest box containing both boxes.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X1: math.Min(b.X1, other.X1),
		Y1: math.Min(b.Y1, other.Y1),
		X2: math.Max(b.X2, other.X2),
		Y2: math.Max(b.Y2, other.Y2),
	}
}
