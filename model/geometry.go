package model

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Offset returns the point moved by dx, dy
func (p Point) Offset(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// BBox represents a bounding box (rectangle)
type BBox struct {
	X      float64 // Left
	Y      float64 // Top (page coordinates grow downwards)
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Origin returns the top-left corner
func (b BBox) Origin() Point {
	return Point{X: b.X, Y: b.Y}
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Within reports whether b lies entirely inside outer
func (b BBox) Within(outer BBox) bool {
	return b.Left() >= outer.Left() && b.Right() <= outer.Right() &&
		b.Top() >= outer.Top() && b.Bottom() <= outer.Bottom()
}

// Intersects checks if two bounding boxes overlap with positive area
func (b BBox) Intersects(other BBox) bool {
	return b.Left() < other.Right() && other.Left() < b.Right() &&
		b.Top() < other.Bottom() && other.Top() < b.Bottom()
}

// Expand expands the bounding box by a margin on all sides
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		X:      b.X - margin,
		Y:      b.Y - margin,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

// Inset shrinks the bounding box by a margin on all sides
func (b BBox) Inset(margin float64) BBox {
	return b.Expand(-margin)
}

// SplitX cuts the box vertically at ratio of its width and returns the
// left and right parts.
func (b BBox) SplitX(ratio float64) (left, right BBox) {
	w := b.Width * ratio
	left = BBox{X: b.X, Y: b.Y, Width: w, Height: b.Height}
	right = BBox{X: b.X + w, Y: b.Y, Width: b.Width - w, Height: b.Height}
	return left, right
}
