// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an integer axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Box is an axis-aligned bounding box in surface units.
// Edges are stored directly so collision rules can be stated edge by edge.
type Box struct {
	Left, Top, Right, Bottom float64
}

// BoxAround returns the box of the given half-extent centered at (cx, cy).
func BoxAround(cx, cy, half float64) Box {
	return Box{
		Left:   cx - half,
		Top:    cy - half,
		Right:  cx + half,
		Bottom: cy + half,
	}
}

// OverlapsX reports whether the horizontal extents overlap.
// Touching edges do not count as overlap.
func (b Box) OverlapsX(other Box) bool {
	return b.Right > other.Left && b.Left < other.Right
}

// OverlapsY reports whether the vertical extents overlap.
func (b Box) OverlapsY(other Box) bool {
	return b.Bottom > other.Top && b.Top < other.Bottom
}

// Intersects returns true if the boxes overlap on both axes.
func (b Box) Intersects(other Box) bool {
	return b.OverlapsX(other) && b.OverlapsY(other)
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
