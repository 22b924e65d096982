package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSurfaceUnavailable is returned when the host cannot provide a usable
// drawing surface.
var ErrSurfaceUnavailable = errors.New("core: drawing surface unavailable")

// Smallest screen a game can be drawn on.
const (
	MinScreenW = 20
	MinScreenH = 10
)

// Cell is a single character position on a Screen.
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
	// Transparent cells have never been painted since the last Clear.
	// Overlay hosts show their own content through them.
	Transparent bool
}

var blankCell = Cell{Rune: ' ', Transparent: true}

// Screen is a 2D cell buffer for rendering game graphics.
// It decouples game rendering from the terminal, allowing games to draw
// using simple rune operations while the platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

// AcquireScreen creates a screen after checking the host can fit one.
func AcquireScreen(width, height int) (*Screen, error) {
	if width < MinScreenW || height < MinScreenH {
		return nil, fmt.Errorf("%w: %dx%d is below %dx%d", ErrSurfaceUnavailable, width, height, MinScreenW, MinScreenH)
	}
	return NewScreen(width, height), nil
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions. Content is discarded; the next
// frame repaints everything anyway.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.allocate()
	s.Clear()
}

// Clear resets every cell to a transparent blank.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blankCell
		}
	}
}

// Fill paints every cell with r on the given background.
func (s *Screen) Fill(r rune, bg Color) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: r, Bg: bg}
		}
	}
}

// Set places a rune at the given position, keeping the cell background.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune, fg Color) {
	if !s.inBounds(x, y) {
		return
	}
	c := &s.cells[y][x]
	c.Rune = r
	c.Fg = fg
	c.Transparent = false
}

// SetCell replaces the whole cell at the given position.
func (s *Screen) SetCell(x, y int, c Cell) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y][x] = c
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inBounds(x, y) {
		return blankCell
	}
	return s.cells[y][x]
}

func (s *Screen) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, fg Color) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r, fg)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, fg Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text, fg)
}

// DrawRect fills a rectangular area with the given rune and colors.
func (s *Screen) DrawRect(r Rect, fill rune, fg, bg Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetCell(x, y, Cell{Rune: fill, Fg: fg, Bg: bg})
		}
	}
}

// DrawBox draws a single-line border along the edges of r.
func (s *Screen) DrawBox(r Rect, fg Color) {
	// Corners
	s.Set(r.X, r.Y, '┌', fg)
	s.Set(r.Right()-1, r.Y, '┐', fg)
	s.Set(r.X, r.Bottom()-1, '└', fg)
	s.Set(r.Right()-1, r.Bottom()-1, '┘', fg)

	// Horizontal edges
	for x := r.X + 1; x < r.Right()-1; x++ {
		s.Set(x, r.Y, '─', fg)
		s.Set(x, r.Bottom()-1, '─', fg)
	}

	// Vertical edges
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.Set(r.X, y, '│', fg)
		s.Set(r.Right()-1, y, '│', fg)
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (s *Screen) DrawHLine(x, y, length int, r rune, fg, bg Color) {
	s.DrawRect(NewRect(x, y, length, 1), r, fg, bg)
}

// String converts the screen buffer to plain text, one row per line.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
