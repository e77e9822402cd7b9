// Package geometry provides the value types shared by the scene and
// shell layers: points, sizes and rectangles in compositor space.
package geometry

import "fmt"

type Point struct {
	X, Y int
}

type Size struct {
	Width, Height int
}

// Rectangle is an axis-aligned region anchored at its top-left corner.
type Rectangle struct {
	TopLeft Point
	Size    Size
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

func (r Rectangle) String() string {
	return fmt.Sprintf("%s at %s", r.Size, r.TopLeft)
}
