// Package geom implements the rasterizer's geometry front end: the fixed
// function steps between a shaded vertex and a tile-ready primitive —
// perspective divide, viewport mapping, face culling, bounding box and
// scissor clipping, and the edge-function point containment test used by
// the fragment back end.
package geom

import (
	"math"

	"github.com/chinmaygarde/sft-sub000/internal/vecmath"
)

// Epsilon is the tolerance used by PointInside's edge-function sign tests
// and by the top-left fill rule's on-edge and horizontal-edge checks.
const Epsilon = 1e-5

// IRect is an integer rectangle in pixel space, expressed as inclusive
// bounds [MinX, MaxX] x [MinY, MaxY].
type IRect struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns the rectangle's width in pixels.
func (r IRect) Width() int { return r.MaxX - r.MinX + 1 }

// Height returns the rectangle's height in pixels.
func (r IRect) Height() int { return r.MaxY - r.MinY + 1 }

// Empty reports whether the rectangle contains no pixels.
func (r IRect) Empty() bool { return r.MaxX < r.MinX || r.MaxY < r.MinY }

// Intersect returns the intersection of r and o. The result is Empty if
// the two rectangles do not overlap.
func (r IRect) Intersect(o IRect) IRect {
	return IRect{
		MinX: maxInt(r.MinX, o.MinX),
		MinY: maxInt(r.MinY, o.MinY),
		MaxX: minInt(r.MaxX, o.MaxX),
		MaxY: minInt(r.MaxY, o.MaxY),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// BoundingBox returns the integer pixel bounding box of three texel-space
// points, floored/ceiled outward so the box fully covers the triangle.
func BoundingBox(p1, p2, p3 vecmath.Vec2) IRect {
	minX := math.Floor(float64(min3(p1.X, p2.X, p3.X)))
	minY := math.Floor(float64(min3(p1.Y, p2.Y, p3.Y)))
	maxX := math.Ceil(float64(max3(p1.X, p2.X, p3.X)))
	maxY := math.Ceil(float64(max3(p1.Y, p2.Y, p3.Y)))
	return IRect{
		MinX: int(minX),
		MinY: int(minY),
		MaxX: int(maxX),
		MaxY: int(maxY),
	}
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// CullFace names the winding direction that a pipeline discards.
type CullFace uint8

const (
	CullFront CullFace = iota
	CullBack
)

// Winding names the front-facing winding order of a pipeline's triangles.
type Winding uint8

const (
	WindingClockwise Winding = iota
	WindingCounterClockwise
)

// ShouldCullFace reports whether the triangle a, b, c (in texel space, z
// ignored) should be discarded given the pipeline's cull face and winding
// convention.
func ShouldCullFace(face CullFace, winding Winding, a, b, c vecmath.Vec2) bool {
	ab := vecmath.Vec3{X: b.X - a.X, Y: b.Y - a.Y}
	ac := vecmath.Vec3{X: c.X - a.X, Y: c.Y - a.Y}
	dir := ab.Cross(ac).Z

	isFront := face == CullFront
	isCW := winding == WindingClockwise
	if !isFront {
		dir = -dir
	}
	if !isCW {
		dir = -dir
	}
	return dir < 0
}

// EdgeFunction evaluates the signed area of the parallelogram formed by the
// edge v0->v1 and the point p. Its sign indicates which side of the edge p
// lies on.
func EdgeFunction(v0, v1, p vecmath.Vec2) float32 {
	return (p.X-v0.X)*(v1.Y-v0.Y) - (p.Y-v0.Y)*(v1.X-v0.X)
}

// isTopLeftEdge implements the D3D/Vulkan top-left fill rule: an edge is
// "top" if it is horizontal and points right, or "left" if it points
// downward. Edge is the (v1-v0) displacement of the edge being tested.
func isTopLeftEdge(edge vecmath.Vec2) bool {
	isTop := vecmath.ApproxEqual(edge.Y, 0, Epsilon) && edge.X > 0
	isLeft := edge.Y > 0
	return isTop || isLeft
}

// PointInside performs the edge-function containment test for point p
// against triangle a, b, c, applying the top-left rule to resolve points
// that lie exactly on a shared edge so that adjacent triangles never both
// claim, or both reject, the same pixel. Triangles of either winding are
// covered; orientation-based discards are ShouldCullFace's job.
func PointInside(a, b, c, p vecmath.Vec2) bool {
	if EdgeFunction(a, b, c) < 0 {
		b, c = c, b
	}
	e0 := EdgeFunction(a, b, p)
	e1 := EdgeFunction(b, c, p)
	e2 := EdgeFunction(c, a, p)

	if e0 < -Epsilon || e1 < -Epsilon || e2 < -Epsilon {
		return false
	}

	if vecmath.ApproxEqual(e0, 0, Epsilon) && !isTopLeftEdge(vecmath.Vec2{X: b.X - a.X, Y: b.Y - a.Y}) {
		return false
	}
	if vecmath.ApproxEqual(e1, 0, Epsilon) && !isTopLeftEdge(vecmath.Vec2{X: c.X - b.X, Y: c.Y - b.Y}) {
		return false
	}
	if vecmath.ApproxEqual(e2, 0, Epsilon) && !isTopLeftEdge(vecmath.Vec2{X: a.X - c.X, Y: a.Y - c.Y}) {
		return false
	}
	return true
}

// Barycentric computes the barycentric coordinates of point p with respect
// to triangle a, b, c. The triangle must be non-degenerate.
func Barycentric(a, b, c, p vecmath.Vec2) vecmath.Vec3 {
	areaABC := EdgeFunction(a, b, c)
	if areaABC == 0 {
		return vecmath.Vec3{}
	}
	u := EdgeFunction(b, c, p) / areaABC
	v := EdgeFunction(c, a, p) / areaABC
	w := 1 - u - v
	return vecmath.Vec3{X: u, Y: v, Z: w}
}
