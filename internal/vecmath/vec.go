// Package vecmath provides the small float32 vector types shared by the
// rasterizer's geometry front end, tiler and fragment back end. It exists
// so those packages can exchange vertex and varying data without importing
// the root package (which in turn depends on them).
package vecmath

import "math"

// Vec2 is a two component float32 vector, used for texel positions and
// screen-space points.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a three component float32 vector, used for NDC positions and
// barycentric coordinates.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a four component float32 vector, the natural output of a vertex
// shader's clip space position.
type Vec4 struct {
	X, Y, Z, W float32
}

// Add returns the component-wise sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Cross returns the 3D cross product of two vectors.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(w Vec3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Scale returns the vector scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// XYZ extracts the first three components of a Vec4.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// ToNDC performs the perspective divide on a clip space position, producing
// normalized device coordinates in [-1, 1] (before the w divide the z
// component carries clip space depth, after it carries NDC depth).
func ToNDC(clip Vec4) Vec3 {
	return Vec3{clip.X / clip.W, clip.Y / clip.W, clip.Z / clip.W}
}

// ToTexelPos maps a normalized device coordinate into the pixel grid of a
// viewport of the given width and height: NDC (-1, -1) maps to texel
// (0, 0) and NDC (1, 1) to (width, height). The Y axis is not flipped.
func ToTexelPos(ndc Vec3, viewportWidth, viewportHeight float32) Vec2 {
	return Vec2{
		X: (viewportWidth / 2.0) * (ndc.X + 1.0),
		Y: (viewportHeight / 2.0) * (ndc.Y + 1.0),
	}
}

// BarycentricInterpolate interpolates three scalars using barycentric
// coordinates bary (which must sum to ~1).
func BarycentricInterpolate(p1, p2, p3 float32, bary Vec3) float32 {
	return bary.X*p1 + bary.Y*p2 + bary.Z*p3
}

// BarycentricInterpolateVec3 interpolates three vectors using barycentric
// coordinates.
func BarycentricInterpolateVec3(p1, p2, p3 Vec3, bary Vec3) Vec3 {
	return Vec3{
		BarycentricInterpolate(p1.X, p2.X, p3.X, bary),
		BarycentricInterpolate(p1.Y, p2.Y, p3.Y, bary),
		BarycentricInterpolate(p1.Z, p2.Z, p3.Z, bary),
	}
}

// ApproxEqual reports whether a and b differ by less than epsilon.
func ApproxEqual(a, b, epsilon float32) bool {
	return float32(math.Abs(float64(a-b))) < epsilon
}
