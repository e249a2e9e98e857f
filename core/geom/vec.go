// Package geom provides the small 3D vector/matrix toolkit shared by the
// structure model, frame fitting and classification geometry.
package geom

import "math"

// Vec is a point or direction in 3D space (Ångströms).
type Vec struct {
	X, Y, Z float64
}

func (v Vec) Add(o Vec) Vec      { return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec) Sub(o Vec) Vec      { return Vec{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s, v.Z * s} }

func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec) Cross(o Vec) Vec {
	return Vec{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec) Norm() float64  { return math.Sqrt(v.Dot(v)) }
func (v Vec) Norm2() float64 { return v.Dot(v) }

// Unit returns v normalized to length 1. The zero vector is returned
// unchanged so callers must guard degenerate input themselves.
func (v Vec) Unit() Vec {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

func (v Vec) Distance(o Vec) float64 { return v.Sub(o).Norm() }

// Angle returns the angle between two vectors in degrees, in [0, 180].
// Computed via atan2 of cross/dot for numerical stability near 0 and 180.
func Angle(a, b Vec) float64 {
	sin := a.Cross(b).Norm()
	cos := a.Dot(b)
	return math.Atan2(sin, cos) * 180 / math.Pi
}

// PlaneAngle returns the angle between two plane normals folded into
// [0, 90]: the direction of a normal is a convention, not a distinction,
// so θ and 180−θ describe the same pair of planes.
func PlaneAngle(a, b Vec) float64 {
	th := Angle(a, b)
	if th > 90 {
		th = 180 - th
	}
	return th
}

// Centroid returns the mean of the given points. It panics on an empty
// slice; every caller works on a non-empty, validated atom subset.
func Centroid(ps []Vec) Vec {
	if len(ps) == 0 {
		panic("geom: centroid of zero points")
	}
	var c Vec
	for _, p := range ps {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(ps)))
}
