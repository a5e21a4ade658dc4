package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// worldUp is +Y.
var worldUp = mgl64.Vec3{0, 1, 0}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB builds a box of the given size centred on center.
func NewAABB(center, size mgl64.Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Intersects reports whether the boxes overlap on all three axes.
// Touching faces count as overlap.
func (a AABB) Intersects(b AABB) bool {
	return a.Min[0] <= b.Max[0] && a.Max[0] >= b.Min[0] &&
		a.Min[1] <= b.Max[1] && a.Max[1] >= b.Min[1] &&
		a.Min[2] <= b.Max[2] && a.Max[2] >= b.Min[2]
}

// Contains reports whether p lies inside the box (inclusive).
func (a AABB) Contains(p mgl64.Vec3) bool {
	return p[0] >= a.Min[0] && p[0] <= a.Max[0] &&
		p[1] >= a.Min[1] && p[1] <= a.Max[1] &&
		p[2] >= a.Min[2] && p[2] <= a.Max[2]
}

// CheckCollision builds a box around each position and tests overlap.
func CheckCollision(pos1, size1, pos2, size2 mgl64.Vec3) bool {
	return NewAABB(pos1, size1).Intersects(NewAABB(pos2, size2))
}

// CollisionNormal returns the horizontal unit vector pointing from pos2
// toward pos1. Coincident positions yield the zero vector.
func CollisionNormal(pos1, pos2 mgl64.Vec3) mgl64.Vec3 {
	d := pos1.Sub(pos2)
	d[1] = 0
	return normalizeOrZero(d)
}

// RayIntersectsSphere tests |O + tD - C|² = r² for real roots.
// Only the discriminant is checked, so spheres behind the origin count too.
func RayIntersectsSphere(origin, dir, center mgl64.Vec3, radius float64) bool {
	oc := origin.Sub(center)
	a := dir.Dot(dir)
	b := 2.0 * oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	return b*b-4*a*c > 0
}

// normalizeOrZero is Normalize without the NaN on zero-length input.
func normalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// finiteVec reports whether every component is a finite number.
func finiteVec(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
