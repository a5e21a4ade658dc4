package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestAABBIntersects(t *testing.T) {
	unit := mgl64.Vec3{2, 2, 2}
	tests := []struct {
		name  string
		other mgl64.Vec3
		want  bool
	}{
		{"same centre", mgl64.Vec3{0, 0, 0}, true},
		{"overlapping", mgl64.Vec3{1.5, 0, 0}, true},
		{"touching faces", mgl64.Vec3{2, 0, 0}, true},
		{"apart on x", mgl64.Vec3{3, 0, 0}, false},
		{"apart on y only", mgl64.Vec3{0, 2.5, 0}, false},
		{"apart on z only", mgl64.Vec3{0, 0, -2.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckCollision(mgl64.Vec3{}, unit, tt.other, unit))
			assert.Equal(t, tt.want, CheckCollision(tt.other, unit, mgl64.Vec3{}, unit), "symmetric")
		})
	}
}

func TestAABBContains(t *testing.T) {
	box := NewAABB(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{2, 2, 2})
	assert.Equal(t, mgl64.Vec3{-1, 0, -1}, box.Min)
	assert.Equal(t, mgl64.Vec3{1, 2, 1}, box.Max)
	assert.True(t, box.Contains(mgl64.Vec3{1, 2, 1}))
	assert.False(t, box.Contains(mgl64.Vec3{0, 2.01, 0}))
}

func TestCollisionNormal(t *testing.T) {
	n := CollisionNormal(mgl64.Vec3{3, 5, 4}, mgl64.Vec3{0, 0, 0})
	assert.InDelta(t, 0.6, n[0], 1e-12)
	assert.Zero(t, n[1])
	assert.InDelta(t, 0.8, n[2], 1e-12)

	assert.Equal(t, mgl64.Vec3{}, CollisionNormal(mgl64.Vec3{1, 2, 1}, mgl64.Vec3{1, 7, 1}),
		"vertically stacked positions have no horizontal normal")
}

func TestRayIntersectsSphere(t *testing.T) {
	origin := mgl64.Vec3{}
	forward := mgl64.Vec3{0, 0, -1}

	assert.True(t, RayIntersectsSphere(origin, forward, mgl64.Vec3{0, 0, -10}, 1))
	assert.False(t, RayIntersectsSphere(origin, forward, mgl64.Vec3{5, 0, -10}, 1))
	assert.False(t, RayIntersectsSphere(origin, forward, mgl64.Vec3{1, 0, -10}, 1), "tangent ray has zero discriminant")
	assert.True(t, RayIntersectsSphere(origin, forward, mgl64.Vec3{0, 0, 10}, 1), "no behind-origin rejection")
}

func TestNormalizeOrZero(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{}, normalizeOrZero(mgl64.Vec3{}))
	assert.Equal(t, mgl64.Vec3{}, normalizeOrZero(mgl64.Vec3{math.NaN(), 0, 0}))
	assert.InDelta(t, 1.0, normalizeOrZero(mgl64.Vec3{3, 4, 12}).Len(), 1e-12)
}
