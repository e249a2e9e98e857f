package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVecBasics(t *testing.T) {
	a := Vec{1, 2, 3}
	b := Vec{4, 5, 6}
	assert.Equal(t, Vec{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec{-3, -3, -3}, a.Sub(b))
	assert.InDelta(t, 32, a.Dot(b), 1e-12)
	assert.InDelta(t, math.Sqrt(14), a.Norm(), 1e-12)
	assert.InDelta(t, 1, a.Unit().Norm(), 1e-12)
	assert.Equal(t, Vec{0, 0, 0}, Vec{}.Unit())
}

func TestCrossRightHanded(t *testing.T) {
	z := Vec{1, 0, 0}.Cross(Vec{0, 1, 0})
	assert.Equal(t, Vec{0, 0, 1}, z)
}

func TestAngle(t *testing.T) {
	x := Vec{1, 0, 0}
	assert.InDelta(t, 90, Angle(x, Vec{0, 1, 0}), 1e-9)
	assert.InDelta(t, 180, Angle(x, Vec{-1, 0, 0}), 1e-9)
	assert.InDelta(t, 0, Angle(x, x.Scale(3)), 1e-9)
}

// A 1° and a 179° normal angle describe the same pair of planes.
func TestPlaneAngleComplement(t *testing.T) {
	n := Vec{0, 0, 1}
	m1 := RotX(1).MulVec(n)
	m2 := RotX(179).MulVec(n)
	assert.InDelta(t, PlaneAngle(n, m1), PlaneAngle(n, m2), 1e-9)
	assert.InDelta(t, 1, PlaneAngle(n, m2), 1e-9)
}

func TestCentroid(t *testing.T) {
	c := Centroid([]Vec{{0, 0, 0}, {2, 4, 6}})
	assert.Equal(t, Vec{1, 2, 3}, c)
	assert.Panics(t, func() { Centroid(nil) })
}

func TestMatRotations(t *testing.T) {
	r := RotZ(90)
	got := r.MulVec(Vec{1, 0, 0})
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 1, got.Y, 1e-12)
	assert.InDelta(t, 1, r.Det(), 1e-12)

	// Rᵀ·R = I for rotations.
	id := r.Transpose().Mul(r)
	want := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, want[i][j], id[i][j], 1e-12)
		}
	}
}

func hexagon() []Vec {
	ps := make([]Vec, 6)
	for i := range ps {
		s, c := math.Sincos(float64(i) * math.Pi / 3)
		ps[i] = Vec{1.39 * c, 1.39 * s, 0}
	}
	return ps
}

func TestKabschRecoversRotation(t *testing.T) {
	ref := hexagon()
	rot := RotZ(37).Mul(RotX(22))
	shift := Vec{5, -3, 2}

	obs := make([]Vec, len(ref))
	for i, p := range ref {
		obs[i] = rot.MulVec(p).Add(shift)
	}

	fit, err := Kabsch(obs, ref)
	require.NoError(t, err)
	assert.InDelta(t, 0, fit.RMSD, 1e-9)
	assert.InDelta(t, 1, fit.Rotation.Det(), 1e-9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, rot[i][j], fit.Rotation[i][j], 1e-9)
		}
	}
	assert.InDelta(t, 0, fit.ObsCentroid.Distance(shift), 1e-9)
}

// The det correction must always return a proper rotation, never a
// reflection, even for a mirrored observation.
func TestKabschNoReflection(t *testing.T) {
	ref := hexagon()
	obs := make([]Vec, len(ref))
	for i, p := range ref {
		obs[i] = Vec{p.X, -p.Y, p.Z} // mirrored
	}
	fit, err := Kabsch(obs, ref)
	require.NoError(t, err)
	assert.InDelta(t, 1, fit.Rotation.Det(), 1e-9)
}

func TestKabschDegenerate(t *testing.T) {
	line := []Vec{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}}
	_, err := Kabsch(line, line)
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = Kabsch(line[:2], line[:2])
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestFrameLocalWorldRoundTrip(t *testing.T) {
	f := &Frame{Origin: Vec{1, 2, 3}, Rotation: RotZ(45).Mul(RotY(10))}
	w := Vec{-4, 7, 0.5}
	back := f.World(f.Local(w))
	assert.InDelta(t, 0, back.Distance(w), 1e-12)
	assert.InDelta(t, 1, f.Normal().Norm(), 1e-12)
}
