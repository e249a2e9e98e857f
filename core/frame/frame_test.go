package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rnannot/core/geom"
	"rnannot/core/structure"
)

func TestTemplatesGeometry(t *testing.T) {
	tpl := NewTemplates()

	for _, base := range []string{"A", "C", "G", "U", "T"} {
		tp, ok := tpl.ForBase(base)
		require.True(t, ok, base)

		// Planar, centered, glycosidic N on +x.
		var c geom.Vec
		for _, name := range tp.RingAtoms {
			p, present := tp.Coords[name]
			require.True(t, present, "%s %s", base, name)
			assert.InDelta(t, 0, p.Z, 1e-12)
			c = c.Add(p)
		}
		c = c.Scale(1 / float64(len(tp.RingAtoms)))
		assert.InDelta(t, 0, c.Norm(), 1e-9, "%s centroid", base)

		g := tp.Coords[tp.Glycosidic]
		assert.InDelta(t, 0, g.Y, 1e-9, "%s glycosidic on x axis", base)
		assert.Greater(t, g.X, 0.0)
	}

	a, _ := tpl.ForBase("A")
	assert.Len(t, a.RingAtoms, 9)
	u, _ := tpl.ForBase("U")
	assert.Len(t, u.RingAtoms, 6)
	_, ok := tpl.ForBase("X")
	assert.False(t, ok)
}

func TestTemplateRingBondLengths(t *testing.T) {
	tpl := NewTemplates()
	g, _ := tpl.ForBase("G")
	// Consecutive ring atoms a bond apart, around the fused ring walk.
	ring := g.RingAtoms
	for i := range ring {
		p := g.Coords[ring[i]]
		q := g.Coords[ring[(i+1)%len(ring)]]
		d := p.Distance(q)
		// All edges are either real bonds (1.39) or the N3–C4/C4–N9 style
		// turns of the fused walk; every consecutive pair in ring order is
		// bonded in the template construction except none — so all 1.39.
		assert.InDelta(t, 1.39, d, 1e-6, "%s-%s", ring[i], ring[(i+1)%len(ring)])
	}
}

func TestBuildRecoversPlacedFrame(t *testing.T) {
	tpl := NewTemplates()
	gt, _ := tpl.ForBase("G")

	rot := geom.RotZ(30).Mul(geom.RotX(40))
	shift := geom.Vec{X: 12, Y: -3, Z: 7}
	res := structure.NewResidue(structure.ResidueID{Chain: "A", Number: 1}, "G", Place(gt, rot, shift))

	b := NewBuilder(tpl, 0.1)
	f, err := b.Build(res)
	require.NoError(t, err)

	assert.InDelta(t, 0, f.Origin.Distance(shift), 1e-9)
	assert.InDelta(t, 0, f.Residual, 1e-9)
	// x axis points toward the glycosidic nitrogen.
	n9, _ := res.Atom("N9")
	dir := n9.Pos.Sub(f.Origin).Unit()
	assert.InDelta(t, 0, geom.Angle(f.XAxis(), dir), 1e-6)
	// Normal matches the placement rotation's z image.
	assert.InDelta(t, 0, geom.Angle(f.Normal(), rot.MulVec(geom.Vec{Z: 1})), 1e-6)
}

// The normal's sign must not depend on atom listing order.
func TestBuildNormalSignIndependentOfAtomOrder(t *testing.T) {
	tpl := NewTemplates()
	ut, _ := tpl.ForBase("U")
	atoms := Place(ut, geom.RotY(25), geom.Vec{X: 1, Y: 2, Z: 3})

	rev := make([]*structure.Atom, len(atoms))
	for i, a := range atoms {
		rev[len(atoms)-1-i] = structure.NewAtom(a.Name, a.Element, a.Pos)
	}

	b := NewBuilder(tpl, 0.1)
	f1, err := b.Build(structure.NewResidue(structure.ResidueID{Chain: "A", Number: 1}, "U", atoms))
	require.NoError(t, err)
	f2, err := b.Build(structure.NewResidue(structure.ResidueID{Chain: "A", Number: 2}, "U", rev))
	require.NoError(t, err)

	assert.InDelta(t, 0, geom.Angle(f1.Normal(), f2.Normal()), 1e-9)
}

func TestBuildUnsupportedResidue(t *testing.T) {
	b := NewBuilder(NewTemplates(), 0)
	res := structure.NewResidue(structure.ResidueID{Chain: "A", Number: 3}, "PSU", nil)
	_, err := b.Build(res)
	var merr *structure.MalformedResidueError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "PSU", merr.Name)
}

func TestBuildTooFewRingAtoms(t *testing.T) {
	tpl := NewTemplates()
	ut, _ := tpl.ForBase("U")
	all := Place(ut, geom.Identity(), geom.Vec{})
	res := structure.NewResidue(structure.ResidueID{Chain: "A", Number: 4}, "U", all[:2])

	b := NewBuilder(tpl, 0)
	_, err := b.Build(res)
	var derr *DegenerateFrameError
	assert.ErrorAs(t, err, &derr)
}

func TestBuildCollinearRingAtoms(t *testing.T) {
	atoms := []*structure.Atom{
		structure.NewAtom("N1", "N", geom.Vec{X: 0}),
		structure.NewAtom("C2", "C", geom.Vec{X: 1}),
		structure.NewAtom("N3", "N", geom.Vec{X: 2}),
		structure.NewAtom("C4", "C", geom.Vec{X: 3}),
	}
	res := structure.NewResidue(structure.ResidueID{Chain: "A", Number: 5}, "C", atoms)
	b := NewBuilder(NewTemplates(), 0)
	_, err := b.Build(res)
	var derr *DegenerateFrameError
	assert.ErrorAs(t, err, &derr)
}

func TestBuildResidualTolerance(t *testing.T) {
	tpl := NewTemplates()
	at, _ := tpl.ForBase("A")
	atoms := Place(at, geom.Identity(), geom.Vec{})
	// Pull one ring atom far out of plane.
	for _, a := range atoms {
		if a.Name == "C8" {
			a.Pos.Z += 3
		}
	}
	res := structure.NewResidue(structure.ResidueID{Chain: "A", Number: 6}, "A", atoms)

	strict := NewBuilder(tpl, 0.2)
	_, err := strict.Build(res)
	var derr *DegenerateFrameError
	assert.ErrorAs(t, err, &derr)

	loose := NewBuilder(tpl, 5)
	_, err = loose.Build(res)
	assert.NoError(t, err)
}

func TestBuildAllMarksResidues(t *testing.T) {
	tpl := NewTemplates()
	gt, _ := tpl.ForBase("G")
	good := structure.NewResidue(structure.ResidueID{Chain: "A", Number: 1}, "G", Place(gt, geom.Identity(), geom.Vec{}))
	bad := structure.NewResidue(structure.ResidueID{Chain: "A", Number: 2}, "HOH", nil)
	s := structure.New("t", []*structure.Chain{{ID: "A", Residues: []*structure.Residue{good, bad}}})

	excluded := NewBuilder(tpl, 0).BuildAll(s)
	require.Len(t, excluded, 1)
	assert.Equal(t, bad.ID, excluded[0].ID)

	_, ok := good.Frame()
	assert.True(t, ok)
	_, ok = bad.Frame()
	assert.False(t, ok)
	assert.Error(t, bad.FrameErr())
}
