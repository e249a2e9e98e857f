package classify

import (
	"rnannot/core/geom"
	"rnannot/core/structure"
)

// stack tests the stacking regime: the partner's base center sits above
// or below the ring within the z window, the normals are near parallel
// or antiparallel, and the ring projections overlap. Faces are derived
// from which side of each base the partner sits on.
func (e *Engine) stack(ctx *pairCtx) *Interaction {
	if ctx.fa == nil || ctx.fb == nil {
		return nil
	}
	if ctx.dist > e.cfg.StackDistanceCutoff {
		return nil
	}
	if ctx.desc.NormalAngle > e.cfg.StackAngleTolerance {
		return nil
	}

	zb := ctx.desc.ZOffset
	if abs(zb) < e.cfg.StackMinZ || abs(zb) > e.cfg.StackMaxZ {
		return nil
	}
	za := ctx.fb.Local(ctx.fa.Origin).Z
	if abs(za) < e.cfg.StackMinZ || abs(za) > e.cfg.StackMaxZ {
		return nil
	}

	ov := e.ringOverlap(ctx)
	ctx.desc.Overlap = ov
	if ov < e.cfg.MinRingOverlap {
		return nil
	}

	it := ctx.newInteraction(CategoryStack)
	// The face a base presents is the side its partner sits on: +z is the
	// 3' face under the frame convention.
	it.FaceA = sign(zb)
	it.FaceB = sign(za)
	return it
}

// ringOverlap projects each residue's ring atoms into the partner's base
// plane and measures the fraction landing inside the partner's ring
// polygon; the larger of the two directional fractions is returned.
func (e *Engine) ringOverlap(ctx *pairCtx) float64 {
	f1 := projectedFraction(ctx.fa, ctx.a, ctx.b)
	f2 := projectedFraction(ctx.fb, ctx.b, ctx.a)
	if f2 > f1 {
		return f2
	}
	return f1
}

// projectedFraction computes the fraction of other's ring atoms whose
// projection onto host's base plane falls inside host's ring polygon.
func projectedFraction(hostFrame *geom.Frame, host, other *structure.Residue) float64 {
	poly := ringPolygon(hostFrame, host)
	if len(poly) < 3 {
		return 0
	}
	pts := ringPoints(hostFrame, other)
	if len(pts) == 0 {
		return 0
	}
	inside := 0
	for _, p := range pts {
		if pointInPolygon(p, poly) {
			inside++
		}
	}
	return float64(inside) / float64(len(pts))
}

// ringAtomNames lists the ring atoms of a base in ring order; it mirrors
// the frame templates so the projected polygon is convex and ordered.
var ringAtomNames = map[string][]string{
	"A": {"N9", "C8", "N7", "C5", "C6", "N1", "C2", "N3", "C4"},
	"G": {"N9", "C8", "N7", "C5", "C6", "N1", "C2", "N3", "C4"},
	"C": {"N1", "C2", "N3", "C4", "C5", "C6"},
	"U": {"N1", "C2", "N3", "C4", "C5", "C6"},
	"T": {"N1", "C2", "N3", "C4", "C5", "C6"},
}

type xy struct{ x, y float64 }

func ringPolygon(f *geom.Frame, r *structure.Residue) []xy {
	var poly []xy
	for _, name := range ringAtomNames[r.Base] {
		a, ok := r.Atom(name)
		if !ok {
			continue
		}
		l := f.Local(a.Pos)
		poly = append(poly, xy{l.X, l.Y})
	}
	return poly
}

func ringPoints(f *geom.Frame, r *structure.Residue) []xy {
	var pts []xy
	for _, name := range ringAtomNames[r.Base] {
		a, ok := r.Atom(name)
		if !ok {
			continue
		}
		l := f.Local(a.Pos)
		pts = append(pts, xy{l.X, l.Y})
	}
	return pts
}

// pointInPolygon tests containment by even-odd ray casting. Purine
// outlines are concave at the ring-fusion atoms, so a convexity-based
// test would not do.
func pointInPolygon(p xy, poly []xy) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.y > p.y) == (b.y > p.y) {
			continue
		}
		x := a.x + (p.y-a.y)/(b.y-a.y)*(b.x-a.x)
		if p.x == x {
			return true // on the edge counts as inside
		}
		if p.x < x {
			inside = !inside
		}
	}
	return inside
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
