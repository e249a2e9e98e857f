package classify

import (
	"math"

	"rnannot/core/geom"
	"rnannot/core/structure"
)

// contact is one qualifying donor–acceptor heavy-atom pair.
type contact struct {
	atomA, atomB string // atom names on residue A and B
	dist         float64
}

// pair tests the base-pairing regime: near-coplanar rings, the partner's
// center close to the host plane, and at least one qualifying
// donor–acceptor contact. The pairing family is the best-fitting
// edge-pair from the fixed per-base edge tables, scored by total
// deviation from ideal bonding geometry with ties broken by lowest
// combined distance.
func (e *Engine) pair(ctx *pairCtx) *Interaction {
	if ctx.fa == nil || ctx.fb == nil {
		return nil
	}
	if ctx.dist > e.cfg.PairDistanceCutoff {
		return nil
	}
	// Covalent neighbors in a chain are never annotated as paired; they
	// may still have stacked above.
	if structure.Adjacent(ctx.a, ctx.b) {
		return nil
	}
	if ctx.desc.NormalAngle > e.cfg.PairAngleTolerance {
		return nil
	}
	if abs(ctx.desc.ZOffset) > e.cfg.PairMaxZ {
		return nil
	}

	contacts := e.hbondContacts(ctx)
	if len(contacts) == 0 {
		return nil
	}
	ctx.desc.HBonds = len(contacts)
	best := contacts[0]
	for _, c := range contacts[1:] {
		if c.dist < best.dist {
			best = c
		}
	}
	ctx.desc.MinContact = best.dist
	ctx.desc.ContactAtoms = [2]string{best.atomA, best.atomB}

	edgeA, edgeB, ok := e.bestEdges(ctx, contacts)
	if !ok {
		return nil
	}

	it := ctx.newInteraction(CategoryPair)
	it.EdgeA = edgeA
	it.EdgeB = edgeB
	it.Cis = e.isCis(ctx)
	return it
}

// hbondContacts enumerates donor(A)×acceptor(B) and acceptor(A)×donor(B)
// atom pairs within the distance tolerance whose connecting vector stays
// near the mean base plane.
func (e *Engine) hbondContacts(ctx *pairCtx) []contact {
	n := meanNormal(ctx.fa, ctx.fb)

	var out []contact
	try := func(nameA, nameB string) {
		aa, ok := ctx.a.Atom(nameA)
		if !ok {
			return
		}
		bb, ok := ctx.b.Atom(nameB)
		if !ok {
			return
		}
		d := aa.Pos.Distance(bb.Pos)
		if d > e.cfg.HBondDistanceTolerance {
			return
		}
		// Elevation of the bond vector out of the mean plane stands in
		// for the bond angle check (no hydrogens in the model).
		if elevation(aa.Pos.Sub(bb.Pos), n) > e.cfg.HBondAngleTolerance {
			return
		}
		out = append(out, contact{atomA: nameA, atomB: nameB, dist: d})
	}

	for _, d := range e.tab.Donors(ctx.a.Base) {
		for _, a := range e.tab.Acceptors(ctx.b.Base) {
			try(d, a)
		}
	}
	for _, a := range e.tab.Acceptors(ctx.a.Base) {
		for _, d := range e.tab.Donors(ctx.b.Base) {
			try(a, d)
		}
	}
	return out
}

// elevation returns the angle (degrees) of v out of the plane with
// normal n, folded to [0, 90].
func elevation(v, n geom.Vec) float64 {
	return 90 - geom.PlaneAngle(v, n)
}

// bestEdges picks the (edgeA, edgeB) combination minimizing the total
// deviation of its contacts from the ideal bond length; ties break on
// lowest combined distance, then on the fixed edge order (W, H, S).
func (e *Engine) bestEdges(ctx *pairCtx, contacts []contact) (Edge, Edge, bool) {
	bestScore := math.Inf(1)
	bestSum := math.Inf(1)
	var bestA, bestB Edge
	found := false

	for _, ea := range allEdges {
		for _, eb := range allEdges {
			score, sum, n := 0.0, 0.0, 0
			for _, c := range contacts {
				if !e.tab.onEdge(ctx.a.Base, ea, c.atomA) || !e.tab.onEdge(ctx.b.Base, eb, c.atomB) {
					continue
				}
				score += abs(c.dist - e.cfg.IdealHBondLength)
				sum += c.dist
				n++
			}
			if n == 0 {
				continue
			}
			// Normalize so an edge with more contacts is not penalized for
			// having more terms in the sum.
			score /= float64(n)
			sum /= float64(n)
			if score < bestScore || (score == bestScore && sum < bestSum) {
				bestScore, bestSum = score, sum
				bestA, bestB = ea, eb
				found = true
			}
		}
	}
	return bestA, bestB, found
}

// meanNormal averages the two ring normals after aligning their signs.
func meanNormal(fa, fb *geom.Frame) geom.Vec {
	na := fa.Normal()
	nb := fb.Normal()
	if na.Dot(nb) < 0 {
		nb = nb.Scale(-1)
	}
	return na.Add(nb).Unit()
}

// isCis reports the glycosidic orientation: cis when both glycosidic
// directions fall on the same side of the pair axis in the mean base
// plane, trans otherwise.
func (e *Engine) isCis(ctx *pairCtx) bool {
	n := meanNormal(ctx.fa, ctx.fb)
	axis := ctx.fb.Origin.Sub(ctx.fa.Origin)
	axis = axis.Sub(n.Scale(axis.Dot(n))).Unit()

	side := func(f *geom.Frame) int {
		g := f.XAxis() // points from ring center toward the glycosidic N
		g = g.Sub(n.Scale(g.Dot(n)))
		return sign(axis.Cross(g).Dot(n))
	}
	return side(ctx.fa) == side(ctx.fb)
}
