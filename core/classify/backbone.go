package classify

import "rnannot/core/structure"

// basePhosphate tests base→phosphate contacts. Purely distance based, so
// a frame-invalid residue can still participate: residues excluded from
// frame-dependent geometry keep their backbone annotations.
func (e *Engine) basePhosphate(ctx *pairCtx) *Interaction {
	return e.backboneContact(ctx, CategoryBasePhosphate, e.tab.PhosphateAtoms())
}

// baseRibose tests base→ribose-oxygen contacts, same mechanics as
// basePhosphate.
func (e *Engine) baseRibose(ctx *pairCtx) *Interaction {
	return e.backboneContact(ctx, CategoryBaseRibose, e.tab.RiboseAtoms())
}

// backboneContact looks for the closest base-atom to backbone-atom
// contact within the cutoff, in both directions, and reports the side
// whose base donates.
func (e *Engine) backboneContact(ctx *pairCtx, cat Category, backboneAtoms []string) *Interaction {
	if ctx.dist > e.cfg.BackboneDistanceCutoff {
		return nil
	}

	type hit struct {
		baseAtom, backAtom string
		donor              *structure.Residue
		dist               float64
	}
	var best *hit

	scan := func(baseRes, backRes *structure.Residue) {
		for _, bn := range e.tab.BaseContactAtoms(baseRes.Base) {
			ba, ok := baseRes.Atom(bn)
			if !ok {
				continue
			}
			for _, pn := range backboneAtoms {
				pa, ok := backRes.Atom(pn)
				if !ok {
					continue
				}
				d := ba.Pos.Distance(pa.Pos)
				if d > e.cfg.BackboneContactCutoff {
					continue
				}
				if best == nil || d < best.dist {
					best = &hit{baseAtom: bn, backAtom: pn, donor: baseRes, dist: d}
				}
			}
		}
	}
	scan(ctx.a, ctx.b)
	scan(ctx.b, ctx.a)

	if best == nil {
		return nil
	}

	ctx.desc.MinContact = best.dist
	ctx.desc.ContactAtoms = [2]string{best.baseAtom, best.backAtom}
	ctx.desc.HBonds = 1
	it := ctx.newInteraction(cat)
	it.DonorIndex = best.donor.Index
	return it
}
