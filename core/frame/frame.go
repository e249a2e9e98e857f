package frame

import (
	"errors"
	"fmt"

	"rnannot/core/geom"
	"rnannot/core/structure"
)

// DegenerateFrameError marks a residue whose ring atoms are missing or
// collinear, or whose fit residual exceeds the configured tolerance. The
// residue is excluded from frame-dependent classification; the run
// continues.
type DegenerateFrameError struct {
	ID     structure.ResidueID
	Reason string
}

func (e *DegenerateFrameError) Error() string {
	return fmt.Sprintf("residue %s: degenerate frame: %s", e.ID, e.Reason)
}

// Exclusion records one residue excluded from frame-dependent
// classification and why. A completed run always reports these alongside
// the interaction list so partial failures are auditable.
type Exclusion struct {
	ID     structure.ResidueID
	Reason error
}

// Builder fits residue frames against a template table.
type Builder struct {
	tpl *Templates
	// tol is the max allowed fit RMSD (Å); above it the ring is considered
	// too distorted for a trustworthy frame.
	tol float64
}

// NewBuilder creates a Builder. tol ≤ 0 selects the default tolerance.
func NewBuilder(tpl *Templates, tol float64) *Builder {
	if tol <= 0 {
		tol = 0.5
	}
	return &Builder{tpl: tpl, tol: tol}
}

// Build fits the local frame for one residue. Missing template ⇒
// *structure.MalformedResidueError; missing/collinear ring atoms or a
// residual above tolerance ⇒ *DegenerateFrameError.
func (b *Builder) Build(r *structure.Residue) (*geom.Frame, error) {
	tpl, ok := b.tpl.ForBase(r.Base)
	if !ok {
		return nil, &structure.MalformedResidueError{ID: r.ID, Name: r.Name}
	}

	obs := make([]geom.Vec, 0, len(tpl.RingAtoms))
	ref := make([]geom.Vec, 0, len(tpl.RingAtoms))
	for _, name := range tpl.RingAtoms {
		a, found := r.Atom(name)
		if !found {
			continue
		}
		obs = append(obs, a.Pos)
		ref = append(ref, tpl.Coords[name])
	}
	if len(obs) < 3 {
		return nil, &DegenerateFrameError{ID: r.ID, Reason: fmt.Sprintf("only %d of %d ring atoms present", len(obs), len(tpl.RingAtoms))}
	}

	fit, err := geom.Kabsch(obs, ref)
	if err != nil {
		if errors.Is(err, geom.ErrDegenerate) || errors.Is(err, geom.ErrTooFewPoints) {
			return nil, &DegenerateFrameError{ID: r.ID, Reason: err.Error()}
		}
		return nil, err
	}
	if fit.RMSD > b.tol {
		return nil, &DegenerateFrameError{ID: r.ID, Reason: fmt.Sprintf("fit residual %.3f Å exceeds tolerance %.3f Å", fit.RMSD, b.tol)}
	}

	// The template is centered on the ring centroid, so the observed
	// centroid is the frame origin directly. The rotation's sign is pinned
	// by the det correction against the fixed template: the normal points
	// the same way no matter how the input lists atoms.
	return &geom.Frame{
		Origin:   fit.ObsCentroid,
		Rotation: fit.Rotation,
		Residual: fit.RMSD,
	}, nil
}

// BuildAll is the explicit pre-pass: it fits and attaches a frame to every
// residue before candidate generation starts, and returns the exclusion
// list for residues that ended up frame-invalid. After BuildAll the
// structure is effectively frozen and safe to share.
func (b *Builder) BuildAll(s *structure.Structure) []Exclusion {
	var excluded []Exclusion
	for _, r := range s.Residues() {
		f, err := b.Build(r)
		r.SetFrame(f, err)
		if err != nil {
			excluded = append(excluded, Exclusion{ID: r.ID, Reason: err})
		}
	}
	return excluded
}

// Place instantiates a residue's template atoms under a rigid transform:
// world = rot·template + shift. Tests and synthetic fixtures use it to
// build residues with exactly known frames.
func Place(tpl *Template, rot geom.Mat, shift geom.Vec) []*structure.Atom {
	atoms := make([]*structure.Atom, 0, len(tpl.RingAtoms))
	for _, name := range tpl.RingAtoms {
		pos := rot.MulVec(tpl.Coords[name]).Add(shift)
		el := "C"
		if name[0] == 'N' {
			el = "N"
		}
		atoms = append(atoms, structure.NewAtom(name, el, pos))
	}
	return atoms
}
