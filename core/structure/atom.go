// Package structure holds the immutable in-memory model of a nucleic-acid
// structure: chains of residues, residues of atoms, plus the per-residue
// local frame attached by the frame pre-pass. Nothing here mutates after
// construction (frames are set exactly once, before classification starts),
// so the whole model is safe to share across workers without locking.
package structure

import "rnannot/core/geom"

// Atom is one atom with its Cartesian coordinate in Ångströms.
type Atom struct {
	Name    string // PDB atom name, e.g. "N1", "OP1", "O2'"
	Element string // element symbol, e.g. "N", "P"
	Pos     geom.Vec

	res *Residue // back-reference only; the residue owns the atom
}

// NewAtom creates an atom. The owning residue back-reference is wired up
// by NewResidue.
func NewAtom(name, element string, pos geom.Vec) *Atom {
	return &Atom{Name: name, Element: element, Pos: pos}
}

// Residue returns the residue this atom belongs to.
func (a *Atom) Residue() *Residue { return a.res }
