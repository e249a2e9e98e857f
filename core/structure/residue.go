package structure

import (
	"fmt"

	"rnannot/core/geom"
)

// baseAliases normalizes residue names from structure files to the
// one-letter base codes used throughout classification. DNA residues map
// to the same ring chemistry as their RNA counterparts (T rings like U).
var baseAliases = map[string]string{
	"A": "A", "ADE": "A", "DA": "A", "RA": "A",
	"C": "C", "CYT": "C", "DC": "C", "RC": "C",
	"G": "G", "GUA": "G", "DG": "G", "RG": "G",
	"U": "U", "URA": "U", "RU": "U",
	"T": "T", "THY": "T", "DT": "T",
}

// NormalizeBase maps a raw residue name to its one-letter base code, or ""
// when the residue type is not a standard nucleotide.
func NormalizeBase(name string) string {
	return baseAliases[name]
}

// IsPurine reports whether the one-letter base code is a purine.
func IsPurine(base string) bool { return base == "A" || base == "G" }

// ResidueID identifies a residue within a structure.
type ResidueID struct {
	Chain   string
	Number  int
	InsCode string
}

func (id ResidueID) String() string {
	return fmt.Sprintf("%s:%d%s", id.Chain, id.Number, id.InsCode)
}

// Less is the fixed total order used to canonicalize pairs: chain, then
// sequence number, then insertion code.
func (id ResidueID) Less(o ResidueID) bool {
	if id.Chain != o.Chain {
		return id.Chain < o.Chain
	}
	if id.Number != o.Number {
		return id.Number < o.Number
	}
	return id.InsCode < o.InsCode
}

// Residue is one nucleotide. Atoms keep file order; lookup by name is O(1).
type Residue struct {
	ID   ResidueID
	Name string // raw residue name from the file, e.g. "G", "DT", "PSU"
	Base string // normalized one-letter code, "" if not a standard base
	// Index is the residue's position in structure traversal order; it is
	// the tie-break used to consider each unordered pair exactly once.
	Index int

	atoms    []*Atom
	byName   map[string]*Atom
	centroid geom.Vec

	frame    *geom.Frame // set once by the frame pre-pass; nil if invalid
	frameErr error       // why the frame is invalid, nil otherwise
}

// NewResidue builds a residue from its atoms. Atom order is preserved;
// on duplicate atom names the first occurrence wins (alternate locations
// are filtered upstream).
func NewResidue(id ResidueID, name string, atoms []*Atom) *Residue {
	r := &Residue{
		ID:     id,
		Name:   name,
		Base:   NormalizeBase(name),
		atoms:  atoms,
		byName: make(map[string]*Atom, len(atoms)),
	}
	var c geom.Vec
	for _, a := range atoms {
		a.res = r
		if _, dup := r.byName[a.Name]; !dup {
			r.byName[a.Name] = a
		}
		c = c.Add(a.Pos)
	}
	if len(atoms) > 0 {
		r.centroid = c.Scale(1 / float64(len(atoms)))
	}
	return r
}

// Atoms returns the residue's atoms in file order. Callers must not modify
// the returned slice.
func (r *Residue) Atoms() []*Atom { return r.atoms }

// Atom looks up an atom by name.
func (r *Residue) Atom(name string) (*Atom, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Centroid is the mean position of all the residue's atoms.
func (r *Residue) Centroid() geom.Vec { return r.centroid }

// SetFrame records the result of the frame pre-pass. It is called exactly
// once per residue, before the structure is shared with workers.
func (r *Residue) SetFrame(f *geom.Frame, err error) {
	r.frame = f
	r.frameErr = err
}

// Frame returns the residue's local frame, or false when the residue is
// frame-invalid (unsupported type, missing or degenerate ring atoms).
func (r *Residue) Frame() (*geom.Frame, bool) {
	return r.frame, r.frame != nil
}

// FrameErr reports why the residue is frame-invalid, or nil.
func (r *Residue) FrameErr() error { return r.frameErr }
