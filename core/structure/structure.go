package structure

// Chain is an ordered run of residues sharing a chain identifier.
type Chain struct {
	ID       string
	Residues []*Residue
}

// Structure is the read-only root of the model.
type Structure struct {
	Name     string // source identifier, e.g. file stem
	chains   []*Chain
	residues []*Residue // flattened, traversal order
}

// New assembles a structure from pre-parsed chains and assigns each
// residue its global index. The input slices are owned by the structure
// afterwards and must not be modified by the caller.
func New(name string, chains []*Chain) *Structure {
	s := &Structure{Name: name, chains: chains}
	idx := 0
	for _, ch := range chains {
		for _, r := range ch.Residues {
			r.Index = idx
			idx++
			s.residues = append(s.residues, r)
		}
	}
	return s
}

// Chains returns the chains in file order.
func (s *Structure) Chains() []*Chain { return s.chains }

// Residues returns all residues in traversal order.
func (s *Structure) Residues() []*Residue { return s.residues }

// NumResidues returns the residue count.
func (s *Structure) NumResidues() int { return len(s.residues) }

// Adjacent reports whether two residues are covalent neighbors in the
// same chain (consecutive sequence numbers, same insertion code context).
// Adjacent residues routinely stack but are never annotated as paired.
func Adjacent(a, b *Residue) bool {
	if a.ID.Chain != b.ID.Chain {
		return false
	}
	d := a.ID.Number - b.ID.Number
	return d == 1 || d == -1
}
