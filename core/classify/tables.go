package classify

// Edge names one of the three hydrogen-bonding edges of a base.
type Edge int

const (
	EdgeWatsonCrick Edge = iota
	EdgeHoogsteen
	EdgeSugar
)

func (e Edge) String() string {
	switch e {
	case EdgeWatsonCrick:
		return "W"
	case EdgeHoogsteen:
		return "H"
	case EdgeSugar:
		return "S"
	}
	return "?"
}

var allEdges = []Edge{EdgeWatsonCrick, EdgeHoogsteen, EdgeSugar}

// Tables is the immutable chemistry lookup used by the classifier:
// donor/acceptor atoms, edge membership and backbone atom names per base
// type. Constructed once at startup and passed by reference; no hidden
// package-level state. T shares U's chemistry (the methyl plays no role
// in the criteria evaluated here).
type Tables struct {
	donors    map[string][]string
	acceptors map[string][]string
	edges     map[string]map[Edge][]string
	// phosphate and ribose are the backbone atoms a base atom may contact.
	phosphate []string
	ribose    []string
	// baseContacts are the base atoms eligible for backbone contacts.
	baseContacts map[string][]string
}

// NewTables builds the lookup table set.
func NewTables() *Tables {
	t := &Tables{
		donors: map[string][]string{
			"A": {"N6"},
			"G": {"N1", "N2"},
			"C": {"N4"},
			"U": {"N3"},
		},
		acceptors: map[string][]string{
			"A": {"N1", "N3", "N7"},
			"G": {"O6", "N3", "N7"},
			"C": {"O2", "N3"},
			"U": {"O2", "O4"},
		},
		edges: map[string]map[Edge][]string{
			"A": {
				EdgeWatsonCrick: {"N1", "C2", "N6"},
				EdgeHoogsteen:   {"N6", "N7", "C8"},
				EdgeSugar:       {"N3", "C2"},
			},
			"G": {
				EdgeWatsonCrick: {"N1", "N2", "O6"},
				EdgeHoogsteen:   {"O6", "N7", "C8"},
				EdgeSugar:       {"N3", "N2"},
			},
			"C": {
				EdgeWatsonCrick: {"N3", "N4", "O2"},
				EdgeHoogsteen:   {"N4", "C5", "C6"},
				EdgeSugar:       {"O2"},
			},
			"U": {
				EdgeWatsonCrick: {"N3", "O4", "O2"},
				EdgeHoogsteen:   {"O4", "C5", "C6"},
				EdgeSugar:       {"O2"},
			},
		},
		phosphate: []string{"OP1", "OP2", "O5'", "O3'"},
		ribose:    []string{"O2'", "O4'"},
		baseContacts: map[string][]string{
			"A": {"C2", "C8", "N6"},
			"G": {"C8", "N1", "N2"},
			"C": {"C6", "N4"},
			"U": {"C6", "N3"},
		},
	}
	// T behaves like U throughout.
	t.donors["T"] = t.donors["U"]
	t.acceptors["T"] = t.acceptors["U"]
	t.edges["T"] = t.edges["U"]
	t.baseContacts["T"] = t.baseContacts["U"]
	return t
}

// Donors returns the hydrogen-bond donor heavy atoms for a base code.
func (t *Tables) Donors(base string) []string { return t.donors[base] }

// Acceptors returns the hydrogen-bond acceptor atoms for a base code.
func (t *Tables) Acceptors(base string) []string { return t.acceptors[base] }

// EdgeAtoms returns the atoms defining one edge of a base.
func (t *Tables) EdgeAtoms(base string, e Edge) []string {
	m, ok := t.edges[base]
	if !ok {
		return nil
	}
	return m[e]
}

// PhosphateAtoms returns the phosphate-group atom names.
func (t *Tables) PhosphateAtoms() []string { return t.phosphate }

// RiboseAtoms returns the ribose oxygen names eligible for base-ribose
// contacts.
func (t *Tables) RiboseAtoms() []string { return t.ribose }

// BaseContactAtoms returns the base atoms eligible to contact a partner's
// backbone.
func (t *Tables) BaseContactAtoms(base string) []string { return t.baseContacts[base] }

// onEdge reports whether atom belongs to the given edge of base.
func (t *Tables) onEdge(base string, e Edge, atom string) bool {
	for _, a := range t.EdgeAtoms(base, e) {
		if a == atom {
			return true
		}
	}
	return false
}
