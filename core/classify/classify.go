// Package classify is the pairwise interaction decision engine. For each
// candidate residue pair it computes geometric descriptors in the
// residues' local frames and runs an ordered rule funnel — stacking, then
// pairing, then backbone contacts — where each stage may reject the pair
// before the more expensive stages run. Stage order is also precedence:
// a pair satisfying both stacking and pairing thresholds is stacking.
package classify

import (
	"rnannot/core/geom"
	"rnannot/core/structure"
)

// Category is the interaction class assigned to a pair.
type Category int

const (
	CategoryNone Category = iota
	CategoryPair
	CategoryStack
	CategoryBasePhosphate
	CategoryBaseRibose
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryPair:
		return "pair"
	case CategoryStack:
		return "stack"
	case CategoryBasePhosphate:
		return "base-phosphate"
	case CategoryBaseRibose:
		return "base-ribose"
	}
	return "invalid"
}

// Descriptors are the numeric quantities the decision was based on,
// retained on every Interaction for diagnostics and testability.
type Descriptors struct {
	// CenterDistance is the distance between the two base centers
	// (centroids when a residue has no frame).
	CenterDistance float64 `json:"center_distance"`
	// ZOffset is the second residue's base center height in the first
	// residue's frame.
	ZOffset float64 `json:"z_offset"`
	// InPlane is the in-plane component of the same displacement.
	InPlane float64 `json:"in_plane"`
	// NormalAngle is the folded angle between the ring normals, [0, 90].
	NormalAngle float64 `json:"normal_angle"`
	// Overlap is the ring-projection overlap fraction, [0, 1].
	Overlap float64 `json:"overlap"`
	// HBonds is the number of qualifying donor–acceptor contacts.
	HBonds int `json:"hbonds"`
	// MinContact is the closest qualifying contact distance (0 if none).
	MinContact float64 `json:"min_contact"`
	// ContactAtoms names the atoms of the best contact, first-residue
	// atom first (base atom first for backbone contacts).
	ContactAtoms [2]string `json:"contact_atoms"`
}

// Interaction is the classifier's output record. A and B are ordered by
// the canonical residue order (lower structure index first); directional
// attributes like edges and faces are expressed in that order.
type Interaction struct {
	A, B           structure.ResidueID
	AIndex, BIndex int
	ABase, BBase   string

	Category Category

	// EdgeA/EdgeB and Cis describe a pairing decision.
	EdgeA, EdgeB Edge
	Cis          bool

	// FaceA/FaceB are +1 (3' face) or −1 (5' face) for stacking.
	FaceA, FaceB int

	// DonorIndex is the structure index of the base-side residue for
	// backbone contacts.
	DonorIndex int

	Desc Descriptors
}

// Engine applies the rule funnel under one Config/Tables.
type Engine struct {
	cfg Config
	tab *Tables
}

// New creates an Engine. Tables may be nil, in which case the built-in
// chemistry tables are used.
func New(cfg Config, tab *Tables) *Engine {
	if tab == nil {
		tab = NewTables()
	}
	return &Engine{cfg: cfg, tab: tab}
}

// Config returns the engine's tolerances.
func (e *Engine) Config() Config { return e.cfg }

// pairCtx carries everything the funnel stages share for one pair.
type pairCtx struct {
	a, b   *structure.Residue
	fa, fb *geom.Frame // nil when frame-invalid
	dist   float64     // base-center distance
	desc   Descriptors
}

// stage is one predicate+classifier of the ordered funnel.
type stage func(*pairCtx) *Interaction

// Classify runs the funnel for one unordered pair and reports whether an
// interaction was assigned. The pair is canonicalized (lower structure
// index first) before any directional rule runs.
func (e *Engine) Classify(a, b *structure.Residue) (Interaction, bool) {
	if a == b {
		return Interaction{}, false
	}
	if b.Index < a.Index {
		a, b = b, a
	}

	ctx := &pairCtx{a: a, b: b}
	ctx.fa, _ = a.Frame()
	ctx.fb, _ = b.Frame()
	ctx.dist = baseCenter(a).Distance(baseCenter(b))
	ctx.desc.CenterDistance = ctx.dist

	// Stage 1: distance gate — reject before any frame math if the pair
	// is beyond every category's reach. Inclusive at the boundary.
	if ctx.dist > e.cfg.MaxInteractionRadius() {
		return Interaction{}, false
	}

	// Stage 2: frame-relative displacement, when both frames exist.
	if ctx.fa != nil && ctx.fb != nil {
		local := ctx.fa.Local(ctx.fb.Origin)
		ctx.desc.ZOffset = local.Z
		ctx.desc.InPlane = geom.Vec{X: local.X, Y: local.Y}.Norm()
		ctx.desc.NormalAngle = geom.PlaneAngle(ctx.fa.Normal(), ctx.fb.Normal())
	}

	// Stages 3–5 in fixed priority order.
	for _, st := range []stage{e.stack, e.pair, e.basePhosphate, e.baseRibose} {
		if it := st(ctx); it != nil {
			return *it, true
		}
	}
	return Interaction{}, false
}

// baseCenter is the frame origin (ring center) when available, otherwise
// the residue centroid — frame-invalid residues still take part in
// backbone contact detection.
func baseCenter(r *structure.Residue) geom.Vec {
	if f, ok := r.Frame(); ok {
		return f.Origin
	}
	return r.Centroid()
}

// newInteraction fills the shared identity fields.
func (ctx *pairCtx) newInteraction(cat Category) *Interaction {
	return &Interaction{
		A:        ctx.a.ID,
		B:        ctx.b.ID,
		AIndex:   ctx.a.Index,
		BIndex:   ctx.b.Index,
		ABase:    ctx.a.Base,
		BBase:    ctx.b.Base,
		Category: cat,
		Desc:     ctx.desc,
	}
}
