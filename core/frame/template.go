// Package frame fits the per-residue local reference frame: a rigid
// Kabsch superposition of the observed base-ring atoms onto a canonical
// planar template. The template fixes the frame convention: origin at the
// ring-atom centroid, z along the ring normal, x pointing from the
// centroid toward the glycosidic nitrogen.
package frame

import (
	"math"

	"rnannot/core/geom"
)

// ringBond is the idealized aromatic ring bond length in Ångströms used
// to generate the planar templates.
const ringBond = 1.39

// Template is the canonical planar geometry for one base type.
type Template struct {
	Base string
	// RingAtoms lists the ring atom names in ring order, starting at the
	// glycosidic nitrogen.
	RingAtoms []string
	// Coords are planar template coordinates (z = 0), centered on the
	// ring-atom centroid, x axis through the glycosidic nitrogen.
	Coords map[string]geom.Vec
	// Glycosidic is the glycosidic nitrogen name (N9 purines, N1 pyrimidines).
	Glycosidic string
}

// Templates is the immutable per-base template table. It is constructed
// once at startup and passed by reference into the builder (and tests);
// there is no package-level mutable state.
type Templates struct {
	byBase map[string]*Template
}

// NewTemplates generates the canonical templates for A, C, G, U and T.
// Pyrimidine rings are an idealized regular hexagon; purines add the
// regular pentagon fused on the C4–C5 edge. The generated geometry is
// planar and deterministic, which is all the frame fit needs: the fit
// residual tolerance absorbs the difference from refined experimental
// ring geometry.
func NewTemplates() *Templates {
	t := &Templates{byBase: make(map[string]*Template, 5)}

	pyrimidine := []string{"N1", "C2", "N3", "C4", "C5", "C6"}
	purine := []string{"N9", "C8", "N7", "C5", "C6", "N1", "C2", "N3", "C4"}

	for _, base := range []string{"C", "U", "T"} {
		t.byBase[base] = buildTemplate(base, pyrimidine, "N1", false)
	}
	for _, base := range []string{"A", "G"} {
		t.byBase[base] = buildTemplate(base, purine, "N9", true)
	}
	return t
}

// ForBase returns the template for a one-letter base code.
func (t *Templates) ForBase(base string) (*Template, bool) {
	tpl, ok := t.byBase[base]
	return tpl, ok
}

func buildTemplate(base string, ringAtoms []string, glyco string, fused bool) *Template {
	coords := make(map[string]geom.Vec, len(ringAtoms))

	// Hexagon N1..C6 at 60° steps; for a regular hexagon the circumradius
	// equals the bond length.
	hex := []string{"N1", "C2", "N3", "C4", "C5", "C6"}
	for i, name := range hex {
		s, c := math.Sincos(float64(i) * math.Pi / 3)
		coords[name] = geom.Vec{X: ringBond * c, Y: ringBond * s}
	}

	if fused {
		// Regular pentagon C4–N9–C8–N7–C5 sharing the C4–C5 edge, built on
		// the side of the edge facing away from the hexagon center.
		a, b := coords["C4"], coords["C5"]
		mid := a.Add(b).Scale(0.5)
		out := mid.Unit() // hexagon is centered at the origin here
		apothem := ringBond / (2 * math.Tan(math.Pi/5))
		circum := ringBond / (2 * math.Sin(math.Pi/5))
		center := mid.Add(out.Scale(apothem))

		thA := math.Atan2(a.Y-center.Y, a.X-center.X)
		thB := math.Atan2(b.Y-center.Y, b.X-center.X)
		// Walk from C4 around the pentagon away from C5.
		step := 2 * math.Pi / 5
		if angleDiff(thA+step, thB) < angleDiff(thA-step, thB) {
			step = -step
		}
		for i, name := range []string{"N9", "C8", "N7"} {
			th := thA + float64(i+1)*step
			coords[name] = geom.Vec{
				X: center.X + circum*math.Cos(th),
				Y: center.Y + circum*math.Sin(th),
			}
		}
	}

	// Recenter on the ring-atom centroid and rotate the glycosidic
	// nitrogen onto the +x axis so every template shares the convention.
	ps := make([]geom.Vec, 0, len(ringAtoms))
	for _, name := range ringAtoms {
		ps = append(ps, coords[name])
	}
	centroid := geom.Centroid(ps)
	g := coords[glyco].Sub(centroid)
	rot := geom.RotZ(-math.Atan2(g.Y, g.X) * 180 / math.Pi)

	final := make(map[string]geom.Vec, len(ringAtoms))
	for _, name := range ringAtoms {
		final[name] = rot.MulVec(coords[name].Sub(centroid))
	}

	return &Template{
		Base:       base,
		RingAtoms:  append([]string(nil), ringAtoms...),
		Coords:     final,
		Glycosidic: glyco,
	}
}

// angleDiff returns the absolute angular distance between two angles.
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
