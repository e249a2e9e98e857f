// Package grid provides the uniform cell index over residue centroids
// used for sub-quadratic candidate discovery. A residue hashes into one
// cell sized near the interaction cutoff; a range query inspects the
// query cell and its 26 neighbors only, so query cost depends on local
// density, not structure size. The index is built once per structure and
// never mutated.
package grid

import (
	"math"

	"rnannot/core/geom"
	"rnannot/core/structure"
)

type cellKey struct{ x, y, z int }

// Grid is a read-only uniform cell index over residue centroids.
type Grid struct {
	cell  float64
	cells map[cellKey][]*structure.Residue
	n     int
}

// New builds the index. cellSize must be positive; it should be at least
// the largest query radius so a query never needs to look past the
// immediate neighbor shell.
func New(residues []*structure.Residue, cellSize float64) *Grid {
	g := &Grid{cell: cellSize, cells: make(map[cellKey][]*structure.Residue)}
	for _, r := range residues {
		if len(r.Atoms()) == 0 {
			continue
		}
		k := g.key(r.Centroid())
		g.cells[k] = append(g.cells[k], r)
		g.n++
	}
	return g
}

// CellSize returns the configured cell edge length.
func (g *Grid) CellSize() float64 { return g.cell }

// Len returns the number of indexed residues.
func (g *Grid) Len() int { return g.n }

func (g *Grid) key(p geom.Vec) cellKey {
	return cellKey{
		x: int(math.Floor(p.X / g.cell)),
		y: int(math.Floor(p.Y / g.cell)),
		z: int(math.Floor(p.Z / g.cell)),
	}
}

// Near returns all residues whose centroid lies within radius of p
// (inclusive). Order is unspecified; callers needing determinism sort
// downstream.
func (g *Grid) Near(p geom.Vec, radius float64) []*structure.Residue {
	if radius > g.cell {
		// A radius beyond the cell size would need a wider shell; the
		// caller configured the grid too fine for this query.
		return g.nearWide(p, radius)
	}
	var out []*structure.Residue
	c := g.key(p)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				for _, r := range g.cells[cellKey{c.x + dx, c.y + dy, c.z + dz}] {
					if r.Centroid().Distance(p) <= radius {
						out = append(out, r)
					}
				}
			}
		}
	}
	return out
}

// nearWide handles radii larger than the cell size by widening the shell.
func (g *Grid) nearWide(p geom.Vec, radius float64) []*structure.Residue {
	span := int(math.Ceil(radius / g.cell))
	var out []*structure.Residue
	c := g.key(p)
	for dx := -span; dx <= span; dx++ {
		for dy := -span; dy <= span; dy++ {
			for dz := -span; dz <= span; dz++ {
				for _, r := range g.cells[cellKey{c.x + dx, c.y + dy, c.z + dz}] {
					if r.Centroid().Distance(p) <= radius {
						out = append(out, r)
					}
				}
			}
		}
	}
	return out
}
