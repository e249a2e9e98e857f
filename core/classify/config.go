package classify

import "fmt"

// Config collects every distance/angle tolerance the classifier uses.
// All comparisons in the rule funnel read from here, never from literals
// at the call site, so criteria can be tuned without touching logic.
// Distances in Ångströms, angles in degrees, overlap as a fraction.
type Config struct {
	// PairDistanceCutoff is the max base-center distance considered for
	// base pairing.
	PairDistanceCutoff float64 `mapstructure:"pair_distance_cutoff"`
	// StackDistanceCutoff is the max base-center distance considered for
	// stacking.
	StackDistanceCutoff float64 `mapstructure:"stack_distance_cutoff"`
	// BackboneDistanceCutoff is the max centroid distance at which
	// base-phosphate / base-ribose contacts are searched.
	BackboneDistanceCutoff float64 `mapstructure:"backbone_distance_cutoff"`

	// HBondDistanceTolerance is the max donor–acceptor heavy-atom distance.
	HBondDistanceTolerance float64 `mapstructure:"hbond_distance_tolerance"`
	// HBondAngleTolerance is the max elevation of the donor–acceptor vector
	// out of the mean base plane (hydrogens are not present, so planarity
	// of the contact stands in for the ideal bond angle).
	HBondAngleTolerance float64 `mapstructure:"hbond_angle_tolerance"`
	// IdealHBondLength is the reference donor–acceptor distance that edge
	// scoring measures deviation against.
	IdealHBondLength float64 `mapstructure:"ideal_hbond_length"`

	// StackAngleTolerance is the max deviation of the two ring normals from
	// parallel/antiparallel (complement convention applies).
	StackAngleTolerance float64 `mapstructure:"stack_angle_tolerance"`
	// StackMinZ / StackMaxZ bound the out-of-plane separation of the
	// partner's base center for stacking.
	StackMinZ float64 `mapstructure:"stack_min_z"`
	StackMaxZ float64 `mapstructure:"stack_max_z"`
	// MinRingOverlap is the minimum ring-projection overlap fraction.
	MinRingOverlap float64 `mapstructure:"min_ring_overlap"`

	// PairAngleTolerance is the max deviation of the two ring normals from
	// coplanar alignment for pairing.
	PairAngleTolerance float64 `mapstructure:"pair_angle_tolerance"`
	// PairMaxZ is the max out-of-plane offset of the partner's base center
	// for pairing.
	PairMaxZ float64 `mapstructure:"pair_max_z"`

	// BackboneContactCutoff is the max base-atom to backbone-oxygen
	// distance for base-phosphate / base-ribose contacts.
	BackboneContactCutoff float64 `mapstructure:"backbone_contact_cutoff"`

	// FrameResidualTolerance is the max ring-fit RMSD for a valid frame.
	FrameResidualTolerance float64 `mapstructure:"frame_residual_tolerance"`
	// CenterSlack widens candidate queries beyond the category cutoffs:
	// the spatial index hashes whole-residue centroids while the funnel
	// measures between base centers, which can sit a few Å away from the
	// centroid once backbone atoms are counted in.
	CenterSlack float64 `mapstructure:"center_slack"`
	// GridCellSize is the spatial index cell size; 0 means "use the query
	// radius" so a candidate query never looks past the immediate
	// neighbor shell.
	GridCellSize float64 `mapstructure:"grid_cell_size"`
}

// DefaultConfig returns the reference tolerances. They are deliberately
// configuration data, not constants baked into the funnel.
func DefaultConfig() Config {
	return Config{
		PairDistanceCutoff:     10.5,
		StackDistanceCutoff:    6.0,
		BackboneDistanceCutoff: 15.0,

		HBondDistanceTolerance: 3.5,
		HBondAngleTolerance:    45,
		IdealHBondLength:       2.9,

		StackAngleTolerance: 35,
		StackMinZ:           1.8,
		StackMaxZ:           5.5,
		MinRingOverlap:      0.15,

		PairAngleTolerance: 65,
		PairMaxZ:           2.5,

		BackboneContactCutoff: 4.0,

		FrameResidualTolerance: 0.5,
		CenterSlack:            6.0,
		GridCellSize:           0,
	}
}

// MaxInteractionRadius is the union of all category cutoffs; candidate
// generation and the default grid cell size use it.
func (c Config) MaxInteractionRadius() float64 {
	m := c.PairDistanceCutoff
	if c.StackDistanceCutoff > m {
		m = c.StackDistanceCutoff
	}
	if c.BackboneDistanceCutoff > m {
		m = c.BackboneDistanceCutoff
	}
	return m
}

// QueryRadius is the centroid distance candidate generation searches:
// the union of category cutoffs plus the centroid-to-base-center slack.
func (c Config) QueryRadius() float64 {
	return c.MaxInteractionRadius() + c.CenterSlack
}

// EffectiveCellSize resolves GridCellSize, defaulting to the query
// radius.
func (c Config) EffectiveCellSize() float64 {
	if c.GridCellSize > 0 {
		return c.GridCellSize
	}
	return c.QueryRadius()
}

// Validate rejects configurations the funnel cannot interpret.
func (c Config) Validate() error {
	pos := map[string]float64{
		"pair_distance_cutoff":     c.PairDistanceCutoff,
		"stack_distance_cutoff":    c.StackDistanceCutoff,
		"backbone_distance_cutoff": c.BackboneDistanceCutoff,
		"hbond_distance_tolerance": c.HBondDistanceTolerance,
		"ideal_hbond_length":       c.IdealHBondLength,
		"stack_max_z":              c.StackMaxZ,
		"pair_max_z":               c.PairMaxZ,
		"backbone_contact_cutoff":  c.BackboneContactCutoff,
		"frame_residual_tolerance": c.FrameResidualTolerance,
	}
	for name, v := range pos {
		if v <= 0 {
			return fmt.Errorf("classify: %s must be positive, got %g", name, v)
		}
	}
	if c.StackMinZ < 0 || c.StackMinZ >= c.StackMaxZ {
		return fmt.Errorf("classify: stack z window [%g, %g] is empty", c.StackMinZ, c.StackMaxZ)
	}
	if c.MinRingOverlap < 0 || c.MinRingOverlap > 1 {
		return fmt.Errorf("classify: min_ring_overlap %g outside [0,1]", c.MinRingOverlap)
	}
	for name, a := range map[string]float64{
		"hbond_angle_tolerance": c.HBondAngleTolerance,
		"stack_angle_tolerance": c.StackAngleTolerance,
		"pair_angle_tolerance":  c.PairAngleTolerance,
	} {
		if a <= 0 || a > 90 {
			return fmt.Errorf("classify: %s must be in (0, 90], got %g", name, a)
		}
	}
	if c.CenterSlack < 0 {
		return fmt.Errorf("classify: center_slack must be >= 0, got %g", c.CenterSlack)
	}
	if c.GridCellSize < 0 {
		return fmt.Errorf("classify: grid_cell_size must be >= 0, got %g", c.GridCellSize)
	}
	return nil
}
