package geom

// Frame is an orthonormal local coordinate system: an origin plus a
// rotation whose columns are the frame axes in world coordinates
// (in-plane x, in-plane y, plane normal z).
type Frame struct {
	Origin   Vec
	Rotation Mat
	// Residual is the RMSD of the template fit that produced the frame.
	Residual float64
}

// Local expresses the world point w in frame coordinates: Rᵀ·(w − origin).
func (f *Frame) Local(w Vec) Vec {
	return f.Rotation.Transpose().MulVec(w.Sub(f.Origin))
}

// World maps frame-local coordinates back into world space.
func (f *Frame) World(l Vec) Vec {
	return f.Rotation.MulVec(l).Add(f.Origin)
}

// XAxis returns the in-plane x axis in world coordinates.
func (f *Frame) XAxis() Vec { return f.Rotation.Col(0) }

// Normal returns the plane normal (frame z axis) in world coordinates.
func (f *Frame) Normal() Vec { return f.Rotation.Col(2) }
