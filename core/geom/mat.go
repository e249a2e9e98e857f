package geom

// Mat is a 3×3 matrix in row-major order. Rotations produced by the
// Kabsch fit are stored as Mat; columns are the rotated basis vectors.
type Mat [3][3]float64

// Identity returns the identity matrix.
func Identity() Mat {
	return Mat{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// MulVec computes m·v.
func (m Mat) MulVec(v Vec) Vec {
	return Vec{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Mul computes m·o.
func (m Mat) Mul(o Mat) Mat {
	var r Mat
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return r
}

// Transpose returns mᵀ. For rotations this is the inverse.
func (m Mat) Transpose() Mat {
	var r Mat
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Det returns the determinant.
func (m Mat) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Col returns column i as a vector.
func (m Mat) Col(i int) Vec {
	return Vec{m[0][i], m[1][i], m[2][i]}
}

// RotZ returns a rotation about the z axis by deg degrees.
// Used by tests and template construction.
func RotZ(deg float64) Mat {
	s, c := sincosDeg(deg)
	return Mat{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// RotX returns a rotation about the x axis by deg degrees.
func RotX(deg float64) Mat {
	s, c := sincosDeg(deg)
	return Mat{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

// RotY returns a rotation about the y axis by deg degrees.
func RotY(deg float64) Mat {
	s, c := sincosDeg(deg)
	return Mat{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}
