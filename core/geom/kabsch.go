package geom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrTooFewPoints is returned when fewer than three point pairs are given.
	ErrTooFewPoints = errors.New("geom: need at least 3 point pairs for a rigid fit")
	// ErrDegenerate is returned when the points are collinear (or coincident)
	// so no unique rotation exists.
	ErrDegenerate = errors.New("geom: degenerate point set, no unique rotation")
)

func sincosDeg(deg float64) (float64, float64) {
	s, c := math.Sincos(deg * math.Pi / 180)
	return s, c
}

// Fit is the result of a Kabsch rigid superposition.
type Fit struct {
	// Rotation maps reference (template) coordinates into observed space:
	// obs ≈ Rotation·ref + ObsCentroid, with ref centered on RefCentroid.
	Rotation    Mat
	ObsCentroid Vec
	RefCentroid Vec
	// RMSD is the root-mean-square residual of the superposition.
	RMSD float64
}

// Kabsch computes the least-squares rotation superposing the reference
// points ref onto the observed points obs (same length, same order).
// The classic SVD formulation is used: center both sets, build the 3×3
// cross-covariance, decompose, and flip the smallest singular direction
// when the raw product would be a reflection rather than a rotation.
func Kabsch(obs, ref []Vec) (Fit, error) {
	if len(obs) != len(ref) {
		return Fit{}, errors.New("geom: point sets differ in length")
	}
	if len(obs) < 3 {
		return Fit{}, ErrTooFewPoints
	}

	co := Centroid(obs)
	cr := Centroid(ref)

	// Cross-covariance C[i][j] = Σ ref_k[i] * obs_k[j] over centered points.
	var c [3][3]float64
	for k := range obs {
		o := obs[k].Sub(co)
		r := ref[k].Sub(cr)
		ro := [3]float64{r.X, r.Y, r.Z}
		oo := [3]float64{o.X, o.Y, o.Z}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				c[i][j] += ro[i] * oo[j]
			}
		}
	}

	cm := mat.NewDense(3, 3, []float64{
		c[0][0], c[0][1], c[0][2],
		c[1][0], c[1][1], c[1][2],
		c[2][0], c[2][1], c[2][2],
	})

	var svd mat.SVD
	if ok := svd.Factorize(cm, mat.SVDFull); !ok {
		return Fit{}, ErrDegenerate
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// Collinear points leave the second singular value at ~0 and the
	// in-plane orientation undetermined.
	sv := svd.Values(nil)
	if sv[1] < 1e-9 {
		return Fit{}, ErrDegenerate
	}

	// R = V·diag(1,1,d)·Uᵀ with d = sign(det(V·Uᵀ)); d = −1 corrects an
	// improper rotation (reflection).
	var vut mat.Dense
	vut.Mul(&v, u.T())
	d := 1.0
	if mat.Det(&vut) < 0 {
		d = -1.0
	}
	sign := mat.NewDiagDense(3, []float64{1, 1, d})
	var tmp, rm mat.Dense
	tmp.Mul(&v, sign)
	rm.Mul(&tmp, u.T())

	var rot Mat
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rot[i][j] = rm.At(i, j)
		}
	}

	// Residual computed directly; cheaper closed forms exist but this keeps
	// the reported RMSD exactly consistent with the returned rotation.
	var ss float64
	for k := range obs {
		p := rot.MulVec(ref[k].Sub(cr))
		q := obs[k].Sub(co)
		ss += p.Sub(q).Norm2()
	}
	rmsd := math.Sqrt(ss / float64(len(obs)))

	return Fit{Rotation: rot, ObsCentroid: co, RefCentroid: cr, RMSD: rmsd}, nil
}
