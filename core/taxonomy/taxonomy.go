// Package taxonomy maps classifier decisions onto the standard
// annotation nomenclature: pairing families like cWW and tHS, stacking
// subtypes s33/s35/s53/s55, and numbered base-phosphate (nBPh) and
// base-ribose (nBR) codes.
package taxonomy

import (
	"fmt"

	"rnannot/core/classify"
)

// InvariantViolationError means an Interaction reached encoding in a
// state the classifier is never supposed to produce. It is a programming
// error, not an input problem, and callers should treat it as fatal.
type InvariantViolationError struct {
	Category classify.Category
	Detail   string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("taxonomy: %s interaction violates encoding invariant: %s", e.Category, e.Detail)
}

// Annotation is one encoded interaction: the classifier record plus its
// nomenclature code, expressed from residue A's point of view.
type Annotation struct {
	classify.Interaction
	Code string
}

// bphIndex numbers the base-phosphate positions by the base atom that
// makes the contact. The same numbering serves base-ribose codes.
var bphIndex = map[string]map[string]int{
	"A": {"C8": 0, "C2": 2, "N6": 6},
	"G": {"C8": 0, "N2": 1, "N1": 5},
	"C": {"C6": 0, "N4": 6},
	"U": {"C6": 0, "N3": 5},
}

func init() {
	bphIndex["T"] = bphIndex["U"]
}

// Encode assigns the nomenclature code for one classified interaction.
func Encode(it classify.Interaction) (Annotation, error) {
	ann := Annotation{Interaction: it}
	switch it.Category {
	case classify.CategoryPair:
		ann.Code = pairCode(it.Cis, it.EdgeA, it.EdgeB)
	case classify.CategoryStack:
		da, err := faceDigit(it.FaceA)
		if err != nil {
			return Annotation{}, &InvariantViolationError{Category: it.Category, Detail: err.Error()}
		}
		db, err := faceDigit(it.FaceB)
		if err != nil {
			return Annotation{}, &InvariantViolationError{Category: it.Category, Detail: err.Error()}
		}
		ann.Code = "s" + da + db
	case classify.CategoryBasePhosphate, classify.CategoryBaseRibose:
		code, err := backboneCode(it)
		if err != nil {
			return Annotation{}, err
		}
		ann.Code = code
	default:
		return Annotation{}, &InvariantViolationError{Category: it.Category, Detail: "category has no code"}
	}
	return ann, nil
}

func pairCode(cis bool, ea, eb classify.Edge) string {
	g := "t"
	if cis {
		g = "c"
	}
	return g + ea.String() + eb.String()
}

// faceDigit maps a stacking face to its nomenclature digit: the 3' face
// (+z in the base frame) is "3", the 5' face is "5".
func faceDigit(face int) (string, error) {
	switch face {
	case 1:
		return "3", nil
	case -1:
		return "5", nil
	}
	return "", fmt.Errorf("face %d is neither +1 nor -1", face)
}

func backboneCode(it classify.Interaction) (string, error) {
	base := it.ABase
	if it.DonorIndex == it.BIndex {
		base = it.BBase
	} else if it.DonorIndex != it.AIndex {
		return "", &InvariantViolationError{Category: it.Category, Detail: fmt.Sprintf("donor index %d matches neither side", it.DonorIndex)}
	}

	atom := it.Desc.ContactAtoms[0]
	idx, ok := bphIndex[base][atom]
	if !ok {
		return "", &InvariantViolationError{Category: it.Category, Detail: fmt.Sprintf("no position number for base %s atom %s", base, atom)}
	}
	suffix := "BPh"
	if it.Category == classify.CategoryBaseRibose {
		suffix = "BR"
	}
	return fmt.Sprintf("%d%s", idx, suffix), nil
}

// Reversed expresses the annotation from residue B's point of view:
// identity fields swap and the directional code flips (cWH becomes cHW,
// s35 becomes s53). Backbone codes are unchanged because the numbering
// already names the base side.
func (a Annotation) Reversed() Annotation {
	r := a
	r.A, r.B = a.B, a.A
	r.AIndex, r.BIndex = a.BIndex, a.AIndex
	r.ABase, r.BBase = a.BBase, a.ABase
	r.EdgeA, r.EdgeB = a.EdgeB, a.EdgeA
	r.FaceA, r.FaceB = a.FaceB, a.FaceA

	switch a.Category {
	case classify.CategoryPair:
		r.Code = pairCode(a.Cis, r.EdgeA, r.EdgeB)
		// Pair contact atoms are stored first-residue first; backbone
		// contacts stay donor-oriented and do not swap.
		r.Desc.ContactAtoms[0], r.Desc.ContactAtoms[1] =
			a.Desc.ContactAtoms[1], a.Desc.ContactAtoms[0]
	case classify.CategoryStack:
		da, errA := faceDigit(r.FaceA)
		db, errB := faceDigit(r.FaceB)
		if errA == nil && errB == nil {
			r.Code = "s" + da + db
		}
	}
	return r
}

// String renders the annotation the way the text report prints it.
func (a Annotation) String() string {
	return fmt.Sprintf("%s %s %s %s %s", a.A, a.ABase, a.Code, a.B, a.BBase)
}
