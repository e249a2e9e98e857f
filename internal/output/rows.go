// internal/output/rows.go
package output

import (
	"rnannot/core/classify"
	"rnannot/core/frame"
	"rnannot/core/structure"
	"rnannot/core/taxonomy"
	"rnannot/pkg/api"
)

// ToAPIAnnotation converts a domain annotation to the stable wire schema
// (v1). Pairing-only and stacking-only descriptors ride along as
// omitempty fields.
func ToAPIAnnotation(a taxonomy.Annotation) api.AnnotationV1 {
	v := api.AnnotationV1{
		ChainA:  a.A.Chain,
		NumberA: a.A.Number,
		InsA:    a.A.InsCode,
		BaseA:   a.ABase,

		ChainB:  a.B.Chain,
		NumberB: a.B.Number,
		InsB:    a.B.InsCode,
		BaseB:   a.BBase,

		Category: a.Category.String(),
		Code:     a.Code,

		Distance:   a.Desc.CenterDistance,
		HBonds:     a.Desc.HBonds,
		MinContact: a.Desc.MinContact,
		ContactA:   a.Desc.ContactAtoms[0],
		ContactB:   a.Desc.ContactAtoms[1],
	}
	switch a.Category {
	case classify.CategoryPair:
		v.NormalAngle = a.Desc.NormalAngle
		v.ZOffset = a.Desc.ZOffset
	case classify.CategoryStack:
		v.NormalAngle = a.Desc.NormalAngle
		v.ZOffset = a.Desc.ZOffset
		v.Overlap = a.Desc.Overlap
	}
	return v
}

func toAPIAnnotations(list []taxonomy.Annotation) []api.AnnotationV1 {
	out := make([]api.AnnotationV1, 0, len(list))
	for _, a := range list {
		out = append(out, ToAPIAnnotation(a))
	}
	return out
}

// BuildReport assembles the whole-run report: every annotation plus the
// residues the frame pre-pass excluded, so a partial run is auditable
// from its output alone.
func BuildReport(s *structure.Structure, excluded []frame.Exclusion, list []taxonomy.Annotation) api.ReportV1 {
	rep := api.ReportV1{
		StructureID: s.Name,
		Residues:    s.NumResidues(),
		Annotations: toAPIAnnotations(list),
	}
	for _, ex := range excluded {
		rep.Excluded = append(rep.Excluded, api.ExclusionV1{
			Chain:  ex.ID.Chain,
			Number: ex.ID.Number,
			Ins:    ex.ID.InsCode,
			Name:   residueName(s, ex.ID),
			Reason: ex.Reason.Error(),
		})
	}
	return rep
}

func residueName(s *structure.Structure, id structure.ResidueID) string {
	for _, r := range s.Residues() {
		if r.ID == id {
			return r.Name
		}
	}
	return ""
}
