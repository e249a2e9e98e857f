// pkg/api/annotations_v1.go
package api

// AnnotationV1 is the stable JSON/JSONL schema for one annotated
// interaction. Keep fields, names, and types stable. Add new fields only
// with ",omitempty".
type AnnotationV1 struct {
	ChainA  string `json:"chain_a"`
	NumberA int    `json:"number_a"`
	InsA    string `json:"ins_a,omitempty"`
	BaseA   string `json:"base_a"`

	ChainB  string `json:"chain_b"`
	NumberB int    `json:"number_b"`
	InsB    string `json:"ins_b,omitempty"`
	BaseB   string `json:"base_b"`

	Category string `json:"category"` // "pair" | "stack" | "base-phosphate" | "base-ribose"
	Code     string `json:"code"`     // e.g. "cWW", "s35", "4BPh"

	Distance    float64 `json:"distance"`
	NormalAngle float64 `json:"normal_angle,omitempty"`
	ZOffset     float64 `json:"z_offset,omitempty"`
	Overlap     float64 `json:"overlap,omitempty"`
	HBonds      int     `json:"hbonds,omitempty"`
	MinContact  float64 `json:"min_contact,omitempty"`
	ContactA    string  `json:"contact_a,omitempty"`
	ContactB    string  `json:"contact_b,omitempty"`
}

// ExclusionV1 records a residue left out of frame-dependent
// classification and why.
type ExclusionV1 struct {
	Chain  string `json:"chain"`
	Number int    `json:"number"`
	Ins    string `json:"ins,omitempty"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ReportV1 is the stable schema for a whole-structure annotation run.
type ReportV1 struct {
	StructureID string         `json:"structure_id"`
	Residues    int            `json:"residues"`
	Annotations []AnnotationV1 `json:"annotations"`
	Excluded    []ExclusionV1  `json:"excluded,omitempty"`
}
