package structure

import "fmt"

// MalformedResidueError marks a residue whose declared type has no known
// ring-atom template (unsupported or modified residue). The residue stays
// in the structure but is frame-invalid; processing continues.
type MalformedResidueError struct {
	ID   ResidueID
	Name string
}

func (e *MalformedResidueError) Error() string {
	return fmt.Sprintf("residue %s: unsupported type %q, no ring template", e.ID, e.Name)
}
