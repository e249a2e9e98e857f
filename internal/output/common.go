package output

// Output format identifiers shared by the CLI and the writer registry.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "residue_a\tbase_a\tcode\tresidue_b\tbase_b\tcategory\tdistance\thbonds\tmin_contact"
