// internal/output/json.go
package output

import (
	"io"

	"rnannot/core/taxonomy"
	"rnannot/internal/jsonutil"
	"rnannot/pkg/api"
)

// WriteJSON writes a single JSON array of v1 annotations (pretty-indented).
func WriteJSON(w io.Writer, list []taxonomy.Annotation) error {
	return jsonutil.EncodePretty(w, toAPIAnnotations(list))
}

// WriteReportJSON writes the whole-run report (pretty-indented).
func WriteReportJSON(w io.Writer, rep api.ReportV1) error {
	return jsonutil.EncodePretty(w, rep)
}
