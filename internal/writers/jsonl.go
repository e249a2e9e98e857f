// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"rnannot/core/taxonomy"
	"rnannot/internal/jsonlutil"
	"rnannot/internal/output"
)

// StartAnnotationJSONLWriter streams each annotation as one JSON line (v1).
func StartAnnotationJSONLWriter(out io.Writer, bufSize int) (chan<- taxonomy.Annotation, <-chan error) {
	return jsonlutil.Start[taxonomy.Annotation](out, bufSize,
		func(enc *json.Encoder, a taxonomy.Annotation) error {
			return enc.Encode(output.ToAPIAnnotation(a))
		},
		IsBrokenPipe,
	)
}
