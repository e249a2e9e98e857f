// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"rnannot/core/taxonomy"
)

// WriteText prints one TSV line per annotation.
func WriteText(w io.Writer, list []taxonomy.Annotation, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, a := range list {
		if err := writeTextRow(w, a); err != nil {
			return err
		}
	}
	return nil
}

// StreamText prints annotations as they arrive; the channel is expected
// to already be in canonical order.
func StreamText(w io.Writer, in <-chan taxonomy.Annotation, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for a := range in {
		if err := writeTextRow(w, a); err != nil {
			return err
		}
	}
	return nil
}

func writeTextRow(w io.Writer, a taxonomy.Annotation) error {
	_, err := fmt.Fprintf(w,
		"%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%d\t%.2f\n",
		a.A, a.ABase, a.Code, a.B, a.BBase,
		a.Category, a.Desc.CenterDistance, a.Desc.HBonds, a.Desc.MinContact,
	)
	return err
}
