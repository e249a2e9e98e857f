// internal/writers/annotation.go
package writers

import (
	"fmt"
	"io"

	"rnannot/core/taxonomy"
	"rnannot/internal/output"
)

// StartAnnotationWriter spins up a writer goroutine for annotations and
// returns the feed channel plus a one-shot error channel. The caller
// closes the feed when done and then receives the writer's result.
// Broken-pipe errors (downstream `head` closing early) are suppressed.
func StartAnnotationWriter(out io.Writer, format string, header bool, bufSize int) (chan<- taxonomy.Annotation, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan taxonomy.Annotation, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case output.FormatJSON:
			var buf []taxonomy.Annotation
			for a := range in {
				buf = append(buf, a)
			}
			err = output.WriteJSON(out, buf)

		case output.FormatJSONL:
			pipe, done := StartAnnotationJSONLWriter(out, bufSize)
			for a := range in {
				pipe <- a
			}
			close(pipe)
			err = <-done

		case output.FormatText:
			err = output.StreamText(out, in, header)

		default:
			err = fmt.Errorf("unsupported output %q", format)
		}
		// Keep consuming until the producer closes the feed: a writer
		// that failed mid-stream must not leave the producer blocked on
		// a full channel.
		for range in {
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
