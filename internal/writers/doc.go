// Package writers owns the output goroutines: each writer consumes a
// channel of annotations, renders one format, and reports a single error
// when its input closes. Keeping rendering off the classification path
// lets the pipeline finish at its own pace.
package writers
