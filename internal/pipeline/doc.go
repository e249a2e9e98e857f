// Package pipeline fans residues out to a pool of classification
// workers, deduplicates pair candidates, and calls a visit callback in
// deterministic residue order.
//
// Workers only read: the structure and its grid index are frozen before
// the pool starts, and each interaction record is owned by exactly one
// worker until it reaches the collector.
package pipeline
