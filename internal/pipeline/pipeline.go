// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sort"
	"sync"

	"rnannot/core/classify"
	"rnannot/core/grid"
	"rnannot/core/structure"
)

// Config controls the annotation pipeline.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// Key uniquely identifies an unordered residue pair so the collector can
// guarantee at most one interaction per pair regardless of how the
// candidates were discovered.
type Key struct {
	AIndex, BIndex int
}

// ForEachInteraction classifies every candidate residue pair of s and
// calls visit exactly once per assigned interaction, in deterministic
// order (ascending A index, then B index). Workers share the read-only
// structure and grid; visit runs sequentially after all workers finish,
// so repeated runs over the same input produce identical output. It
// returns the first error encountered (including context cancellation).
func ForEachInteraction(
	ctx context.Context,
	cfg Config,
	s *structure.Structure,
	eng *classify.Engine,
	visit func(classify.Interaction) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	idx := grid.New(s.Residues(), eng.Config().EffectiveCellSize())
	radius := eng.Config().QueryRadius()

	jobs := make(chan *structure.Residue, cfg.Threads*2)
	results := make(chan []classify.Interaction, cfg.Threads*2)

	// Workers: each takes one residue and classifies it against every
	// neighbor with a higher structure index, so each unordered pair is
	// examined from exactly one side.
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case a, ok := <-jobs:
					if !ok {
						return
					}
					var hits []classify.Interaction
					for _, b := range idx.Near(a.Centroid(), radius) {
						if b.Index <= a.Index {
							continue
						}
						if it, found := eng.Classify(a, b); found {
							hits = append(hits, it)
						}
					}
					if len(hits) == 0 {
						continue
					}
					select {
					case results <- hits:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector + deduper
	var (
		all  []classify.Interaction
		cwg  sync.WaitGroup
		seen = make(map[Key]struct{}, 1<<10)
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for hs := range results {
			for _, it := range hs {
				k := Key{AIndex: it.AIndex, BIndex: it.BIndex}
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				all = append(all, it)
			}
		}
	}()

	// Feed work
feed:
	for _, r := range s.Residues() {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- r:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Worker completion order is nondeterministic; the canonical residue
	// order is restored before anything reaches the caller.
	sort.Slice(all, func(i, j int) bool {
		if all[i].AIndex != all[j].AIndex {
			return all[i].AIndex < all[j].AIndex
		}
		if all[i].BIndex != all[j].BIndex {
			return all[i].BIndex < all[j].BIndex
		}
		return all[i].Category < all[j].Category
	})
	for _, it := range all {
		if err := visit(it); err != nil {
			return err
		}
	}
	return nil
}
