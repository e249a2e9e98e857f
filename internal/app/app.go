// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	iofs "io/fs"
	"runtime"

	"go.uber.org/zap"

	"rnannot/core/classify"
	"rnannot/core/frame"
	"rnannot/core/structure"
	"rnannot/core/taxonomy"
	"rnannot/internal/cli"
	"rnannot/internal/config"
	"rnannot/internal/logging"
	"rnannot/internal/output"
	"rnannot/internal/pdbload"
	"rnannot/internal/pipeline"
	"rnannot/internal/version"
	"rnannot/internal/writers"
)

// Exit codes: 0 success, 2 usage/input error, 3 runtime failure,
// 130 interrupted.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("rnannot")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "rnannot version %s\n", version.Version)
		return 0
	}

	log, err := logging.New(opts.LogLevel, opts.Quiet)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	defer func() { _ = log.Sync() }()

	set, err := config.Load(opts.ConfigFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	// CLI flags that were given explicitly beat file/env settings.
	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if explicit["threads"] {
		set.Threads = opts.Threads
	}
	if explicit["output"] {
		set.Output = opts.Output
	}
	threads := set.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}

	keep := map[string]bool{}
	for _, c := range opts.Categories {
		keep[c] = true
	}

	eng := classify.New(set.Classify, classify.NewTables())
	builder := frame.NewBuilder(frame.NewTemplates(), set.Classify.FrameResidualTolerance)

	if opts.Report {
		return runReport(parent, opts, outw, stderr, log, eng, builder, threads, keep)
	}
	return runStream(parent, opts, outw, stderr, log, eng, builder, threads, keep, set.Output)
}

// runStream feeds one writer goroutine across all input structures.
func runStream(
	ctx context.Context,
	opts cli.Options,
	outw *bufio.Writer,
	stderr io.Writer,
	log *zap.Logger,
	eng *classify.Engine,
	builder *frame.Builder,
	threads int,
	keep map[string]bool,
	format string,
) int {
	wch, werr := writers.StartAnnotationWriter(outw, format, opts.Header, 64)

	code := 0
	for _, path := range opts.Structures {
		anns, _, err := annotateOne(ctx, path, log, eng, builder, threads, keep)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			code = failureCode(err)
			break
		}
		for _, a := range anns {
			wch <- a
			if opts.Symmetric {
				wch <- a.Reversed()
			}
		}
	}
	close(wch)
	if err := <-werr; err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}

// runReport writes one full JSON report per input structure.
func runReport(
	ctx context.Context,
	opts cli.Options,
	outw *bufio.Writer,
	stderr io.Writer,
	log *zap.Logger,
	eng *classify.Engine,
	builder *frame.Builder,
	threads int,
	keep map[string]bool,
) int {
	for _, path := range opts.Structures {
		anns, run, err := annotateOne(ctx, path, log, eng, builder, threads, keep)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return failureCode(err)
		}
		rep := output.BuildReport(run.structure, run.excluded, anns)
		if err := output.WriteReportJSON(outw, rep); err != nil {
			if !writers.IsBrokenPipe(err) {
				_, _ = fmt.Fprintln(stderr, err)
				return 3
			}
			return 0
		}
	}
	return 0
}

// runResult carries per-structure context the report writer needs.
type runResult struct {
	structure *structure.Structure
	excluded  []frame.Exclusion
}

// annotateOne loads, frames, classifies and encodes one structure.
func annotateOne(
	ctx context.Context,
	path string,
	log *zap.Logger,
	eng *classify.Engine,
	builder *frame.Builder,
	threads int,
	keep map[string]bool,
) ([]taxonomy.Annotation, runResult, error) {
	s, err := pdbload.Load(path)
	if err != nil {
		return nil, runResult{}, err
	}
	excluded := builder.BuildAll(s)
	log.Info("structure loaded",
		zap.String("structure", s.Name),
		zap.Int("residues", s.NumResidues()),
		zap.Int("excluded", len(excluded)),
	)
	for _, ex := range excluded {
		log.Debug("residue excluded", zap.String("residue", ex.ID.String()), zap.Error(ex.Reason))
	}

	var anns []taxonomy.Annotation
	err = pipeline.ForEachInteraction(ctx, pipeline.Config{Threads: threads}, s, eng, func(it classify.Interaction) error {
		if len(keep) > 0 && !keep[it.Category.String()] {
			return nil
		}
		ann, err := taxonomy.Encode(it)
		if err != nil {
			return err
		}
		anns = append(anns, ann)
		return nil
	})
	if err != nil {
		return nil, runResult{}, err
	}
	log.Info("structure annotated",
		zap.String("structure", s.Name),
		zap.Int("annotations", len(anns)),
	)
	return anns, runResult{structure: s, excluded: excluded}, nil
}

// failureCode distinguishes bad input (2), runtime failure (3) and
// interruption (130).
func failureCode(err error) int {
	var pe *pdbload.ParseError
	var iv *taxonomy.InvariantViolationError
	switch {
	case errors.As(err, &iv):
		return 3
	case errors.As(err, &pe):
		return 2
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return 130
	}
	var perr *iofs.PathError
	if errors.As(err, &perr) {
		return 2
	}
	return 3
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
