// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"rnannot/internal/output"
	"rnannot/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Structures []string // PDB files, '-' for stdin
	ConfigFile string   // YAML tolerance overrides

	// Classification
	Categories []string // empty = all categories

	// Performance
	Threads int

	// Output
	Output    string
	Report    bool // full JSON report (annotations + excluded residues)
	Symmetric bool // also emit each annotation from the partner's side
	Header    bool // true unless --no-header
	LogLevel  string
	Quiet     bool

	Version bool
}

var knownCategories = map[string]bool{
	"pair":           true,
	"stack":          true,
	"base-phosphate": true,
	"base-ribose":    true,
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: geometric annotation of base interactions in nucleic acid structures

Version: %s

Usage: %s [flags] structure.pdb [more.pdb ...]
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, nil) }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	var structures stringSlice
	fs.Var(&structures, "structures", "PDB file(s) (repeatable or '-'); positional arguments work too [*]")
	fs.StringVar(&opt.ConfigFile, "config", "", "YAML file overriding classification tolerances")

	var categories string
	fs.StringVar(&categories, "categories", "", "comma-separated category filter: pair,stack,base-phosphate,base-ribose (empty = all)")

	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	fs.StringVar(&opt.Output, "output", output.FormatText, "output format: text | json | jsonl [text]")
	fs.BoolVar(&opt.Report, "report", false, "emit a full JSON report including excluded residues [false]")
	fs.BoolVar(&opt.Symmetric, "symmetric", false, "emit each annotation in both orientations (cWH from one side, cHW from the other) [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.StringVar(&opt.LogLevel, "log-level", "info", "log level: debug | info | warn | error [info]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "log errors only [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Structures = append([]string(nil), structures...)
	opt.Structures = append(opt.Structures, fs.Args()...)
	opt.Header = !noHeader

	if categories != "" {
		for _, c := range strings.Split(categories, ",") {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			if !knownCategories[c] {
				return opt, fmt.Errorf("unknown category %q", c)
			}
			opt.Categories = append(opt.Categories, c)
		}
	}

	switch opt.Output {
	case output.FormatText, output.FormatJSON, output.FormatJSONL:
	default:
		return opt, fmt.Errorf("unknown output format %q", opt.Output)
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be >= 0")
	}
	if len(opt.Structures) == 0 {
		return opt, errors.New("provide at least one structure file (or '-')")
	}
	return opt, nil
}

// stringSlice lets a flag repeat.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}
