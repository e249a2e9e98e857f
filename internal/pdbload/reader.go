// internal/pdbload/reader.go
package pdbload

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"rnannot/core/geom"
	"rnannot/core/structure"
)

// ParseError reports a malformed coordinate line with its position.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// Load reads a PDB-format file into a structure. "-" reads stdin and a
// .gz suffix is decompressed transparently. Only the first model of a
// multi-model file is kept; alternate locations other than the primary
// one, hydrogens and waters are dropped.
func Load(path string) (*structure.Structure, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Read(rc, stemName(path))
}

// Read parses PDB-format text. name becomes the structure's identifier.
func Read(r io.Reader, name string) (*structure.Structure, error) {
	type resKey struct {
		chain string
		num   int
		ins   string
	}

	var (
		chains    []*structure.Chain
		chainByID = map[string]*structure.Chain{}
		// accumulating residue
		curKey   resKey
		curName  string
		curAtoms []*structure.Atom
		haveCur  bool
	)

	pending := map[resKey]bool{} // guards against interleaved residues

	flush := func() {
		if !haveCur {
			return
		}
		ch, ok := chainByID[curKey.chain]
		if !ok {
			ch = &structure.Chain{ID: curKey.chain}
			chainByID[curKey.chain] = ch
			chains = append(chains, ch)
		}
		id := structure.ResidueID{Chain: curKey.chain, Number: curKey.num, InsCode: curKey.ins}
		ch.Residues = append(ch.Residues, structure.NewResidue(id, curName, curAtoms))
		pending[curKey] = true
		curAtoms = nil
		haveCur = false
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if len(line) < 6 {
			continue
		}
		rec := strings.TrimSpace(line[:6])
		switch rec {
		case "ENDMDL", "END":
			// First model only.
			flush()
			return structure.New(name, chains), nil
		case "TER":
			flush()
			continue
		case "ATOM", "HETATM":
		default:
			continue
		}

		if len(line) < 54 {
			return nil, &ParseError{Path: name, Line: lineNo, Msg: "coordinate record too short"}
		}

		altLoc := line[16]
		if altLoc != ' ' && altLoc != 'A' {
			continue
		}
		resName := strings.TrimSpace(line[17:20])
		if resName == "HOH" {
			continue
		}
		atomName := strings.TrimSpace(line[12:16])
		element := ""
		if len(line) >= 78 {
			element = strings.TrimSpace(line[76:78])
		}
		if element == "" {
			element = guessElement(atomName)
		}
		if element == "H" || element == "D" {
			continue
		}

		num, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
		if err != nil {
			return nil, &ParseError{Path: name, Line: lineNo, Msg: fmt.Sprintf("bad residue number %q", strings.TrimSpace(line[22:26]))}
		}
		var pos geom.Vec
		for i, span := range [3][2]int{{30, 38}, {38, 46}, {46, 54}} {
			v, err := strconv.ParseFloat(strings.TrimSpace(line[span[0]:span[1]]), 64)
			if err != nil {
				return nil, &ParseError{Path: name, Line: lineNo, Msg: fmt.Sprintf("bad coordinate %q", strings.TrimSpace(line[span[0]:span[1]]))}
			}
			switch i {
			case 0:
				pos.X = v
			case 1:
				pos.Y = v
			case 2:
				pos.Z = v
			}
		}

		key := resKey{
			chain: strings.TrimSpace(line[21:22]),
			num:   num,
			ins:   strings.TrimSpace(line[26:27]),
		}
		if haveCur && key != curKey {
			flush()
		}
		if !haveCur {
			if pending[key] {
				return nil, &ParseError{Path: name, Line: lineNo, Msg: fmt.Sprintf("residue %s:%d reopened after its chain moved on", key.chain, key.num)}
			}
			curKey, curName, haveCur = key, resName, true
		}
		curAtoms = append(curAtoms, structure.NewAtom(atomName, element, pos))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return structure.New(name, chains), nil
}

// guessElement falls back to the first letter of the atom name when the
// element column is absent (common in minimal files).
func guessElement(atomName string) string {
	for _, c := range atomName {
		if c >= 'A' && c <= 'Z' {
			return string(c)
		}
	}
	return ""
}

func stemName(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
