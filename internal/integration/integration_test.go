// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rnannot/core/frame"
	"rnannot/core/geom"
	"rnannot/internal/app"
	"rnannot/pkg/api"
)

var tpl = frame.NewTemplates()

type placedResidue struct {
	base  string
	chain string
	num   int
	rot   geom.Mat
	shift geom.Vec
}

// renderPDB formats placed template residues as fixed-column ATOM records.
func renderPDB(t *testing.T, residues []placedResidue) string {
	t.Helper()
	var b strings.Builder
	serial := 1
	for _, pr := range residues {
		tp, ok := tpl.ForBase(pr.base)
		require.True(t, ok)
		for _, a := range frame.Place(tp, pr.rot, pr.shift) {
			fmt.Fprintf(&b, "ATOM  %5d %-4s %3s %s%4d    %8.3f%8.3f%8.3f  1.00  0.00          %2s\n",
				serial, a.Name, pr.base, pr.chain, pr.num, a.Pos.X, a.Pos.Y, a.Pos.Z, a.Element)
			serial++
		}
	}
	b.WriteString("END\n")
	return b.String()
}

// wcShift places a flipped U so its N3 faces the adenine's N1 at 2.9 Å.
func wcShift(t *testing.T) geom.Vec {
	t.Helper()
	atp, _ := tpl.ForBase("A")
	utp, _ := tpl.ForBase("U")
	n1 := atp.Coords["N1"]
	dir := n1.Unit()
	target := n1.Add(dir.Scale(2.9))
	return target.Sub(geom.RotX(180).MulVec(utp.Coords["N3"]))
}

func writeScene(t *testing.T) string {
	t.Helper()
	scene := []placedResidue{
		{"A", "A", 1, geom.Identity(), geom.Vec{}},
		{"G", "A", 5, geom.Identity(), geom.Vec{X: 0.3, Z: 3.4}},
		{"U", "A", 9, geom.RotX(180), wcShift(t)},
	}
	path := filepath.Join(t.TempDir(), "scene.pdb")
	require.NoError(t, os.WriteFile(path, []byte(renderPDB(t, scene)), 0o644))
	return path
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestAnnotateTextEndToEnd(t *testing.T) {
	path := writeScene(t)
	code, out, stderr := run(t, "-quiet", path)
	require.Equal(t, 0, code, "stderr: %s", stderr)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3, "header + stack + pair, got:\n%s", out)
	assert.Contains(t, lines[0], "residue_a")
	// The stacked A/G pair comes first (lower indices), the A-U pair after.
	assert.Contains(t, lines[1], "stack")
	assert.Contains(t, lines[1], "s3")
	assert.Contains(t, lines[2], "pair")
	assert.Contains(t, lines[2], "WW")
	assert.Contains(t, lines[2], "A:1")
	assert.Contains(t, lines[2], "A:9")
}

func TestAnnotateJSONEndToEnd(t *testing.T) {
	path := writeScene(t)
	code, out, stderr := run(t, "-quiet", "-output", "json", path)
	require.Equal(t, 0, code, "stderr: %s", stderr)

	var got []api.AnnotationV1
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "stack", got[0].Category)
	assert.Equal(t, "pair", got[1].Category)
	assert.InDelta(t, 2.9, got[1].MinContact, 1e-6)
}

func TestSymmetricOutput(t *testing.T) {
	path := writeScene(t)
	code, out, stderr := run(t, "-quiet", "-no-header", "-symmetric", path)
	require.Equal(t, 0, code, "stderr: %s", stderr)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4, "each annotation plus its reverse, got:\n%s", out)

	fwd := strings.Split(lines[0], "\t")
	rev := strings.Split(lines[1], "\t")
	require.GreaterOrEqual(t, len(fwd), 6)
	require.GreaterOrEqual(t, len(rev), 6)

	// The reversed stack row swaps the residues and the face digits.
	assert.Equal(t, fwd[0], rev[3])
	assert.Equal(t, fwd[3], rev[0])
	require.Len(t, fwd[2], 3)
	assert.Equal(t, "s"+fwd[2][2:3]+fwd[2][1:2], rev[2])

	// cWW reads the same from either side, so only the residues swap.
	fwd = strings.Split(lines[2], "\t")
	rev = strings.Split(lines[3], "\t")
	assert.Equal(t, "cWW", fwd[2])
	assert.Equal(t, "cWW", rev[2])
	assert.Equal(t, fwd[0], rev[3])
	assert.Equal(t, fwd[3], rev[0])
}

func TestCategoryFilter(t *testing.T) {
	path := writeScene(t)
	code, out, _ := run(t, "-quiet", "-no-header", "-categories", "pair", path)
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "pair")
}

func TestReportIncludesExclusions(t *testing.T) {
	path := writeScene(t)
	// Append an unknown residue type that cannot get a frame.
	fh, err := os.ReadFile(path)
	require.NoError(t, err)
	text := strings.Replace(string(fh), "END\n", "", 1)
	text += fmt.Sprintf("ATOM  %5d %-4s %3s %s%4d    %8.3f%8.3f%8.3f  1.00  0.00          %2s\nEND\n",
		999, "C1'", "PSU", "A", 50, 60.0, 0.0, 0.0, "C")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	code, out, stderr := run(t, "-quiet", "-report", path)
	require.Equal(t, 0, code, "stderr: %s", stderr)

	var rep api.ReportV1
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "scene", rep.StructureID)
	assert.Equal(t, 4, rep.Residues)
	assert.Len(t, rep.Annotations, 2)
	require.Len(t, rep.Excluded, 1)
	assert.Equal(t, 50, rep.Excluded[0].Number)
	assert.Equal(t, "PSU", rep.Excluded[0].Name)
}

func TestMissingFileExit2(t *testing.T) {
	code, _, stderr := run(t, "-quiet", filepath.Join(t.TempDir(), "nope.pdb"))
	assert.Equal(t, 2, code)
	assert.NotEmpty(t, stderr)
}

func TestBadFlagExit2(t *testing.T) {
	code, _, _ := run(t, "-output", "xml", "x.pdb")
	assert.Equal(t, 2, code)
}

func TestVersionExit0(t *testing.T) {
	code, out, _ := run(t, "-v")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "rnannot version")
}

func TestNoArgsPrintsUsage(t *testing.T) {
	code, out, _ := run(t)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage")
}

func TestCancelledContextExit130(t *testing.T) {
	path := writeScene(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := app.RunContext(ctx, []string{"-quiet", path}, io.Discard, io.Discard)
	assert.Equal(t, 130, code)
}
