package catalog

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/GefSum/internal/logger"
	"github.com/yildizm/GefSum/internal/model"
	"github.com/yildizm/GefSum/internal/parser"
)

func cptFile(name string, x, y float64) string {
	return "#GEFID= 1, 1, 0\n" +
		"#PROCEDURECODE= GEF-CPT-Report\n" +
		"#TESTID= " + name + "\n" +
		"#XYID= 31000, " + ftoa(x) + ", " + ftoa(y) + ", 0.1, 0.1\n" +
		"#ZID= 31000, 1.00, 0.01\n" +
		"#COLUMNINFO= 1, m, penetration length, 1\n" +
		"#COLUMNINFO= 2, MPa, cone resistance, 2\n" +
		"#COLUMNINFO= 3, MPa, sleeve friction, 3\n" +
		"#EOH=\n" +
		"0.00 1.00 0.010\n" +
		"0.50 2.00 0.020\n"
}

func boreholeFile(name string, x, y float64) string {
	return "#GEFID= 1, 1, 0\n" +
		"#REPORTCODE= GEF-BORE-Report\n" +
		"#TESTID= " + name + "\n" +
		"#XYID= 31000, " + ftoa(x) + ", " + ftoa(y) + "\n" +
		"#ZID= 31000, 0.50, 0.01\n" +
		"#COLUMN= 2\n" +
		"#COLUMNINFO= 1, m, laag van, 1\n" +
		"#COLUMNINFO= 2, m, laag tot, 2\n" +
		"#COLUMNSEPARATOR= ;\n" +
		"#EOH=\n" +
		"0.00;1.00;'Zs1'\n"
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFindGEFFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.gef", "")
	writeFile(t, dir, "sub/B.GEF", "")
	writeFile(t, dir, "sub/deeper/c.Gef", "")
	writeFile(t, dir, "notes.txt", "")
	writeFile(t, dir, ".git/objects/d.gef", "")

	files, err := FindGEFFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.gef"),
		filepath.Join(dir, "sub", "B.GEF"),
		filepath.Join(dir, "sub", "deeper", "c.Gef"),
	}, files)

	_, err = FindGEFFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestScanFile(t *testing.T) {
	dir := t.TempDir()
	scanner := NewScanner(parser.Options{}, nil)

	path := writeFile(t, dir, "c1.gef", cptFile("C1", 100, 200))
	inv, err := scanner.ScanFile(path, model.KindCPT)
	require.NoError(t, err)
	assert.Equal(t, model.Investigation{Kind: model.KindCPT, Filename: path, X: 100, Y: 200}, inv)

	inv, err = scanner.ScanFile(path, model.KindNone)
	require.NoError(t, err)
	assert.Equal(t, model.KindCPT, inv.Kind)

	bore := writeFile(t, dir, "b1.gef", boreholeFile("B1", 1, 2))
	inv, err = scanner.ScanFile(bore, model.KindNone)
	require.NoError(t, err)
	assert.Equal(t, model.KindBorehole, inv.Kind)

	noXY := writeFile(t, dir, "empty.gef", "#GEFID= 1, 1, 0\n#EOH=\n")
	_, err = scanner.ScanFile(noXY, model.KindCPT)
	assert.ErrorIs(t, err, parser.ErrNoPosition)

	_, err = scanner.ScanFile(filepath.Join(dir, "missing.gef"), model.KindCPT)
	assert.Error(t, err)
}

func TestScanDirectorySkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "c1.gef", cptFile("C1", 100, 200))
	writeFile(t, dir, "c2.GEF", cptFile("C2", 110, 200))
	writeFile(t, dir, "broken.gef", "#XYID= 31000, abc, 1\n")

	var buf bytes.Buffer
	log := logger.New("test", nil)
	log.SetOutput(&buf)

	invs, err := NewScanner(parser.Options{}, log).ScanDirectory(context.Background(), dir, model.KindCPT)
	require.NoError(t, err)
	require.Len(t, invs, 2)
	assert.Equal(t, 100.0, invs[0].X)
	assert.Equal(t, 110.0, invs[1].X)
	assert.Contains(t, buf.String(), "broken.gef")
}

func TestScanDirectoryCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "c1.gef", cptFile("C1", 100, 200))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner(parser.Options{}, nil).ScanDirectory(ctx, dir, model.KindCPT)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	cptDir := filepath.Join(root, "sonderingen")
	boreDir := filepath.Join(root, "boringen")
	writeFile(t, cptDir, "c1.gef", cptFile("C1", 100, 200))
	writeFile(t, boreDir, "b1.gef", boreholeFile("B1", 130, 240))

	c, err := NewScanner(parser.Options{}, nil).Build(context.Background(), cptDir, boreDir)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.Count(model.KindCPT))
	assert.Equal(t, 1, c.Count(model.KindBorehole))

	_, err = NewScanner(parser.Options{}, nil).Build(context.Background(), filepath.Join(root, "nope"), "")
	assert.Error(t, err)
}

func TestClosest(t *testing.T) {
	c := New()
	c.Add(
		model.Investigation{Kind: model.KindCPT, Filename: "far.gef", X: 0, Y: 50},
		model.Investigation{Kind: model.KindCPT, Filename: "near.gef", X: 3, Y: 4},
		model.Investigation{Kind: model.KindBorehole, Filename: "tie.gef", X: 0, Y: 5},
		model.Investigation{Kind: model.KindBorehole, Filename: "out.gef", X: 100, Y: 100},
	)

	matches := c.Closest(0, 0, 60, 10)
	require.Len(t, matches, 3)
	assert.Equal(t, "near.gef", matches[0].Filename)
	assert.Equal(t, "tie.gef", matches[1].Filename)
	assert.Equal(t, 5.0, matches[1].Distance)
	assert.Equal(t, "far.gef", matches[2].Filename)

	assert.Len(t, c.Closest(0, 0, 60, 1), 1)
	assert.Empty(t, c.Closest(0, 0, 1, 10))
	assert.Empty(t, New().Closest(0, 0, 100, 5))
}

func TestCatalogPersistence(t *testing.T) {
	c := New()
	c.Add(model.Investigation{Kind: model.KindBorehole, Filename: "b.gef", X: 1.5, Y: 2.25})

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, c.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, c.List(), loaded.List())

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseAll(t *testing.T) {
	dir := t.TempDir()
	invs := []model.Investigation{
		{Kind: model.KindCPT, Filename: writeFile(t, dir, "c1.gef", cptFile("C1", 1, 1))},
		{Kind: model.KindBorehole, Filename: writeFile(t, dir, "bad.gef", "#ZID= 31000\n#EOH=\n")},
		{Kind: model.KindBorehole, Filename: writeFile(t, dir, "b1.gef", boreholeFile("B1", 2, 2))},
		{Kind: model.KindNone, Filename: writeFile(t, dir, "b2.gef", boreholeFile("B2", 3, 3))},
	}

	results, err := ParseAll(context.Background(), invs, 2, parser.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, r := range results {
		assert.Equal(t, invs[i], r.Investigation)
	}

	require.NoError(t, results[0].Err)
	assert.Equal(t, "C1", results[0].Record.Info().Name)
	assert.Equal(t, model.KindCPT, results[0].Record.Kind())

	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Record)

	require.NoError(t, results[2].Err)
	assert.Equal(t, "B1", results[2].Record.Info().Name)

	require.NoError(t, results[3].Err)
	assert.Equal(t, model.KindBorehole, results[3].Record.Kind())
	assert.Equal(t, invs[3].Filename, results[3].Record.Info().Filename)
}

func TestParseAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseAll(ctx, []model.Investigation{{Filename: "x.gef"}}, 1, parser.DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
