package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/yildizm/GefSum/internal/model"
)

func testCPT() *model.CPT {
	h := model.Header{X: 132123.46, Y: 457890.12, ZTop: 1.25, Name: "CPT-01", FileDate: "20200305", Filename: "cpt01.gef"}
	return model.NewCPT(h, 1.5, []model.Sample{
		{Z: 1.25, QC: 0.5, FS: 0.01, U: 0, Rf: 2},
		{Z: 0.25, QC: 14.0, FS: 0.04, U: 0.01, Rf: 12.5},
		{Z: -12.0, QC: 3.0, FS: 0.03, U: 0.02, Rf: 1},
	}, 1)
}

func testBorehole() *model.Borehole {
	h := model.Header{X: 140000, Y: 455000, ZTop: 0.85, Name: "B-17", StartDate: "20190612"}
	return model.NewBorehole(h, []model.SoilLayer{
		{ZTop: 0.85, ZBottom: -0.35, SoilCode: "Kz1_grijs_zwak"},
		{ZTop: -0.35, ZBottom: -11.65, SoilCode: "Zs1"},
		{ZTop: -11.65, ZBottom: -12.15, SoilCode: "V"},
	})
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "text", "json", "yaml", "markdown", "md", "csv"} {
		f, err := New(name, false, DefaultPlotOptions())
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}

	_, err := New("pdf", false, DefaultPlotOptions())
	assert.Error(t, err)
}

func TestTerminalFormatterCPT(t *testing.T) {
	out, err := NewTerminal(false, DefaultPlotOptions()).Format(testCPT())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "CPT CPT-01")
	assert.Contains(t, text, "20200305")
	assert.Contains(t, text, "Voided rows")
	assert.Contains(t, text, "pore pressure recorded")
	// the clipped bar still shows the real value
	assert.Contains(t, text, " 14.00")
	// samples below the plot limit are not drawn
	assert.NotContains(t, text, "-12.00  ")
}

func TestTerminalFormatterBorehole(t *testing.T) {
	out, err := NewTerminal(false, DefaultPlotOptions()).Format(testBorehole())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "BOREHOLE B-17")
	assert.Contains(t, text, "Kz1_grijs_zwak")
	// the second layer is cut off at the plot limit, the third is hidden
	assert.Contains(t, text, "-10.00")
	assert.NotContains(t, text, "V (")
}

func TestTerminalFormatterEmpty(t *testing.T) {
	out, err := NewTerminal(false, DefaultPlotOptions()).Format(model.NewBorehole(model.Header{}, nil))
	require.NoError(t, err)
	assert.Contains(t, string(out), "no layers")
}

func TestJSONFormatter(t *testing.T) {
	out, err := NewJSON().Format(testBorehole())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "borehole", decoded["kind"])

	summary := decoded["summary"].(map[string]interface{})
	assert.Equal(t, "20190612", summary["date"])
	assert.InDelta(t, 13.0, summary["length"], 1e-9)

	layers := decoded["layers"].([]interface{})
	require.Len(t, layers, 3)
	first := layers[0].(map[string]interface{})
	assert.Equal(t, "Kz1", first["short_code"])
	assert.Equal(t, model.ColorFor("Kz1"), first["color"])
}

func TestJSONFormatterEmptyCPT(t *testing.T) {
	out, err := NewJSON().Format(model.NewCPT(model.Header{Name: "empty"}, 0, nil, 4))
	require.NoError(t, err)

	var decoded RecordOutput
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Nil(t, decoded.Summary.ZMin)
	assert.Equal(t, 4, decoded.Summary.Skipped)
	assert.Empty(t, decoded.Samples)
}

func TestYAMLFormatter(t *testing.T) {
	out, err := NewYAML().Format(testCPT())
	require.NoError(t, err)

	var decoded RecordOutput
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, model.KindCPT, decoded.Kind)
	assert.Equal(t, "CPT-01", decoded.Header.Name)
	require.Len(t, decoded.Samples, 3)
	assert.Equal(t, 14.0, decoded.Samples[1].QC)
	assert.True(t, decoded.Summary.HasWaterPressure)
}

func TestCSVFormatter(t *testing.T) {
	out, err := NewCSV().Format(testBorehole())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "z_top,z_bottom,soil_code,short_code,height", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0.85,-0.35,Kz1_grijs_zwak,Kz1,"))

	out, err = NewCSV().Format(testCPT())
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "z,qc,fs,rf,u", lines[0])
	assert.Equal(t, "0.25,14,0.04,12.5,0.01", lines[2])
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdown().Format(testBorehole())
	require.NoError(t, err)

	md := string(out)
	assert.True(t, strings.HasPrefix(md, "# BOREHOLE B-17\n"))
	assert.Contains(t, md, "| Layers | 3 |")
	assert.Contains(t, md, `Kz1\_grijs\_zwak`)

	out, err = NewMarkdown().Format(model.NewCPT(model.Header{}, 0, nil, 0))
	require.NoError(t, err)
	assert.Contains(t, string(out), "_No samples._")
}

func TestFraction(t *testing.T) {
	assert.Equal(t, 0.0, fraction(-1, 10))
	assert.Equal(t, 0.5, fraction(5, 10))
	assert.Equal(t, 1.0, fraction(14, 10))
	assert.Equal(t, 0.0, fraction(5, 0))
}

func TestWriteXLSX(t *testing.T) {
	records := []model.Record{testCPT(), testBorehole(), model.NewBorehole(model.Header{Name: "B-17"}, nil)}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, records))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"CPT-01", "B-17", "B-17 (2)"}, f.GetSheetList())

	rows, err := f.GetRows("CPT-01")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"z", "qc", "fs", "rf", "u"}, rows[0])
	assert.Equal(t, "14", rows[2][1])

	rows, err = f.GetRows("B-17")
	require.NoError(t, err)
	assert.Equal(t, "Kz1_grijs_zwak", rows[1][2])

	assert.Error(t, WriteXLSX(&bytes.Buffer{}, nil))
}

func TestSheetName(t *testing.T) {
	long := model.NewBorehole(model.Header{Name: "a/very:long*name[with]chars?and more text"}, nil)
	name := sheetName(long, 0)
	assert.LessOrEqual(t, len([]rune(name)), maxSheetName)
	assert.NotContains(t, name, "/")

	unnamed := model.NewCPT(model.Header{Filename: "/data/S01.GEF"}, 0, nil, 0)
	assert.Equal(t, "S01", sheetName(unnamed, 3))

	blank := model.NewCPT(model.Header{}, 0, nil, 0)
	assert.Equal(t, "cpt 4", sheetName(blank, 3))
}

func TestFormatEntries(t *testing.T) {
	distance := 12.5
	entries := []Entry{
		{Investigation: model.Investigation{Kind: model.KindCPT, Filename: "/data/cpt01.gef", X: 100, Y: 200}, Distance: &distance},
		{Investigation: model.Investigation{Kind: model.KindBorehole, Filename: "/data/b17.gef", X: 110, Y: 205}},
	}

	text, err := FormatEntries("text", false, "Nearest", entries)
	require.NoError(t, err)
	assert.Contains(t, string(text), "Nearest (2)")
	assert.Contains(t, string(text), "cpt01.gef")
	assert.Contains(t, string(text), "(12.5 m)")

	data, err := FormatEntries("json", false, "", entries)
	require.NoError(t, err)
	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "cpt", decoded[0]["kind"])
	assert.Equal(t, 12.5, decoded[0]["distance"])
	assert.NotContains(t, decoded[1], "distance")

	yml, err := FormatEntries("yaml", false, "", entries)
	require.NoError(t, err)
	assert.Contains(t, string(yml), "kind: borehole")

	md, err := FormatEntries("markdown", false, "Catalog", entries)
	require.NoError(t, err)
	assert.Contains(t, string(md), "| cpt01.gef | cpt | 100.00 | 200.00 | 12.5 |")

	csvData, err := FormatEntries("csv", false, "", entries)
	require.NoError(t, err)
	assert.Equal(t, "kind,filename,x,y,distance\ncpt,/data/cpt01.gef,100,200,12.5\nborehole,/data/b17.gef,110,205,\n", string(csvData))

	empty, err := FormatEntries("text", false, "Catalog", nil)
	require.NoError(t, err)
	assert.Contains(t, string(empty), "none")

	_, err = FormatEntries("xml", false, "", entries)
	assert.Error(t, err)
}
