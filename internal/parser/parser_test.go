package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/GefSum/internal/model"
)

func TestParseCPT(t *testing.T) {
	cpt, err := ParseCPT(fixtureLines(cptFixture))
	require.NoError(t, err)

	assert.Equal(t, "CPT-01", cpt.Name)
	assert.InDelta(t, 132123.46, cpt.X, 1e-9)
	assert.InDelta(t, 457890.12, cpt.Y, 1e-9)
	assert.Equal(t, 1.25, cpt.ZTop)
	assert.Equal(t, "20200305", cpt.FileDate)
	assert.Equal(t, 1.5, cpt.PreExcavatedDepth)
	assert.Equal(t, 1, cpt.Skipped)

	require.Equal(t, 3, cpt.Len())
	assert.Len(t, cpt.QC, 3)
	assert.Len(t, cpt.FS, 3)
	assert.Len(t, cpt.U, 3)
	assert.Len(t, cpt.Rf, 3)

	assert.InDelta(t, 1.25, cpt.Z[0], 1e-9)
	assert.InDelta(t, 2.0, cpt.Rf[0], 1e-9)

	// clamped readings
	assert.InDelta(t, 1.21, cpt.Z[1], 1e-9)
	assert.Equal(t, minConeResistance, cpt.QC[1])
	assert.Equal(t, minSleeveFriction, cpt.FS[1])
	assert.InDelta(t, 0.1, cpt.Rf[1], 1e-9)

	assert.InDelta(t, 0.25, cpt.Z[2], 1e-9)
	assert.Equal(t, -0.01, cpt.U[2])
	assert.True(t, cpt.HasWaterPressure())

	for i := 0; i < cpt.Len(); i++ {
		assert.GreaterOrEqual(t, cpt.QC[i], minConeResistance)
		assert.GreaterOrEqual(t, cpt.FS[i], minSleeveFriction)
		assert.InDelta(t, cpt.FS[i]/cpt.QC[i]*100, cpt.Rf[i], 1e-12)
	}
}

func TestParseCPTLayouts(t *testing.T) {
	base := []string{
		"#ZID= 31000, 0.00, 0.01",
		"#COLUMNINFO= 1, m, penetration length, 1",
		"#COLUMNINFO= 2, MPa, cone resistance, 2",
		"#COLUMNINFO= 3, MPa, sleeve friction, 3",
	}

	tests := []struct {
		name     string
		lines    []string
		validate func(*testing.T, *model.CPT)
	}{
		{
			name:  "space separated without pore pressure",
			lines: withHeader(base, "0.10   1.5   0.03", "  0.20 2.5 0.05  "),
			validate: func(t *testing.T, c *model.CPT) {
				require.Equal(t, 2, c.Len())
				assert.Equal(t, []float64{0, 0}, c.U)
				assert.False(t, c.HasWaterPressure())
				assert.InDelta(t, -0.2, c.Z[1], 1e-9)
			},
		},
		{
			name:  "negative depth is a downward offset",
			lines: withHeader(base, "-0.50 1.0 0.01"),
			validate: func(t *testing.T, c *model.CPT) {
				assert.InDelta(t, -0.5, c.Z[0], 1e-9)
			},
		},
		{
			name: "corrected depth overrides depth",
			lines: withHeader(append(base, "#COLUMNINFO= 4, m, corrected depth, 11"),
				"1.00 1.0 0.01 0.95"),
			validate: func(t *testing.T, c *model.CPT) {
				assert.InDelta(t, -0.95, c.Z[0], 1e-9)
			},
		},
		{
			name: "corrected depth declared before depth still wins",
			lines: withHeader([]string{
				"#COLUMNINFO= 4, m, corrected depth, 11",
				"#COLUMNINFO= 1, m, penetration length, 1",
				"#COLUMNINFO= 2, MPa, cone resistance, 2",
				"#COLUMNINFO= 3, MPa, sleeve friction, 3",
			}, "1.00 1.0 0.01 0.95"),
			validate: func(t *testing.T, c *model.CPT) {
				assert.InDelta(t, -0.95, c.Z[0], 1e-9)
			},
		},
		{
			name:  "all lines voided",
			lines: withHeader(append(base, "#COLUMNVOID= 3, 999"), "0.1 1.0 999", "0.2 1.0 999"),
			validate: func(t *testing.T, c *model.CPT) {
				assert.Equal(t, 0, c.Len())
				assert.Equal(t, 2, c.Skipped)
			},
		},
		{
			name:  "void compares exactly",
			lines: withHeader(append(base, "#COLUMNVOID= 3, 999.5"), "0.1 1.0 999.50001"),
			validate: func(t *testing.T, c *model.CPT) {
				assert.Equal(t, 1, c.Len())
			},
		},
		{
			name:  "no end of header",
			lines: base,
			validate: func(t *testing.T, c *model.CPT) {
				assert.Equal(t, 0, c.Len())
			},
		},
		{
			name:  "ZID without argument count guard",
			lines: withHeader(append(base, "#ZID= 0, -1,24, 0.01"), "0.1 1.0 0.01"),
			validate: func(t *testing.T, c *model.CPT) {
				assert.Equal(t, -1.0, c.ZTop)
			},
		},
		{
			name:  "other measurement variables are ignored",
			lines: withHeader(append(base, "#MEASUREMENTVAR= 1, abc, -, cone surface"), "0.1 1.0 0.01"),
			validate: func(t *testing.T, c *model.CPT) {
				assert.Equal(t, 0.0, c.PreExcavatedDepth)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpt, err := ParseCPT(tt.lines)
			require.NoError(t, err)
			tt.validate(t, cpt)
		})
	}
}

func TestParseBorehole(t *testing.T) {
	b, err := ParseBorehole(fixtureLines(boreholeFixture))
	require.NoError(t, err)

	assert.Equal(t, "B-17", b.Name)
	assert.Equal(t, "", b.FileDate)
	assert.Equal(t, "20190612", b.StartDate)
	assert.InDelta(t, 140000.0, b.X, 1e-9)
	assert.InDelta(t, 455000.01, b.Y, 1e-9)

	date, err := b.Date()
	require.NoError(t, err)
	assert.Equal(t, "20190612", date)

	want := []model.SoilLayer{
		{ZTop: 0.85, ZBottom: -0.35, SoilCode: "Kz1_grijs_zwak"},
		{ZTop: -0.35, ZBottom: -1.65, SoilCode: "Zs1"},
		{ZTop: -1.65, ZBottom: -2.15, SoilCode: "V"},
	}
	require.Len(t, b.Layers, len(want))
	for i, w := range want {
		assert.InDelta(t, w.ZTop, b.Layers[i].ZTop, 1e-9, "layer %d top", i)
		assert.InDelta(t, w.ZBottom, b.Layers[i].ZBottom, 1e-9, "layer %d bottom", i)
		assert.Equal(t, w.SoilCode, b.Layers[i].SoilCode)
	}

	for i := 1; i < len(b.Layers); i++ {
		assert.NotEqual(t, b.Layers[i-1].SoilCode, b.Layers[i].SoilCode)
	}

	length, err := b.Length()
	require.NoError(t, err)
	assert.InDelta(t, 3.0, length, 1e-9)
}

func TestParseBoreholeElevations(t *testing.T) {
	lines := withHeader([]string{
		"#COLUMNSEPARATOR=;",
		"#COLUMNINFO=1,m,top,1",
		"#COLUMNINFO=2,m,bottom,2",
		"#ZID= 31000, 3.50, 0.01",
	}, "3.50;2.10;clay", "2.10;1.004;\"sandy clay\"")

	b, err := ParseBorehole(lines)
	require.NoError(t, err)
	require.Len(t, b.Layers, 2)

	assert.Equal(t, model.SoilLayer{ZTop: 3.5, ZBottom: 2.1, SoilCode: "clay"}, b.Layers[0])
	assert.Equal(t, model.SoilLayer{ZTop: 2.1, ZBottom: 1.0, SoilCode: "sandy_clay"}, b.Layers[1])
	assert.Equal(t, "sandy", b.Layers[1].ShortCode())
}

func TestParseBoreholeWithoutLayers(t *testing.T) {
	b, err := ParseBorehole([]string{"#TESTID= empty", "#EOH="})
	require.NoError(t, err)
	assert.Empty(t, b.Layers)

	_, err = b.ZMin()
	assert.ErrorIs(t, err, model.ErrEmptyRecord)
	_, err = b.Date()
	assert.ErrorIs(t, err, model.ErrNoDate)
}

func TestHeaderErrors(t *testing.T) {
	cptColumns := []string{
		"#COLUMNINFO= 1, m, penetration length, 1",
		"#COLUMNINFO= 2, MPa, cone resistance, 2",
		"#COLUMNINFO= 3, MPa, sleeve friction, 3",
	}

	tests := []struct {
		name    string
		line    string
		kind    model.Kind
		keyword string
		target  error
	}{
		{name: "no separator", line: "#TESTID CPT-01", kind: model.KindCPT, target: ErrNoSeparator},
		{name: "two separators", line: "#MEASUREMENTTEXT= 4, a=b", kind: model.KindBorehole, target: ErrNoSeparator},
		{name: "non numeric column", line: "#COLUMNINFO= a, m, depth, 1", kind: model.KindCPT, keyword: "COLUMNINFO"},
		{name: "missing quantity", line: "#COLUMNINFO= 1, m", kind: model.KindBorehole, keyword: "COLUMNINFO", target: ErrMissingArgument},
		{name: "bad void", line: "#COLUMNVOID= 1, none", kind: model.KindCPT, keyword: "COLUMNVOID"},
		{name: "bad xyid", line: "#XYID= 31000, x, 1", kind: model.KindCPT, keyword: "XYID"},
		{name: "missing y", line: "#XYID= 31000, 1", kind: model.KindBorehole, keyword: "XYID", target: ErrMissingArgument},
		{name: "bad zid", line: "#ZID= 31000, high", kind: model.KindCPT, keyword: "ZID"},
		{name: "borehole zid argument count", line: "#ZID= 0, -1,24, 0.01", kind: model.KindBorehole, keyword: "ZID", target: ErrArgumentCount},
		{name: "borehole zid too short", line: "#ZID= 0, -1.24", kind: model.KindBorehole, keyword: "ZID", target: ErrArgumentCount},
		{name: "bad column", line: "#COLUMN= two", kind: model.KindBorehole, keyword: "COLUMN"},
		{name: "bad pre-excavated depth", line: "#MEASUREMENTVAR= 13, deep, m", kind: model.KindCPT, keyword: "MEASUREMENTVAR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := withHeader(append(append([]string{}, cptColumns...), tt.line))

			var err error
			if tt.kind == model.KindCPT {
				_, err = ParseCPT(lines)
			} else {
				_, err = ParseBorehole(lines)
			}
			require.Error(t, err)

			var headerErr *HeaderLineError
			require.True(t, errors.As(err, &headerErr), "want HeaderLineError, got %T", err)
			assert.Equal(t, tt.line, headerErr.Line)
			assert.Equal(t, tt.keyword, headerErr.Keyword)
			assert.Contains(t, err.Error(), tt.line)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestDataLineErrors(t *testing.T) {
	cptHeader := []string{
		"#COLUMNINFO= 1, m, penetration length, 1",
		"#COLUMNINFO= 2, MPa, cone resistance, 2",
		"#COLUMNINFO= 3, MPa, sleeve friction, 3",
	}
	boreHeader := []string{
		"#COLUMNINFO= 1, m, top, 1",
		"#COLUMNINFO= 2, m, bottom, 2",
	}

	tests := []struct {
		name   string
		parse  func([]string) error
		lines  []string
		bad    string
		target error
	}{
		{
			name:  "cpt non numeric token",
			parse: parseCPTErr,
			lines: withHeader(cptHeader, "0.1 1.0 0.01", "0.2 n/a 0.01"),
			bad:   "0.2 n/a 0.01",
		},
		{
			name:   "cpt undeclared cone resistance",
			parse:  parseCPTErr,
			lines:  withHeader(cptHeader[:1], "0.1 1.0 0.01"),
			bad:    "0.1 1.0 0.01",
			target: ErrMissingColumn,
		},
		{
			name:   "cpt short line",
			parse:  parseCPTErr,
			lines:  withHeader(cptHeader, "0.1 1.0"),
			bad:    "0.1 1.0",
			target: ErrColumnOutOfRange,
		},
		{
			name:   "borehole undeclared bottom",
			parse:  parseBoreholeErr,
			lines:  withHeader(boreHeader[:1], "0.0 1.0 Z"),
			bad:    "0.0 1.0 Z",
			target: ErrMissingColumn,
		},
		{
			name:  "borehole non numeric depth",
			parse: parseBoreholeErr,
			lines: withHeader(boreHeader, "top 1.0 Z"),
			bad:   "top 1.0 Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse(tt.lines)
			require.Error(t, err)

			var dataErr *DataLineError
			require.True(t, errors.As(err, &dataErr), "want DataLineError, got %T", err)
			assert.Equal(t, tt.bad, dataErr.Line)
			assert.Contains(t, err.Error(), tt.bad)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func parseCPTErr(lines []string) error {
	cpt, err := ParseCPT(lines)
	if err == nil && cpt == nil {
		return errors.New("nil record without error")
	}
	return err
}

func parseBoreholeErr(lines []string) error {
	b, err := ParseBorehole(lines)
	if err == nil && b == nil {
		return errors.New("nil record without error")
	}
	return err
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"2020", "3", "5"}, "20200305"},
		{[]string{"2020", "13", "5"}, ""},
		{[]string{"1899", "1", "1"}, ""},
		{[]string{"2101", "1", "1"}, ""},
		{[]string{"2020", "2", "0"}, ""},
		{[]string{"2020", "2", "32"}, ""},
		{[]string{"2020", "feb", "1"}, ""},
		{[]string{"2020", "2"}, ""},
		{[]string{"2100", "12", "31"}, "21001231"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseDate(tt.args), "args %v", tt.args)
	}
}

func TestDatesAreBestEffort(t *testing.T) {
	cpt, err := ParseCPT([]string{"#FILEDATE= 2020, 13, 5", "#STARTDATE= -", "#EOH="})
	require.NoError(t, err)
	assert.Equal(t, "", cpt.FileDate)
	assert.Equal(t, "", cpt.StartDate)
}

func TestDecodeCPTLineVoid(t *testing.T) {
	ctx := NewParseContext()
	ctx.ColumnIndex = map[int]int{ColumnDepth: 0, ColumnConeResistance: 1, ColumnSleeveFriction: 2}
	ctx.ColumnVoid = map[int]float64{1: 9999}

	_, ok, err := decodeCPTLine(ctx, 0, "0.5 9999 0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	sample, ok, err := decodeCPTLine(ctx, 0, "0.5 2 0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, sample.Rf, 1e-9)
}

func TestDepthsToElevations(t *testing.T) {
	top, bottom := depthsToElevations(2.0, 0.5, 1.5)
	assert.Equal(t, 1.5, top)
	assert.Equal(t, 0.5, bottom)

	top, bottom = depthsToElevations(2.0, 1.5, 0.5)
	assert.Equal(t, 1.5, top)
	assert.Equal(t, 0.5, bottom)
}

func TestSoilCode(t *testing.T) {
	assert.Equal(t, "Kz1_grijs_bruin", soilCode([]string{"0", "1", `"Kz1"`, "'grijs bruin'"}, 2))
	assert.Equal(t, "", soilCode([]string{"0", "1"}, 2))
	assert.Equal(t, "1_Z", soilCode([]string{"0", "1", "Z"}, 1))
}
