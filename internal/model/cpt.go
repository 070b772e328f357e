package model

// Sample is one accepted data row of a CPT
type Sample struct {
	Z  float64 `yaml:"z" json:"z"`
	QC float64 `yaml:"qc" json:"qc"`
	FS float64 `yaml:"fs" json:"fs"`
	U  float64 `yaml:"u" json:"u"`
	Rf float64 `yaml:"rf" json:"rf"`
}

// CPT is a cone penetration test depth profile.
// Z, QC, FS, U and Rf always have the same length.
type CPT struct {
	Header            `yaml:",inline"`
	PreExcavatedDepth float64 `yaml:"pre_excavated_depth" json:"pre_excavated_depth"`

	Z  []float64 `yaml:"z" json:"z"`
	QC []float64 `yaml:"qc" json:"qc"`
	FS []float64 `yaml:"fs" json:"fs"`
	U  []float64 `yaml:"u" json:"u"`
	Rf []float64 `yaml:"rf" json:"rf"`

	// Skipped counts data rows dropped because of a void value
	Skipped int `yaml:"skipped,omitempty" json:"skipped,omitempty"`
}

// NewCPT creates a CPT from its header and the accepted samples
func NewCPT(h Header, preExcavatedDepth float64, samples []Sample, skipped int) *CPT {
	c := &CPT{
		Header:            h,
		PreExcavatedDepth: preExcavatedDepth,
		Z:                 make([]float64, 0, len(samples)),
		QC:                make([]float64, 0, len(samples)),
		FS:                make([]float64, 0, len(samples)),
		U:                 make([]float64, 0, len(samples)),
		Rf:                make([]float64, 0, len(samples)),
		Skipped:           skipped,
	}
	for _, s := range samples {
		c.Z = append(c.Z, s.Z)
		c.QC = append(c.QC, s.QC)
		c.FS = append(c.FS, s.FS)
		c.U = append(c.U, s.U)
		c.Rf = append(c.Rf, s.Rf)
	}
	return c
}

// Kind implements Record
func (c *CPT) Kind() Kind { return KindCPT }

// Info implements Record
func (c *CPT) Info() Header { return c.Header }

// Len returns the number of samples
func (c *CPT) Len() int { return len(c.Z) }

// Sample returns the i-th sample
func (c *CPT) Sample(i int) Sample {
	return Sample{Z: c.Z[i], QC: c.QC[i], FS: c.FS[i], U: c.U[i], Rf: c.Rf[i]}
}

// Rows returns the samples as [z, qc, fs, Rf, u] rows
func (c *CPT) Rows() [][5]float64 {
	rows := make([][5]float64, c.Len())
	for i := range rows {
		rows[i] = [5]float64{c.Z[i], c.QC[i], c.FS[i], c.Rf[i], c.U[i]}
	}
	return rows
}

// HasWaterPressure reports whether any pore pressure reading is non-zero
func (c *CPT) HasWaterPressure() bool {
	for _, u := range c.U {
		if u != 0 {
			return true
		}
	}
	return false
}

// ZMin returns the elevation of the last sample
func (c *CPT) ZMin() (float64, error) {
	if len(c.Z) == 0 {
		return 0, ErrEmptyRecord
	}
	return c.Z[len(c.Z)-1], nil
}

// Length returns the penetrated depth
func (c *CPT) Length() (float64, error) {
	zMin, err := c.ZMin()
	if err != nil {
		return 0, err
	}
	return c.ZTop - zMin, nil
}

// SamplesAbove returns the number of leading samples above minElevation
func (c *CPT) SamplesAbove(minElevation float64) int {
	n := 0
	for n < len(c.Z) && c.Z[n] > minElevation {
		n++
	}
	return n
}
