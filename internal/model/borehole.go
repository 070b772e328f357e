package model

// Borehole is a soil layer log reconstructed from a GEF-BORE file
type Borehole struct {
	Header `yaml:",inline"`
	Layers []SoilLayer `yaml:"layers" json:"layers"`
}

// NewBorehole creates a borehole from its header and an already merged layer sequence
func NewBorehole(h Header, layers []SoilLayer) *Borehole {
	return &Borehole{Header: h, Layers: layers}
}

// Kind implements Record
func (b *Borehole) Kind() Kind { return KindBorehole }

// Info implements Record
func (b *Borehole) Info() Header { return b.Header }

// ZMin returns the bottom of the last layer
func (b *Borehole) ZMin() (float64, error) {
	if len(b.Layers) == 0 {
		return 0, ErrEmptyRecord
	}
	return b.Layers[len(b.Layers)-1].ZBottom, nil
}

// Length returns the logged depth of the borehole
func (b *Borehole) Length() (float64, error) {
	zMin, err := b.ZMin()
	if err != nil {
		return 0, err
	}
	return b.ZTop - zMin, nil
}
