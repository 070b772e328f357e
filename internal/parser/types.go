package parser

// GEF column quantity numbers as declared by the fourth COLUMNINFO argument
const (
	// CPT quantities
	ColumnDepth          = 1
	ColumnConeResistance = 2
	ColumnSleeveFriction = 3
	ColumnPorePressure   = 6
	ColumnCorrectedDepth = 11

	// Borehole quantities
	ColumnLayerTop    = 1
	ColumnLayerBottom = 2
)

const (
	// EndOfHeader marks the end of the header section
	EndOfHeader = "#EOH"

	// Extension is the only file extension handled by ParseFile
	Extension = ".gef"

	// MEASUREMENTVAR number holding the pre-excavated depth
	measurementPreExcavatedDepth = "13"

	minConeResistance    = 1e-3
	minSleeveFriction    = 1e-6
	defaultFrictionRatio = 10.0

	// first soil description column if the file has no COLUMN keyword
	defaultLastColumn = 2
)
