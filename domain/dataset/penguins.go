package dataset

// Column names of the bundled penguin measurement dataset.
const (
	ColSpecies       = "species"
	ColIsland        = "island"
	ColBillLength    = "bill_length_mm"
	ColBillDepth     = "bill_depth_mm"
	ColFlipperLength = "flipper_length_mm"
	ColBodyMass      = "body_mass_g"
	ColSex           = "sex"
	ColYear          = "year"

	// ColCluster is the derived cluster-label column added by the explorer.
	ColCluster = "cluster"
)

// Measurements lists the four morphological measurement columns used for
// PCA, clustering and as regression variables.
var Measurements = []string{
	ColBillLength,
	ColBillDepth,
	ColFlipperLength,
	ColBodyMass,
}

// NumericSchema maps the penguin columns that parse as numbers. Year is
// numeric in the file but treated as categorical for modeling purposes.
var NumericSchema = map[string]bool{
	ColBillLength:    true,
	ColBillDepth:     true,
	ColFlipperLength: true,
	ColBodyMass:      true,
}

// IsMeasurement reports whether the named column is a morphological measurement
func IsMeasurement(name string) bool {
	return NumericSchema[name]
}
