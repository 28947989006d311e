package model

import "fmt"

// PriceBand is one of the fixed price intervals used to group symbols.
// Bands are contiguous and non-overlapping: every non-negative price maps to
// exactly one band.
type PriceBand int

const (
	Band0to50 PriceBand = iota
	Band50to100
	Band100to200
	Band200to300
	Band300to400
	Band400to500
	Band500to600
	BandAbove600
)

// AllBands lists every band in ascending price order.
var AllBands = []PriceBand{
	Band0to50, Band50to100, Band100to200, Band200to300,
	Band300to400, Band400to500, Band500to600, BandAbove600,
}

var bandLabels = [...]string{
	"0-50", "50-100", "100-200", "200-300",
	"300-400", "400-500", "500-600", "Above 600",
}

// bandCeilings holds the exclusive upper bound of each bounded band.
var bandCeilings = [...]float64{50, 100, 200, 300, 400, 500, 600}

func (b PriceBand) String() string {
	if b < 0 || int(b) >= len(bandLabels) {
		return fmt.Sprintf("PriceBand(%d)", int(b))
	}
	return bandLabels[b]
}

// BandFor maps a non-negative price to its band. A price sitting exactly on a
// boundary belongs to the higher band: 100.0 is in 100-200, not 50-100.
// Prices of 600 and above map to BandAbove600.
func BandFor(price float64) PriceBand {
	for i, ceiling := range bandCeilings {
		if price < ceiling {
			return PriceBand(i)
		}
	}
	return BandAbove600
}

// ParseBand converts a config/display label back to a PriceBand.
func ParseBand(s string) (PriceBand, error) {
	for i, label := range bandLabels {
		if s == label {
			return PriceBand(i), nil
		}
	}
	return 0, fmt.Errorf("unknown price band %q", s)
}
