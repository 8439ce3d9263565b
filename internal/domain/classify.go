package domain

import (
	m "github.com/binshift/cnvmerge/internal/model"
)

// Classify maps an observed copy number to its categorical variant type.
// Gain and loss take precedence over the LOH check: loss of heterozygosity
// is only called when the copy number already matches a diploid reference
// and the major chromosome count accounts for every copy.
func Classify(observedCopyNumber, referenceCopyNumber int, majorChromosomeCount *int) m.CnvType {
	switch {
	case observedCopyNumber < referenceCopyNumber:
		return m.CnvLoss
	case observedCopyNumber > referenceCopyNumber:
		return m.CnvGain
	case referenceCopyNumber == 2 && majorChromosomeCount != nil && *majorChromosomeCount == observedCopyNumber:
		return m.CnvLossOfHeterozygosity
	default:
		return m.CnvReference
	}
}
