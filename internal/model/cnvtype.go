package model

// CnvType is the categorical variant type of a copy-number call.
type CnvType string

const (
	// CnvReference marks a segment whose call matches the reference copy number.
	CnvReference CnvType = "REF"
	// CnvLoss marks a copy-number loss.
	CnvLoss CnvType = "LOSS"
	// CnvGain marks a copy-number gain.
	CnvGain CnvType = "GAIN"
	// CnvLossOfHeterozygosity marks a copy-neutral loss of heterozygosity.
	CnvLossOfHeterozygosity CnvType = "LOH"
)

// AltAllele returns the symbolic ALT allele used for the type in VCF output.
func (t CnvType) AltAllele() string {
	switch t {
	case CnvLoss, CnvGain:
		return "<CNV>"
	case CnvLossOfHeterozygosity:
		return "<LOH>"
	case CnvReference:
		return "."
	}

	panic("unknown CNV type: " + string(t))
}

// SvType returns the SVTYPE INFO value used for the type in VCF output.
func (t CnvType) SvType() string {
	if t == CnvLossOfHeterozygosity {
		return "LOH"
	}

	return "CNV"
}

// ScoringModel selects one of the fixed q-score regression models.
type ScoringModel string

const (
	// ModelLogisticGermline is the germline logistic regression model.
	ModelLogisticGermline ScoringModel = "logistic-germline"
	// ModelLogistic is the general logistic regression model.
	ModelLogistic ScoringModel = "logistic"
	// ModelBinCountLinearFit scores on bin count alone.
	ModelBinCountLinearFit ScoringModel = "bincount-linear"
	// ModelGeneralizedLinearFit is the generalized linear model with MAF terms.
	ModelGeneralizedLinearFit ScoringModel = "generalized-linear"
)

// ParseScoringModel maps a user-supplied model name to a ScoringModel.
func ParseScoringModel(name string) (ScoringModel, bool) {
	switch ScoringModel(name) {
	case ModelLogisticGermline, ModelLogistic, ModelBinCountLinearFit, ModelGeneralizedLinearFit:
		return ScoringModel(name), true
	}

	return "", false
}
