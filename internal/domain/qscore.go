package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	m "github.com/binshift/cnvmerge/internal/model"
)

// PredictorID identifies one q-score predictor extracted from a segment.
type PredictorID int

// Predictors available to the scoring models.
const (
	PredictorBinCount PredictorID = iota
	PredictorLogBinCount
	PredictorBinMean
	PredictorBinCv
	PredictorMafCount
	PredictorMafMean
	PredictorMafCv
	PredictorLogMafCv
	PredictorModelDistance
	PredictorRunnerUpModelDistance
	PredictorDistanceRatio
	PredictorMajorChromosomeCount
)

// GetQScorePredictor extracts one predictor value from the segment's
// accumulated statistics. Missing optional data yields a neutral 0 rather
// than an error; scores are advisory confidence signals. An unknown
// predictor identifier is a programming error.
func GetQScorePredictor(seg *m.Segment, id PredictorID) float64 {
	switch id {
	case PredictorBinCount:
		return float64(seg.BinCount())
	case PredictorLogBinCount:
		return math.Log10(1 + float64(seg.BinCount()))
	case PredictorBinMean:
		mean, _ := meanCv(seg.Counts)
		return mean
	case PredictorBinCv:
		_, cv := meanCv(seg.Counts)
		return cv
	case PredictorMafCount:
		return float64(len(seg.VariantFrequencies))
	case PredictorMafMean:
		mean, _ := meanCv(seg.VariantFrequencies)
		return mean
	case PredictorMafCv:
		_, cv := meanCv(seg.VariantFrequencies)
		return cv
	case PredictorLogMafCv:
		_, cv := meanCv(seg.VariantFrequencies)
		return math.Log10(1 + cv)
	case PredictorModelDistance:
		return seg.ModelDistance
	case PredictorRunnerUpModelDistance:
		return seg.RunnerUpModelDistance
	case PredictorDistanceRatio:
		if seg.RunnerUpModelDistance == 0 {
			return 0
		}

		return seg.ModelDistance / seg.RunnerUpModelDistance
	case PredictorMajorChromosomeCount:
		if seg.MajorChromosomeCount != nil {
			return float64(*seg.MajorChromosomeCount)
		}

		return math.Ceil(float64(seg.CopyNumber) / 2)
	}

	panic(fmt.Sprintf("unhandled q-score predictor %d", id))
}

// meanCv returns the mean and coefficient of variation of values. Both are 0
// for empty input or a zero mean.
func meanCv(values []float64) (mean, cv float64) {
	if len(values) == 0 {
		return 0, 0
	}

	mean = stat.Mean(values, nil)
	if mean == 0 {
		return 0, 0
	}

	if len(values) > 1 {
		cv = stat.PopStdDev(values, nil) / mean
	}

	return mean, cv
}

// Regression coefficients of the scoring models. Fixed numeric contracts;
// fitting happens offline, never at call time.
const (
	logisticGermlineIntercept     = -5.0123
	logisticGermlineLogBinCount   = 4.9801
	logisticGermlineModelDistance = -5.5472
	logisticGermlineDistanceRatio = -1.7914

	logisticIntercept     = -0.5143
	logisticLogBinCount   = 0.8596
	logisticModelDistance = -50.4366
	logisticDistanceRatio = -0.6511

	binCountFitIntercept = 0.5532
	binCountFitSlope     = 0.147
	binCountFitThreshold = 100
	binCountFitCeiling   = 61

	generalizedFitIntercept     = -3.65
	generalizedFitLogBinCount   = -1.12
	generalizedFitModelDistance = 3.89
	generalizedFitMcc           = 0.47
	generalizedFitMafMean       = -0.68
	generalizedFitLogMafCv      = -0.25
	generalizedScoreIntercept   = -11.9
	generalizedScoreSlope       = -11.4
)

// ComputeQScore maps the segment's statistics to a calibrated integer
// confidence score under the selected model. An unknown model is a
// programming error.
func ComputeQScore(model m.ScoringModel, seg *m.Segment) int {
	switch model {
	case m.ModelLogisticGermline:
		logit := logisticGermlineIntercept +
			logisticGermlineLogBinCount*GetQScorePredictor(seg, PredictorLogBinCount) +
			logisticGermlineModelDistance*GetQScorePredictor(seg, PredictorModelDistance) +
			logisticGermlineDistanceRatio*GetQScorePredictor(seg, PredictorDistanceRatio)

		return clampScore(phredFromLogit(logit), 2, 40)
	case m.ModelLogistic:
		logit := logisticIntercept +
			logisticLogBinCount*GetQScorePredictor(seg, PredictorLogBinCount) +
			logisticModelDistance*GetQScorePredictor(seg, PredictorModelDistance) +
			logisticDistanceRatio*GetQScorePredictor(seg, PredictorDistanceRatio)

		return clampScore(phredFromLogit(logit), 2, 60)
	case m.ModelBinCountLinearFit:
		binCount := seg.BinCount()
		if binCount >= binCountFitThreshold {
			return binCountFitCeiling
		}

		probability := 1 / (1 + math.Exp(binCountFitIntercept-float64(binCount)*binCountFitSlope))
		score := math.Round(-10 * math.Log10(1-probability))

		// Ceiling only; scores below 2 are possible under this model.
		if score > binCountFitCeiling {
			return binCountFitCeiling
		}

		return int(score)
	case m.ModelGeneralizedLinearFit:
		linearFit := generalizedFitIntercept +
			generalizedFitLogBinCount*GetQScorePredictor(seg, PredictorLogBinCount) +
			generalizedFitModelDistance*GetQScorePredictor(seg, PredictorModelDistance) +
			generalizedFitMcc*GetQScorePredictor(seg, PredictorMajorChromosomeCount) +
			generalizedFitMafMean*GetQScorePredictor(seg, PredictorMafMean) +
			generalizedFitLogMafCv*GetQScorePredictor(seg, PredictorLogMafCv)

		return clampScore(math.Round(generalizedScoreIntercept+generalizedScoreSlope*linearFit), 2, 61)
	}

	panic(fmt.Sprintf("unhandled scoring model %q", model))
}

// phredFromLogit converts a regression logit to a rounded Phred-scaled score.
// A sigmoid probability of exactly 1 yields +Inf, which the caller's ceiling
// absorbs.
func phredFromLogit(logit float64) float64 {
	probability := 1 / (1 + math.Exp(-logit))

	return math.Round(-10 * math.Log10(1-probability))
}

func clampScore(score float64, low, high int) int {
	if score > float64(high) || math.IsInf(score, 1) {
		return high
	}

	if score < float64(low) {
		return low
	}

	return int(score)
}
