package domain

import (
	"math"
	"testing"

	m "github.com/binshift/cnvmerge/internal/model"
)

func scoringSegment(bins int) *m.Segment {
	return makeSegment("chr1", 0, 1000, 2, 0, bins)
}

func TestGetQScorePredictor(t *testing.T) {
	t.Run("bin count predictors", func(t *testing.T) {
		seg := scoringSegment(9)

		if got := GetQScorePredictor(seg, PredictorBinCount); got != 9 {
			t.Errorf("BinCount = %v, want 9", got)
		}
		if got := GetQScorePredictor(seg, PredictorLogBinCount); got != 1 {
			t.Errorf("LogBinCount = %v, want 1 for 9 bins", got)
		}
	})

	t.Run("bin mean and coefficient of variation", func(t *testing.T) {
		seg := scoringSegment(0)
		seg.Counts = []float64{2, 4, 6}

		if got := GetQScorePredictor(seg, PredictorBinMean); got != 4 {
			t.Errorf("BinMean = %v, want 4", got)
		}

		// Population stddev of {2,4,6} is sqrt(8/3); cv = sd/mean.
		want := math.Sqrt(8.0/3.0) / 4
		if got := GetQScorePredictor(seg, PredictorBinCv); math.Abs(got-want) > 1e-12 {
			t.Errorf("BinCv = %v, want %v", got, want)
		}
	})

	t.Run("maf predictors are neutral without variants", func(t *testing.T) {
		seg := scoringSegment(4)

		if got := GetQScorePredictor(seg, PredictorMafMean); got != 0 {
			t.Errorf("MafMean = %v, want 0", got)
		}
		if got := GetQScorePredictor(seg, PredictorLogMafCv); got != 0 {
			t.Errorf("LogMafCv = %v, want 0", got)
		}
	})

	t.Run("distance ratio guards a zero denominator", func(t *testing.T) {
		seg := scoringSegment(4)
		seg.ModelDistance = 0.3

		if got := GetQScorePredictor(seg, PredictorDistanceRatio); got != 0 {
			t.Errorf("DistanceRatio = %v, want 0 with zero runner-up distance", got)
		}

		seg.RunnerUpModelDistance = 0.6
		if got := GetQScorePredictor(seg, PredictorDistanceRatio); got != 0.5 {
			t.Errorf("DistanceRatio = %v, want 0.5", got)
		}
	})

	t.Run("major chromosome count falls back to ceil of half the copy number", func(t *testing.T) {
		seg := scoringSegment(4)
		seg.CopyNumber = 3

		if got := GetQScorePredictor(seg, PredictorMajorChromosomeCount); got != 2 {
			t.Errorf("MajorChromosomeCount = %v, want ceil(3/2) = 2", got)
		}

		mcc := 3
		seg.MajorChromosomeCount = &mcc
		if got := GetQScorePredictor(seg, PredictorMajorChromosomeCount); got != 3 {
			t.Errorf("MajorChromosomeCount = %v, want stored 3", got)
		}
	})

	t.Run("unknown predictor panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic for unknown predictor")
			}
		}()

		GetQScorePredictor(scoringSegment(1), PredictorID(99))
	})
}

func TestComputeQScoreBinCountLinearFit(t *testing.T) {
	t.Run("spot values", func(t *testing.T) {
		cases := map[int]int{
			1:   2,
			10:  5,
			50:  30,
			99:  61,
			100: 61,
			150: 61,
		}
		for bins, want := range cases {
			if got := ComputeQScore(m.ModelBinCountLinearFit, scoringSegment(bins)); got != want {
				t.Errorf("binCount %d: got %d, want %d", bins, got, want)
			}
		}
	})

	t.Run("monotone in bin count up to the ceiling", func(t *testing.T) {
		previous := ComputeQScore(m.ModelBinCountLinearFit, scoringSegment(1))
		for bins := 2; bins < 120; bins++ {
			score := ComputeQScore(m.ModelBinCountLinearFit, scoringSegment(bins))
			if score < previous {
				t.Fatalf("score decreased from %d to %d at binCount %d", previous, score, bins)
			}
			previous = score
		}
		if previous != 61 {
			t.Fatalf("expected ceiling 61, got %d", previous)
		}
	})
}

func TestComputeQScoreLogisticModels(t *testing.T) {
	t.Run("logistic clamps to the lower bound", func(t *testing.T) {
		seg := scoringSegment(9)
		seg.ModelDistance = 0.01
		seg.RunnerUpModelDistance = 0.02

		if got := ComputeQScore(m.ModelLogistic, seg); got != 2 {
			t.Errorf("got %d, want 2", got)
		}
	})

	t.Run("logistic rewards confident segments", func(t *testing.T) {
		seg := scoringSegment(99)

		if got := ComputeQScore(m.ModelLogistic, seg); got != 6 {
			t.Errorf("got %d, want 6", got)
		}
	})

	t.Run("germline spot value", func(t *testing.T) {
		seg := scoringSegment(99)

		if got := ComputeQScore(m.ModelLogisticGermline, seg); got != 22 {
			t.Errorf("got %d, want 22", got)
		}
	})

	t.Run("germline clamps into [2, 40]", func(t *testing.T) {
		low := scoringSegment(1)
		low.ModelDistance = 1
		low.RunnerUpModelDistance = 1

		if got := ComputeQScore(m.ModelLogisticGermline, low); got != 2 {
			t.Errorf("got %d, want lower clamp 2", got)
		}

		high := scoringSegment(100000)
		if got := ComputeQScore(m.ModelLogisticGermline, high); got != 40 {
			t.Errorf("got %d, want upper clamp 40", got)
		}
	})
}

func TestComputeQScoreGeneralizedLinearFit(t *testing.T) {
	seg := scoringSegment(9)
	seg.ModelDistance = 0.1
	seg.CopyNumber = 4 // mcc fallback ceil(4/2) = 2
	seg.VariantFrequencies = []float64{0.5, 0.5}
	seg.VariantTotalCoverage = []int{30, 30}

	if got := ComputeQScore(m.ModelGeneralizedLinearFit, seg); got != 31 {
		t.Errorf("got %d, want 31", got)
	}
}

func TestComputeQScoreUnknownModel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown model")
		}
	}()

	ComputeQScore(m.ScoringModel("bogus"), scoringSegment(1))
}
