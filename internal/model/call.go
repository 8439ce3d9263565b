package model

// Call is one consolidated, score-annotated segment together with its
// classification, ready for VCF emission.
type Call struct {
	Segment             *Segment
	Type                CnvType
	ReferenceCopyNumber int
}
