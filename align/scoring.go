package align

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidScoring indicates a Scoring whose signs are unusable.
	ErrInvalidScoring = errors.New("align: invalid scoring")

	// ErrMissingWeight indicates a block pair absent from the active
	// WeightTable at lookup time. The engine extends the table before every
	// block-level pass, so this is an internal invariant violation.
	ErrMissingWeight = errors.New("align: missing block weight")

	// ErrInvalidBlockLength indicates a block length below MinBlockLength.
	ErrInvalidBlockLength = errors.New("align: invalid block length")
)

// Scoring holds the constants of the symbol-level aligner. The block
// aligner reuses Gap scaled by block length.
type Scoring struct {
	Match    int // added for equal symbols; must be > 0
	Mismatch int // added for unequal symbols; must be < 0
	Gap      int // added per skipped symbol; must be < 0
}

// DefaultScoring returns MATCH=1, MISMATCH=-1, GAP=-2.
func DefaultScoring() Scoring {
	return Scoring{Match: 1, Mismatch: -1, Gap: -2}
}

// Validate reports ErrInvalidScoring when a constant has the wrong sign.
func (s Scoring) Validate() error {
	if s.Match <= 0 {
		return fmt.Errorf("%w: match must be > 0, got %d", ErrInvalidScoring, s.Match)
	}
	if s.Mismatch >= 0 {
		return fmt.Errorf("%w: mismatch must be < 0, got %d", ErrInvalidScoring, s.Mismatch)
	}
	if s.Gap >= 0 {
		return fmt.Errorf("%w: gap must be < 0, got %d", ErrInvalidScoring, s.Gap)
	}
	return nil
}

func (s Scoring) String() string {
	return fmt.Sprintf("match=%d mismatch=%d gap=%d", s.Match, s.Mismatch, s.Gap)
}
