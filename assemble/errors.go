package assemble

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition marks input the generator refuses to process.
	ErrPrecondition = errors.New("precondition violated")

	// ErrNoRecords is returned for an empty record list.
	ErrNoRecords = fmt.Errorf("%w: no records to generate", ErrPrecondition)

	// ErrGenerationFailed marks a run that reached the Failed state.
	ErrGenerationFailed = errors.New("card generation failed")
)

// GenerationError reports the card that aborted a run.
type GenerationError struct {
	Index int    // 0-indexed position in the input records
	ID    string // identity number of the failing record
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("card generation failed at record %d (%s): %v", e.Index, e.ID, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is makes every GenerationError match ErrGenerationFailed.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}
