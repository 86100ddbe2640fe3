package emotion

import "errors"

var (
	// ErrClassification means no result could be produced: the call failed,
	// timed out, or the reply could not be understood.
	ErrClassification = errors.New("emotion classification failed")
	// ErrInvalidText means the service was reached but found nothing to
	// classify in the text.
	ErrInvalidText = errors.New("invalid text")
)
