package controller

import "errors"

// ErrClosed is returned by operations started after Close.
var ErrClosed = errors.New("controller closed")

// Texts shown to the user.
const (
	msgEmptyMessage  = "Please enter your message."
	msgInvalidRating = "Rating must be between 1 and 5."
	msgFeedbackOK    = "Thank you for your feedback!"
	msgFeedbackFail  = "Failed to submit feedback"
)

// ValidationError is a local precondition failure. It never reaches the network.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
