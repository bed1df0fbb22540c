package assistant

import "fmt"

// TransportError reports a network or HTTP failure talking to one of the
// external collaborators.
type TransportError struct {
	Service string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Service, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// GenerationError reports a generate call that failed or returned unusable
// data.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failure: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
