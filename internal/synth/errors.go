package synth

import "errors"

// ErrEmptyText is returned before any backend call when the request text is
// missing or whitespace-only. Handlers surface it as a 400.
var ErrEmptyText = errors.New("text must not be empty")

// UpstreamError marks a failed or audio-less backend call. Handlers surface
// it as a 500 with the underlying message as detail.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
