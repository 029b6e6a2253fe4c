package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound covers unknown tune ids and missing seed notation files.
// It is the only pipeline failure that is never recovered by falling
// back to the original waveform.
var ErrNotFound = errors.New("tune not found")

// RemoteGenerationError collapses every way the remote generation call
// can fail: transport error, timeout, non-success status, or a
// response body matching no recognized shape. Callers cannot tell
// these apart; the wrapped cause is kept for logs.
type RemoteGenerationError struct {
	Cause error
}

func (e *RemoteGenerationError) Error() string {
	return "remote generation failed: " + e.Cause.Error()
}

func (e *RemoteGenerationError) Unwrap() error {
	return e.Cause
}

// EncodingError means parsing succeeded structurally but produced
// nothing playable, or the event-sequence encoder itself failed.
type EncodingError struct {
	Reason string
	Cause  error
}

func (e *EncodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("encoding failed: %v: %v", e.Reason, e.Cause)
	}
	return "encoding failed: " + e.Reason
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}

// RenderingExhaustedError means every backend in the renderer chain
// was either unavailable or failed.
type RenderingExhaustedError struct {
	Attempted []string
}

func (e *RenderingExhaustedError) Error() string {
	if len(e.Attempted) == 0 {
		return "rendering exhausted: no backend available"
	}
	return "rendering exhausted: tried " + strings.Join(e.Attempted, ", ")
}

// DegradedFallbackUnavailable means a downstream stage failed and the
// tune has no original waveform to substitute.
type DegradedFallbackUnavailable struct {
	TuneID int
	Stage  string
	Cause  error
}

func (e *DegradedFallbackUnavailable) Error() string {
	return fmt.Sprintf("tune %v failed at %v and has no original audio to fall back to: %v",
		e.TuneID, e.Stage, e.Cause)
}

func (e *DegradedFallbackUnavailable) Unwrap() error {
	return e.Cause
}
